package pipeline

// Vertex stage maps normalized mesh coordinates [0,1]^2 to clip space
// [-1,1]^2 and flips Y: mesh coordinates have a top-left origin like
// the source texture, clip space has a bottom-left origin. The sign
// flip must not be touched or the output is mirrored vertically.
const warpVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
	vec2 clip = aPos * 2.0 - 1.0;
	gl_Position = vec4(clip.x, -clip.y, 0.0, 1.0);
	vTexCoord = aTexCoord;
}
`

// Fragment stage is a pure sample. Color work belongs upstream in the
// source, keeping the warp orthogonal to any video effects.
const warpFragmentShader = `
#version 410 core

in vec2 vTexCoord;
out vec4 FragColor;

uniform sampler2D uSource;

void main() {
	FragColor = texture(uSource, vTexCoord);
}
`
