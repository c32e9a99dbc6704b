// Package overlay draws the calibration UI: grid lines, control-point
// markers, corner labels, and blocked-cell shading. It batches solid
// quads and flushes them with one draw call per frame.
package overlay

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lumiwarp/internal/engine/shader"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// Color is an RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 vColor;

uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Renderer batches solid-color geometry in viewport pixel space.
type Renderer struct {
	program       uint32
	locProjection int32
	vao           uint32
	vbo           uint32

	// 6 floats per vertex: x, y, r, g, b, a
	vertices []float32
}

// NewRenderer compiles the overlay shader and allocates buffers.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		vertices: make([]float32, 0, 4096),
	}

	program, err := shader.CompileProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	r.program = program
	r.locProjection = shader.GetUniform(program, "uProjection")

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, 6*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return r, nil
}

// Begin starts a new overlay frame.
func (r *Renderer) Begin() {
	r.vertices = r.vertices[:0]
}

// Quad adds a filled axis-aligned rectangle.
func (r *Renderer) Quad(x, y, w, h float32, c Color) {
	r.triangle(geom.Vec2{X: x, Y: y}, geom.Vec2{X: x + w, Y: y}, geom.Vec2{X: x + w, Y: y + h}, c)
	r.triangle(geom.Vec2{X: x, Y: y}, geom.Vec2{X: x + w, Y: y + h}, geom.Vec2{X: x, Y: y + h}, c)
}

// Line adds a line segment of the given thickness as two triangles.
func (r *Renderer) Line(a, b geom.Vec2, thickness float32, c Color) {
	dir := b.Sub(a)
	l := dir.Length()
	if l == 0 {
		return
	}
	// Perpendicular half-thickness offset.
	n := geom.Vec2{X: -dir.Y / l, Y: dir.X / l}.Scale(thickness / 2)

	p0 := a.Add(n)
	p1 := b.Add(n)
	p2 := b.Sub(n)
	p3 := a.Sub(n)
	r.triangle(p0, p1, p2, c)
	r.triangle(p0, p2, p3, c)
}

// Marker adds a hollow square marker centered at p.
func (r *Renderer) Marker(p geom.Vec2, size, thickness float32, c Color) {
	half := size / 2
	x, y := p.X-half, p.Y-half
	r.Quad(x, y, size, thickness, c)
	r.Quad(x, y+size-thickness, size, thickness, c)
	r.Quad(x, y+thickness, thickness, size-thickness*2, c)
	r.Quad(x+size-thickness, y+thickness, thickness, size-thickness*2, c)
}

// QuadOutline strokes the four edges of an arbitrary quad.
func (r *Renderer) QuadOutline(corners [4]geom.Vec2, thickness float32, c Color) {
	for i := 0; i < 4; i++ {
		r.Line(corners[i], corners[(i+1)%4], thickness, c)
	}
}

// FillQuad adds an arbitrary filled quad given corners in order.
func (r *Renderer) FillQuad(corners [4]geom.Vec2, c Color) {
	r.triangle(corners[0], corners[1], corners[2], c)
	r.triangle(corners[0], corners[2], corners[3], c)
}

func (r *Renderer) triangle(a, b, c geom.Vec2, col Color) {
	r.vertices = append(r.vertices,
		a.X, a.Y, col.R, col.G, col.B, col.A,
		b.X, b.Y, col.R, col.G, col.B, col.A,
		c.X, c.Y, col.R, col.G, col.B, col.A,
	)
}

// End flushes the batch with an orthographic projection over the
// logical viewport, preserving surrounding GL state.
func (r *Renderer) End(vp transform.Viewport) {
	if len(r.vertices) == 0 {
		return
	}

	var prevBlend int32
	var prevDepth int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	proj := orthoMatrix(0, vp.Width, vp.Height, 0)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProjection, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.vertices)/6))

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Destroy releases GPU resources.
func (r *Renderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func orthoMatrix(left, right, bottom, top float32) [16]float32 {
	var m [16]float32
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -1
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[15] = 1
	return m
}
