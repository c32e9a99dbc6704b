// Package pipeline owns the GPU resources that draw the warped source
// through the deformed grid mesh.
package pipeline

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumiwarp/internal/engine/framebuffer"
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/internal/engine/mesh"
	"github.com/Faultbox/lumiwarp/internal/engine/shader"
	"github.com/Faultbox/lumiwarp/internal/engine/texture"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/internal/logger"
)

// Background is the clear color behind the warped output.
type Background struct {
	R, G, B float32
}

// Pipeline holds the shader program, vertex buffers, source texture,
// and the offscreen target, plus the cached mesh. Must be created after
// the OpenGL context exists.
type Pipeline struct {
	program   uint32
	locSource int32

	vao    uint32
	posVBO uint32
	uvVBO  uint32

	source *texture.Stream
	target *framebuffer.Framebuffer

	// Cached mesh; replaced wholesale on rebuild so a draw never sees
	// a half-built buffer.
	cached *mesh.Mesh

	background Background
}

// New compiles the warp program and allocates buffers.
func New(bg Background) (*Pipeline, error) {
	p := &Pipeline{background: bg}

	program, err := shader.CompileProgram(warpVertexShader, warpFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("warp shader: %w", err)
	}
	p.program = program
	p.locSource = shader.GetUniform(program, "uSource")

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.posVBO)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &p.uvVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.uvVBO)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	p.source = texture.NewStream()

	p.target, err = framebuffer.New(1, 1)
	if err != nil {
		p.Destroy()
		return nil, err
	}

	logger.Debug("warp pipeline created", zap.Uint32("program", program))
	return p, nil
}

// Render draws one warped frame onto the default framebuffer.
//  1. The offscreen target is resized to the drawable (device-pixel)
//     resolution when the viewport changes.
//  2. The latest source frame is uploaded in full.
//  3. The mesh is rebuilt only when the model is dirty.
//  4. One triangle-list draw, then a blit to the screen.
func (p *Pipeline) Render(src FrameSource, model *grid.Model, vp transform.Viewport) {
	dw, dh := vp.DrawableSize()
	p.target.Resize(dw, dh)

	if w, h, pixels, ok := src.Frame(); ok {
		p.source.Upload(w, h, pixels)
	}

	if model.Dirty() || p.cached == nil {
		p.cached = mesh.Build(model)
		p.uploadMesh(p.cached)
		model.ClearDirty()
	}

	p.target.Bind()
	p.target.Clear(p.background.R, p.background.G, p.background.B, 1)

	if p.cached.Triangles > 0 {
		gl.UseProgram(p.program)
		gl.Uniform1i(p.locSource, 0)
		p.source.Bind(0)

		gl.BindVertexArray(p.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(p.cached.VertexCount()))
		gl.BindVertexArray(0)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.UseProgram(0)
	}

	p.target.Unbind()
	gl.Viewport(0, 0, dw, dh)
	p.target.BlitToScreen(dw, dh)
}

// uploadMesh pushes both vertex streams to the GPU.
func (p *Pipeline) uploadMesh(m *mesh.Mesh) {
	if len(m.Positions) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, p.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, unsafe.Pointer(&m.Positions[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.uvVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.TexCoords)*4, unsafe.Pointer(&m.TexCoords[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Destroy releases all GPU resources.
func (p *Pipeline) Destroy() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.posVBO != 0 {
		gl.DeleteBuffers(1, &p.posVBO)
		p.posVBO = 0
	}
	if p.uvVBO != 0 {
		gl.DeleteBuffers(1, &p.uvVBO)
		p.uvVBO = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
	if p.source != nil {
		p.source.Destroy()
		p.source = nil
	}
	if p.target != nil {
		p.target.Destroy()
		p.target = nil
	}
}
