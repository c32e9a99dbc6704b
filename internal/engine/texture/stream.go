// Package texture streams source frames into an OpenGL texture.
package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stream wraps a single 2D texture that receives a fresh RGBA frame
// every call. The source is assumed to change each frame, so there is
// no dirty tracking on content: every Upload is a full upload.
type Stream struct {
	id     uint32
	width  int32
	height int32
}

// NewStream creates an empty stream texture with linear filtering and
// clamp-to-edge wrapping.
func NewStream() *Stream {
	s := &Stream{}
	gl.GenTextures(1, &s.id)
	gl.BindTexture(gl.TEXTURE_2D, s.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return s
}

// Upload replaces the texture content with an RGBA frame. pixels must
// hold width*height*4 bytes. Storage is reallocated when the frame size
// changes, otherwise the existing storage is overwritten in place.
func (s *Stream) Upload(width, height int, pixels []byte) {
	if width < 1 || height < 1 || len(pixels) < width*height*4 {
		return
	}

	w, h := int32(width), int32(height)
	gl.BindTexture(gl.TEXTURE_2D, s.id)
	if w != s.width || h != s.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
		s.width = w
		s.height = h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to the given texture unit.
func (s *Stream) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, s.id)
}

// ID returns the GL texture name.
func (s *Stream) ID() uint32 {
	return s.id
}

// Size returns the current texture dimensions.
func (s *Stream) Size() (int32, int32) {
	return s.width, s.height
}

// Destroy releases the texture.
func (s *Stream) Destroy() {
	if s.id != 0 {
		gl.DeleteTextures(1, &s.id)
		s.id = 0
	}
}
