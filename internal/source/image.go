package source

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Image serves one decoded still image as the frame every call. Static
// content still goes through the full per-frame upload path; the warp
// does not special-case it.
type Image struct {
	width  int
	height int
	pixels []byte
}

// NewImage loads a PNG or JPEG file.
func NewImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return &Image{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pixels: rgba.Pix,
	}, nil
}

// Frame returns the decoded image.
func (s *Image) Frame() (int, int, []byte, bool) {
	return s.width, s.height, s.pixels, true
}
