// Package source provides frame sources for the host binary: an
// animated test pattern for calibration and a still-image source.
package source

import "time"

// Pattern generates an animated calibration pattern: a checkerboard
// with a sweeping vertical bar, so both alignment and motion are
// visible on the projection surface.
type Pattern struct {
	width  int
	height int
	pixels []byte
	start  time.Time
}

// NewPattern creates a pattern source at the given frame resolution.
func NewPattern(width, height int) *Pattern {
	if width < 1 {
		width = 640
	}
	if height < 1 {
		height = 360
	}
	return &Pattern{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
		start:  time.Now(),
	}
}

// Frame renders the pattern for the current time into the reused
// buffer and returns it.
func (p *Pattern) Frame() (int, int, []byte, bool) {
	const cell = 40
	elapsed := float64(time.Since(p.start)) / float64(time.Second)

	// The bar sweeps the full width every four seconds.
	barX := int(elapsed / 4 * float64(p.width))
	barX %= p.width
	const barW = 24

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			i := (y*p.width + x) * 4

			var r, g, b byte
			if (x/cell+y/cell)%2 == 0 {
				r, g, b = 200, 200, 200
			} else {
				r, g, b = 40, 40, 40
			}
			if dx := x - barX; dx >= 0 && dx < barW {
				r, g, b = 250, 120, 30
			}

			p.pixels[i] = r
			p.pixels[i+1] = g
			p.pixels[i+2] = b
			p.pixels[i+3] = 255
		}
	}

	return p.width, p.height, p.pixels, true
}
