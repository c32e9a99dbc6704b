package overlay

import "github.com/Faultbox/lumiwarp/pkg/geom"

// glyphs is a 5x7 bitmap per character, one byte per row, low 5 bits
// used. Only the characters needed for the corner labels are defined.
var glyphs = map[rune][7]byte{
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'R': {0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001},
	'B': {0b11110, 0b10001, 0b10001, 0b11110, 0b10001, 0b10001, 0b11110},
}

const (
	glyphCols = 5
	glyphRows = 7
)

// Text draws a short label at p, one filled quad per lit glyph pixel.
// scale is the size of a glyph pixel in viewport pixels.
func (r *Renderer) Text(p geom.Vec2, text string, scale float32, c Color) {
	x := p.X
	for _, ch := range text {
		bitmap, ok := glyphs[ch]
		if !ok {
			x += (glyphCols + 1) * scale
			continue
		}
		for row := 0; row < glyphRows; row++ {
			bits := bitmap[row]
			for col := 0; col < glyphCols; col++ {
				if bits&(1<<(glyphCols-1-col)) != 0 {
					r.Quad(x+float32(col)*scale, p.Y+float32(row)*scale, scale, scale, c)
				}
			}
		}
		x += (glyphCols + 1) * scale
	}
}

// TextWidth returns the drawn width of a label at the given scale.
func TextWidth(text string, scale float32) float32 {
	return float32(len(text)) * (glyphCols + 1) * scale
}
