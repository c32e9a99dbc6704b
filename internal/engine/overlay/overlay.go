package overlay

import (
	"github.com/Faultbox/lumiwarp/internal/engine/calibration"
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

var (
	lineColor     = Color{R: 0.3, G: 0.9, B: 0.3, A: 0.8}
	markerColor   = Color{R: 1, G: 1, B: 1, A: 0.9}
	selectedColor = Color{R: 1, G: 0.6, B: 0.1, A: 1}
	blockedFill   = Color{R: 0.8, G: 0.1, B: 0.1, A: 0.25}
	blockedCross  = Color{R: 0.9, G: 0.2, B: 0.2, A: 0.7}
	labelColor    = Color{R: 1, G: 1, B: 1, A: 0.9}
)

const (
	lineThickness   = 1.5
	markerSize      = 12
	markerThickness = 2
	labelScale      = 2
	labelMargin     = 6
)

// Draw renders the full calibration overlay for the current model and
// machine state: grid lines, blocked-cell shading with a cross, point
// markers, the selected point highlight, and the corner labels.
func (r *Renderer) Draw(m *grid.Model, mc *calibration.Machine, vp transform.Viewport) {
	r.Begin()

	size := m.Size()

	// Blocked-cell shading first so lines and markers draw on top.
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if !m.Blocked(row, col) {
				continue
			}
			corners := cellCorners(m, row, col, vp)
			r.FillQuad(corners, blockedFill)
			r.Line(corners[0], corners[2], lineThickness, blockedCross)
			r.Line(corners[1], corners[3], lineThickness, blockedCross)
		}
	}

	// Horizontal grid lines.
	for row := 0; row <= size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			a := pointPx(m, row, col, vp)
			b := pointPx(m, row, col+1, vp)
			r.Line(a, b, lineThickness, lineColor)
		}
	}
	// Vertical grid lines.
	for col := 0; col <= size.Cols; col++ {
		for row := 0; row < size.Rows; row++ {
			a := pointPx(m, row, col, vp)
			b := pointPx(m, row+1, col, vp)
			r.Line(a, b, lineThickness, lineColor)
		}
	}

	// Point markers, selected point highlighted.
	selRow, selCol, haveSel := mc.Selection()
	for row := 0; row <= size.Rows; row++ {
		for col := 0; col <= size.Cols; col++ {
			c := markerColor
			if haveSel && row == selRow && col == selCol {
				c = selectedColor
			}
			r.Marker(pointPx(m, row, col, vp), markerSize, markerThickness, c)
		}
	}

	r.drawCornerLabels(m, vp)

	r.End(vp)
}

// drawCornerLabels tags the four grid corners so the operator can tell
// the warped orientation at a glance.
func (r *Renderer) drawCornerLabels(m *grid.Model, vp transform.Viewport) {
	size := m.Size()
	corners := []struct {
		row, col int
		label    string
	}{
		{0, 0, "TL"},
		{0, size.Cols, "TR"},
		{size.Rows, 0, "BL"},
		{size.Rows, size.Cols, "BR"},
	}

	for _, c := range corners {
		p := pointPx(m, c.row, c.col, vp)
		pos := geom.Vec2{X: p.X + labelMargin, Y: p.Y + labelMargin}
		// Keep labels inside the viewport at the right and bottom edges.
		if w := TextWidth(c.label, labelScale); pos.X+w > vp.Width {
			pos.X = p.X - labelMargin - w
		}
		if h := float32(glyphRows * labelScale); pos.Y+h > vp.Height {
			pos.Y = p.Y - labelMargin - h
		}
		r.Text(pos, c.label, labelScale, labelColor)
	}
}

func pointPx(m *grid.Model, row, col int, vp transform.Viewport) geom.Vec2 {
	p, _ := m.ControlPoint(row, col)
	return transform.NormalizedToPixel(p, vp)
}

func cellCorners(m *grid.Model, row, col int, vp transform.Viewport) [4]geom.Vec2 {
	return [4]geom.Vec2{
		pointPx(m, row, col, vp),
		pointPx(m, row, col+1, vp),
		pointPx(m, row+1, col+1, vp),
		pointPx(m, row+1, col, vp),
	}
}
