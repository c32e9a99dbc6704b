// Package transform converts between normalized, pixel, and clip-space
// coordinates and hit-tests the control-point grid.
package transform

import (
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// Viewport describes the output surface in logical pixels. Scale is the
// device pixel ratio; the drawable size is Width*Scale x Height*Scale.
type Viewport struct {
	Width  float32
	Height float32
	Scale  float32
}

// DrawableSize returns the viewport size in physical pixels.
func (vp Viewport) DrawableSize() (int32, int32) {
	s := vp.Scale
	if s <= 0 {
		s = 1
	}
	return int32(vp.Width * s), int32(vp.Height * s)
}

// NormalizedToPixel maps a [0,1]^2 point to viewport pixel space.
func NormalizedToPixel(p geom.Vec2, vp Viewport) geom.Vec2 {
	return geom.Vec2{X: p.X * vp.Width, Y: p.Y * vp.Height}
}

// PixelToNormalized maps viewport pixel coordinates to [0,1]^2,
// clamping outside positions onto the boundary. Composing it with
// NormalizedToPixel is the identity up to float tolerance.
func PixelToNormalized(x, y float32, vp Viewport) geom.Vec2 {
	if vp.Width == 0 || vp.Height == 0 {
		return geom.Vec2{}
	}
	return geom.Clamp01Vec(geom.Vec2{X: x / vp.Width, Y: y / vp.Height})
}

// NearestControlPoint scans all control points in row-major order and
// returns the one with the strictly smallest pixel distance to (x, y)
// under hitRadius. Ties keep the first-found candidate, so the result
// is deterministic for a fixed scan order.
func NearestControlPoint(m *grid.Model, x, y, hitRadius float32, vp Viewport) (row, col int, ok bool) {
	size := m.Size()
	at := geom.Vec2{X: x, Y: y}
	best := hitRadius

	for r := 0; r <= size.Rows; r++ {
		for c := 0; c <= size.Cols; c++ {
			p, _ := m.ControlPoint(r, c)
			d := NormalizedToPixel(p, vp).Distance(at)
			if d < best {
				best = d
				row, col = r, c
				ok = true
			}
		}
	}
	return row, col, ok
}

// PointInCell returns the first cell in row-major order containing the
// pixel position (x, y). Blocked cells are tested like any other, so a
// blocked cell can still be clicked to unblock it. Containment uses the
// convex-quad sign test over the corners (TL, TR, BR, BL): the point is
// inside iff the cross products of each edge with the vector to the
// point all share a sign (zero counts as either). The test assumes the
// quad is not self-intersecting; dragging points across each other can
// break that and makes containment ambiguous.
func PointInCell(m *grid.Model, x, y float32, vp Viewport) (row, col int, ok bool) {
	size := m.Size()
	at := geom.Vec2{X: x, Y: y}

	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			tl, _ := m.ControlPoint(r, c)
			tr, _ := m.ControlPoint(r, c+1)
			br, _ := m.ControlPoint(r+1, c+1)
			bl, _ := m.ControlPoint(r+1, c)

			quad := [4]geom.Vec2{
				NormalizedToPixel(tl, vp),
				NormalizedToPixel(tr, vp),
				NormalizedToPixel(br, vp),
				NormalizedToPixel(bl, vp),
			}
			if insideQuad(quad, at) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func insideQuad(quad [4]geom.Vec2, p geom.Vec2) bool {
	anyPos := false
	anyNeg := false
	for i := 0; i < 4; i++ {
		a := quad[i]
		b := quad[(i+1)%4]
		cross := b.Sub(a).Cross(p.Sub(a))
		if cross > 0 {
			anyPos = true
		} else if cross < 0 {
			anyNeg = true
		}
	}
	return !(anyPos && anyNeg)
}
