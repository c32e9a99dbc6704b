// Package grid owns the control-point grid and the blocked-cell mask.
package grid

import (
	"errors"
	"fmt"

	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// ErrInvalidGridSize is returned when a grid dimension is below 1.
var ErrInvalidGridSize = errors.New("grid size must be at least 1x1")

// Size is the number of quad cells per axis.
type Size struct {
	Rows int
	Cols int
}

// Model holds the control points and the blocked-cell mask.
// Control points are stored flat in row-major order: (rows+1)*(cols+1)
// entries, index [r][c] at r*(cols+1)+c. The mask is rows*cols bools,
// also row-major. Flat storage avoids the aliasing hazards of nested
// slices when snapshots are taken.
type Model struct {
	size    Size
	points  []geom.Vec2
	blocked []bool
	dirty   bool
}

// New creates a model with evenly spaced control points.
func New(rows, cols int) (*Model, error) {
	m := &Model{}
	if err := m.Init(rows, cols); err != nil {
		return nil, err
	}
	return m, nil
}

// Init resets every point [r][c] to (c/cols, r/rows) and clears the
// blocked mask. Dimensions below 1 are rejected and the prior state is
// left untouched.
func (m *Model) Init(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, rows, cols)
	}

	m.size = Size{Rows: rows, Cols: cols}
	m.points = make([]geom.Vec2, (rows+1)*(cols+1))
	m.blocked = make([]bool, rows*cols)

	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			m.points[r*(cols+1)+c] = geom.Vec2{
				X: float32(c) / float32(cols),
				Y: float32(r) / float32(rows),
			}
		}
	}

	m.dirty = true
	return nil
}

// Resize reinitializes the grid. The existing warp is discarded rather
// than reinterpolated.
func (m *Model) Resize(rows, cols int) error {
	return m.Init(rows, cols)
}

// Size returns the grid dimensions in cells.
func (m *Model) Size() Size {
	return m.size
}

// ControlPoint returns the point at [row][col], or false when the index
// is out of range.
func (m *Model) ControlPoint(row, col int) (geom.Vec2, bool) {
	if !m.validPoint(row, col) {
		return geom.Vec2{}, false
	}
	return m.points[row*(m.size.Cols+1)+col], true
}

// SetControlPoint clamps p into [0,1] on both axes and stores it at
// [row][col]. Out-of-range indices are a no-op returning false.
func (m *Model) SetControlPoint(row, col int, p geom.Vec2) bool {
	if !m.validPoint(row, col) {
		return false
	}
	m.points[row*(m.size.Cols+1)+col] = geom.Clamp01Vec(p)
	m.dirty = true
	return true
}

// Blocked reports whether the cell at [row][col] is blocked.
// Out-of-range indices report false.
func (m *Model) Blocked(row, col int) bool {
	if !m.validCell(row, col) {
		return false
	}
	return m.blocked[row*m.size.Cols+col]
}

// ToggleBlocked flips the blocked flag of the cell at [row][col] and
// returns the new value. The second return is false when the index is
// out of range, in which case nothing changes.
func (m *Model) ToggleBlocked(row, col int) (bool, bool) {
	if !m.validCell(row, col) {
		return false, false
	}
	i := row*m.size.Cols + col
	m.blocked[i] = !m.blocked[i]
	m.dirty = true
	return m.blocked[i], true
}

// BlockedCount returns the number of blocked cells.
func (m *Model) BlockedCount() int {
	n := 0
	for _, b := range m.blocked {
		if b {
			n++
		}
	}
	return n
}

// Dirty reports whether the model changed since the last ClearDirty.
func (m *Model) Dirty() bool {
	return m.dirty
}

// ClearDirty clears the dirty flag. Called after the derived mesh has
// been rebuilt.
func (m *Model) ClearDirty() {
	m.dirty = false
}

// MarkDirty forces a mesh rebuild on the next frame.
func (m *Model) MarkDirty() {
	m.dirty = true
}

func (m *Model) validPoint(row, col int) bool {
	return row >= 0 && row <= m.size.Rows && col >= 0 && col <= m.size.Cols
}

func (m *Model) validCell(row, col int) bool {
	return row >= 0 && row < m.size.Rows && col >= 0 && col < m.size.Cols
}
