// Package calibration implements the pointer-driven calibration state
// machine that edits the control-point grid.
package calibration

import (
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// State identifies the machine's interaction state.
type State int

const (
	// Idle means no point is selected and nothing is being dragged.
	Idle State = iota
	// PointSelected means a point is highlighted but not dragging.
	PointSelected
	// Dragging means a control point follows the pointer.
	Dragging
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PointSelected:
		return "point-selected"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Drag carries the payload of an active drag: which point, and the
// pixel offset between the grabbed point and the pointer at press time.
// Keeping the offset for the whole drag stops the point from snapping
// to the pointer on press.
type Drag struct {
	Row, Col int
	Offset   geom.Vec2
}

// Machine consumes pointer events and mutates the grid model.
type Machine struct {
	model     *grid.Model
	hitRadius float32

	state State
	drag  Drag
}

// NewMachine creates a machine editing the given model. hitRadius is
// the control-point grab distance in logical pixels.
func NewMachine(model *grid.Model, hitRadius float32) *Machine {
	return &Machine{
		model:     model,
		hitRadius: hitRadius,
	}
}

// State returns the current interaction state.
func (mc *Machine) State() State {
	return mc.state
}

// Selection returns the selected or dragged point while one exists.
func (mc *Machine) Selection() (row, col int, ok bool) {
	if mc.state == Idle {
		return 0, 0, false
	}
	return mc.drag.Row, mc.drag.Col, true
}

// PointerDown handles a press at viewport pixel (x, y). Control points
// take priority over cells: a hit starts a drag with the press offset
// preserved. Otherwise a cell hit toggles that cell's blocked flag and
// the state is unchanged. A press that hits nothing drops the
// selection.
func (mc *Machine) PointerDown(x, y float32, vp transform.Viewport) {
	if row, col, ok := transform.NearestControlPoint(mc.model, x, y, mc.hitRadius, vp); ok {
		p, _ := mc.model.ControlPoint(row, col)
		px := transform.NormalizedToPixel(p, vp)
		mc.drag = Drag{
			Row:    row,
			Col:    col,
			Offset: px.Sub(geom.Vec2{X: x, Y: y}),
		}
		mc.state = Dragging
		return
	}

	if row, col, ok := transform.PointInCell(mc.model, x, y, vp); ok {
		mc.model.ToggleBlocked(row, col)
		return
	}

	mc.Reset()
}

// PointerMove updates the dragged point. A no-op outside a drag.
func (mc *Machine) PointerMove(x, y float32, vp transform.Viewport) {
	if mc.state != Dragging {
		return
	}
	target := geom.Vec2{X: x, Y: y}.Add(mc.drag.Offset)
	n := transform.PixelToNormalized(target.X, target.Y, vp)
	mc.model.SetControlPoint(mc.drag.Row, mc.drag.Col, n)
}

// PointerUp ends a drag. The selection is kept for the overlay
// highlight.
func (mc *Machine) PointerUp() {
	if mc.state == Dragging {
		mc.state = PointSelected
	}
}

// Cancel aborts any drag, for pointer-leave or focus loss. The dragged
// point keeps its last written position.
func (mc *Machine) Cancel() {
	if mc.state == Dragging {
		mc.state = PointSelected
	}
}

// Reset drops selection and drag state entirely.
func (mc *Machine) Reset() {
	mc.state = Idle
	mc.drag = Drag{}
}
