package grid

import (
	"fmt"

	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// Snapshot is a deep copy of the model state, safe to hold across later
// mutations. Used by the preset store.
type Snapshot struct {
	Size    Size
	Points  []geom.Vec2
	Blocked []bool
}

// Snapshot returns a deep copy of the current state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Size:    m.size,
		Points:  make([]geom.Vec2, len(m.points)),
		Blocked: make([]bool, len(m.blocked)),
	}
	copy(s.Points, m.points)
	copy(s.Blocked, m.blocked)
	return s
}

// Restore replaces the model state with a deep copy of the snapshot.
// The snapshot must be internally consistent: point and mask lengths
// must match its grid size.
func (m *Model) Restore(s Snapshot) error {
	if s.Size.Rows < 1 || s.Size.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, s.Size.Rows, s.Size.Cols)
	}
	wantPoints := (s.Size.Rows + 1) * (s.Size.Cols + 1)
	wantCells := s.Size.Rows * s.Size.Cols
	if len(s.Points) != wantPoints {
		return fmt.Errorf("snapshot has %d points, want %d", len(s.Points), wantPoints)
	}
	if len(s.Blocked) != wantCells {
		return fmt.Errorf("snapshot has %d mask cells, want %d", len(s.Blocked), wantCells)
	}

	m.size = s.Size
	m.points = make([]geom.Vec2, wantPoints)
	m.blocked = make([]bool, wantCells)
	copy(m.points, s.Points)
	copy(m.blocked, s.Blocked)
	m.dirty = true
	return nil
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Size != other.Size || len(s.Points) != len(other.Points) || len(s.Blocked) != len(other.Blocked) {
		return false
	}
	for i := range s.Points {
		if s.Points[i] != other.Points[i] {
			return false
		}
	}
	for i := range s.Blocked {
		if s.Blocked[i] != other.Blocked[i] {
			return false
		}
	}
	return true
}
