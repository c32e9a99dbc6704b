// Package mesh turns the control-point grid into a triangle list.
package mesh

import (
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
)

// Mesh is the derived triangle list: two floats per vertex, three
// vertices per triangle, positions in normalized [0,1] space and UVs
// covering the source rectangle. It is disposable derived data, never a
// source of truth.
type Mesh struct {
	Positions []float32
	TexCoords []float32
	Triangles int
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return m.Triangles * 3
}

// Build emits two triangles per unblocked cell in row-major order:
// (TL, TR, BL) then (TR, BR, BL), with the cell's UV rectangle
// (c/cols, r/rows)-((c+1)/cols, (r+1)/rows). Blocked cells contribute
// no geometry. Output is fully deterministic for a given grid and mask,
// so exact snapshot assertions hold.
func Build(m *grid.Model) *Mesh {
	size := m.Size()
	cells := size.Rows*size.Cols - m.BlockedCount()

	out := &Mesh{
		Positions: make([]float32, 0, cells*12),
		TexCoords: make([]float32, 0, cells*12),
		Triangles: cells * 2,
	}

	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			if m.Blocked(r, c) {
				continue
			}

			tl, _ := m.ControlPoint(r, c)
			tr, _ := m.ControlPoint(r, c+1)
			br, _ := m.ControlPoint(r+1, c+1)
			bl, _ := m.ControlPoint(r+1, c)

			u0 := float32(c) / float32(size.Cols)
			v0 := float32(r) / float32(size.Rows)
			u1 := float32(c+1) / float32(size.Cols)
			v1 := float32(r+1) / float32(size.Rows)

			out.Positions = append(out.Positions,
				tl.X, tl.Y, tr.X, tr.Y, bl.X, bl.Y,
				tr.X, tr.Y, br.X, br.Y, bl.X, bl.Y,
			)
			out.TexCoords = append(out.TexCoords,
				u0, v0, u1, v0, u0, v1,
				u1, v0, u1, v1, u0, v1,
			)
		}
	}

	return out
}
