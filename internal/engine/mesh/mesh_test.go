package mesh

import (
	"testing"

	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

func TestBuildTriangleCount(t *testing.T) {
	tests := []struct {
		rows, cols int
		blocked    [][2]int
		want       int
	}{
		{1, 1, nil, 2},
		{3, 3, nil, 18},
		{3, 3, [][2]int{{1, 1}}, 16},
		{2, 4, [][2]int{{0, 0}, {1, 3}}, 12},
	}
	for _, tt := range tests {
		m, err := grid.New(tt.rows, tt.cols)
		if err != nil {
			t.Fatalf("New(%d, %d): %v", tt.rows, tt.cols, err)
		}
		for _, b := range tt.blocked {
			m.ToggleBlocked(b[0], b[1])
		}

		got := Build(m)
		if got.Triangles != tt.want {
			t.Errorf("%dx%d with %d blocked: Triangles = %d, want %d",
				tt.rows, tt.cols, len(tt.blocked), got.Triangles, tt.want)
		}
		if len(got.Positions) != got.Triangles*6 {
			t.Errorf("Positions length = %d, want %d", len(got.Positions), got.Triangles*6)
		}
		if len(got.TexCoords) != len(got.Positions) {
			t.Errorf("TexCoords length %d != Positions length %d", len(got.TexCoords), len(got.Positions))
		}
	}
}

func TestBuildUnblockRestoresGeometry(t *testing.T) {
	m, _ := grid.New(3, 3)

	m.ToggleBlocked(1, 1)
	if got := Build(m).Triangles; got != 16 {
		t.Errorf("blocked (1,1): Triangles = %d, want 16", got)
	}

	m.ToggleBlocked(1, 1)
	if got := Build(m).Triangles; got != 18 {
		t.Errorf("unblocked: Triangles = %d, want 18", got)
	}
}

func TestBuildSingleCellLayout(t *testing.T) {
	m, _ := grid.New(1, 1)
	got := Build(m)

	wantPos := []float32{
		0, 0, 1, 0, 0, 1, // TL, TR, BL
		1, 0, 1, 1, 0, 1, // TR, BR, BL
	}
	if len(got.Positions) != len(wantPos) {
		t.Fatalf("Positions length = %d, want %d", len(got.Positions), len(wantPos))
	}
	for i := range wantPos {
		if got.Positions[i] != wantPos[i] {
			t.Errorf("Positions[%d] = %v, want %v", i, got.Positions[i], wantPos[i])
		}
	}
	// On an unwarped single cell, UVs equal positions.
	for i := range wantPos {
		if got.TexCoords[i] != wantPos[i] {
			t.Errorf("TexCoords[%d] = %v, want %v", i, got.TexCoords[i], wantPos[i])
		}
	}
}

func TestBuildFollowsWarpedPoints(t *testing.T) {
	m, _ := grid.New(1, 1)
	m.SetControlPoint(0, 0, geom.Vec2{X: 0.1, Y: 0.2})

	got := Build(m)
	if got.Positions[0] != 0.1 || got.Positions[1] != 0.2 {
		t.Errorf("warped TL = (%v, %v), want (0.1, 0.2)", got.Positions[0], got.Positions[1])
	}
	// UVs stay on the undeformed lattice regardless of the warp.
	if got.TexCoords[0] != 0 || got.TexCoords[1] != 0 {
		t.Errorf("warp leaked into UVs: (%v, %v)", got.TexCoords[0], got.TexCoords[1])
	}
}

func TestBuildUVPartition(t *testing.T) {
	m, _ := grid.New(3, 3)
	got := Build(m)

	// Sum of UV rect areas must tile the unit square exactly: 9 cells
	// of 1/9 each. Each cell contributes two triangles of equal area.
	var area float32
	for i := 0; i+11 < len(got.TexCoords); i += 12 {
		u0, v0 := got.TexCoords[i], got.TexCoords[i+1]
		u1 := got.TexCoords[i+2]
		v1 := got.TexCoords[i+5]
		area += (u1 - u0) * (v1 - v0)
	}
	if area < 0.999 || area > 1.001 {
		t.Errorf("UV rectangles cover area %v, want 1", area)
	}

	// No UV outside the unit square.
	for i, uv := range got.TexCoords {
		if uv < 0 || uv > 1 {
			t.Errorf("TexCoords[%d] = %v outside [0,1]", i, uv)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	m, _ := grid.New(4, 4)
	m.SetControlPoint(2, 2, geom.Vec2{X: 0.42, Y: 0.58})
	m.ToggleBlocked(0, 3)

	a := Build(m)
	b := Build(m)

	if a.Triangles != b.Triangles || len(a.Positions) != len(b.Positions) {
		t.Fatal("repeated builds differ in shape")
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.TexCoords[i] != b.TexCoords[i] {
			t.Fatalf("repeated builds differ at vertex float %d", i)
		}
	}
}
