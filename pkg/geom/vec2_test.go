package geom

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Sub(t *testing.T) {
	a := Vec2{5, 7}
	b := Vec2{2, 3}
	got := a.Sub(b)
	want := Vec2{3, 4}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec2Cross(t *testing.T) {
	right := Vec2{1, 0}
	up := Vec2{0, 1}
	if got := right.Cross(up); got != 1 {
		t.Errorf("Cross(right, up) = %v, want 1", got)
	}
	if got := up.Cross(right); got != -1 {
		t.Errorf("Cross(up, right) = %v, want -1", got)
	}
	if got := right.Cross(Vec2{2, 0}); got != 0 {
		t.Errorf("Cross of parallel vectors = %v, want 0", got)
	}
}

func TestVec2Distance(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{3, 4}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Vec2.Distance() = %v, want 5", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp01Vec(t *testing.T) {
	got := Clamp01Vec(Vec2{-1, 2})
	want := Vec2{0, 1}
	if got != want {
		t.Errorf("Clamp01Vec() = %v, want %v", got, want)
	}
}
