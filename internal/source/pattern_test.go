package source

import "testing"

func TestPatternFrame(t *testing.T) {
	p := NewPattern(80, 60)

	w, h, pixels, ok := p.Frame()
	if !ok {
		t.Fatal("pattern produced no frame")
	}
	if w != 80 || h != 60 {
		t.Errorf("frame size = %dx%d, want 80x60", w, h)
	}
	if len(pixels) != 80*60*4 {
		t.Errorf("pixel buffer length = %d, want %d", len(pixels), 80*60*4)
	}

	// Fully opaque RGBA.
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, pixels[i])
		}
	}
}

func TestPatternDefaultsOnBadSize(t *testing.T) {
	p := NewPattern(0, -5)
	w, h, _, _ := p.Frame()
	if w < 1 || h < 1 {
		t.Errorf("frame size = %dx%d, want positive defaults", w, h)
	}
}

func TestImageMissingFile(t *testing.T) {
	if _, err := NewImage("/nonexistent/frame.png"); err == nil {
		t.Error("NewImage accepted a missing file")
	}
}
