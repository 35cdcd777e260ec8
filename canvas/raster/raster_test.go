package raster

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/backdrop/canvas"
)

func rgbaAt(s *Surface, x, y int) (r, g, b, a uint8) {
	c := color.RGBAModel.Convert(s.Image().At(x, y)).(color.RGBA)
	return c.R, c.G, c.B, c.A
}

func TestSurfaceClearBackground(t *testing.T) {
	s := New(32, 32)
	defer s.Close()

	s.SetBackground(color.NRGBA{R: 0, G: 0x11, B: 0x22, A: 255})
	s.Clear()

	r, g, b, a := rgbaAt(s, 5, 5)
	if r != 0 || g != 0x11 || b != 0x22 || a != 255 {
		t.Errorf("expected backdrop color, got %d,%d,%d,%d", r, g, b, a)
	}
}

func TestSurfaceFillCircle(t *testing.T) {
	s := New(64, 64)
	defer s.Close()

	s.Clear()
	s.FillCircle(32, 32, 10, canvas.Solid(color.NRGBA{R: 255, A: 255}))

	r, _, _, a := rgbaAt(s, 32, 32)
	if r < 200 || a < 200 {
		t.Errorf("expected red at circle center, got r=%d a=%d", r, a)
	}

	_, _, _, a = rgbaAt(s, 2, 2)
	if a != 0 {
		t.Errorf("expected transparent corner, got a=%d", a)
	}
}

func TestSurfaceRotatedRect(t *testing.T) {
	s := New(64, 64)
	defer s.Close()

	s.Clear()
	// A 40×4 bar turned upright covers the vertical center line only
	s.FillRect(32, 32, 40, 4, 1.5707963267948966, color.NRGBA{G: 255, A: 255})

	if _, g, _, _ := rgbaAt(s, 32, 16); g < 200 {
		t.Errorf("expected bar above center, got g=%d", g)
	}
	if _, _, _, a := rgbaAt(s, 16, 32); a != 0 {
		t.Errorf("expected nothing left of center, got a=%d", a)
	}
}

func TestSurfaceSavePNG(t *testing.T) {
	s := New(16, 16)
	defer s.Close()

	s.Clear()
	s.Line(0, 0, 15, 15, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG")
	}
}

func TestSurfaceImplementsCanvas(t *testing.T) {
	var _ canvas.Surface = New(1, 1)
}
