package renderer

import (
	"image/color"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/canvas"
)

// area2 is twice the signed area of vertices in raylib space (y down).
func area2(v []rl.Vector2) float32 {
	var sum float32
	for i := range v {
		j := (i + 1) % len(v)
		sum += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return sum
}

func TestFanVerticesTriangleWinding(t *testing.T) {
	clockwise := []canvas.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	counter := []canvas.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 0}}

	for _, pts := range [][]canvas.Point{clockwise, counter} {
		v := FanVertices(pts)
		if area2(v) >= 0 {
			t.Errorf("expected counter-clockwise vertices for %v, got %v", pts, v)
		}
	}
}

func TestFanVerticesKeepsHub(t *testing.T) {
	hub := canvas.Point{X: 50, Y: 50}
	rim := canvas.EllipsePoints(50, 50, 10, 5, 0.3, 12)
	pts := append([]canvas.Point{hub}, rim...)
	pts = append(pts, rim[0])

	v := FanVertices(pts)
	if v[0].X != 50 || v[0].Y != 50 {
		t.Errorf("expected hub first, got %v", v[0])
	}
	if area2(v[1:]) >= 0 {
		t.Errorf("expected rim wound counter-clockwise")
	}
	if len(v) != len(pts) {
		t.Errorf("expected %d vertices, got %d", len(pts), len(v))
	}
}

func TestToRL(t *testing.T) {
	c := toRL(color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 4 {
		t.Errorf("expected straight channel copy, got %v", c)
	}
}

func TestGradientBands(t *testing.T) {
	inner := color.NRGBA{R: 255, A: 255}
	outer := color.NRGBA{B: 255, A: 0}
	bands := gradientBands(canvas.RadialGradient(inner, outer))

	if len(bands) != gradientLayers {
		t.Fatalf("expected %d bands, got %d", gradientLayers, len(bands))
	}
	if bands[0].scale != 1 || bands[0].color != outer {
		t.Errorf("expected outermost band at full radius in outer color, got %+v", bands[0])
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].scale >= bands[i-1].scale {
			t.Errorf("band %d: expected shrinking radius, got %v after %v", i, bands[i].scale, bands[i-1].scale)
		}
		if bands[i].color.R <= bands[i-1].color.R {
			t.Errorf("band %d: expected color closer to inner, got %+v", i, bands[i].color)
		}
	}
}
