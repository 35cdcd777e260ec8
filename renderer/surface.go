// Package renderer draws the particle field and its backdrop in a raylib window.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/canvas"
)

// Segment counts for curved shapes.
const (
	ellipseSegments = 24
	ringSegments    = 32
	gradientLayers  = 3
)

// Surface implements canvas.Surface on the current raylib draw target.
// Drawing calls must happen between Begin/End of a frame or texture mode.
type Surface struct {
	w, h int
}

// NewSurface creates a surface reporting a w×h size.
func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

// Resize updates the reported size.
func (s *Surface) Resize(w, h int) {
	s.w, s.h = w, h
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Clear() {
	rl.ClearBackground(rl.Blank)
}

func (s *Surface) FillCircle(cx, cy, r float64, p canvas.Paint) {
	if !p.Radial {
		rl.DrawCircleV(vec(cx, cy), float32(r), toRL(p.Inner))
		return
	}
	// DrawCircleGradient takes an integer center, so nest solid circles instead.
	for _, b := range gradientBands(p) {
		rl.DrawCircleV(vec(cx, cy), float32(r*b.scale), toRL(b.color))
	}
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	inner := max(r-width/2, 0)
	rl.DrawRing(vec(cx, cy), float32(inner), float32(r+width/2), 0, 360, ringSegments, toRL(c))
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, p canvas.Paint) {
	if !p.Radial {
		fillFan(cx, cy, canvas.EllipsePoints(cx, cy, rx, ry, rotation, ellipseSegments), p.Inner)
		return
	}
	for _, b := range gradientBands(p) {
		pts := canvas.EllipsePoints(cx, cy, rx*b.scale, ry*b.scale, rotation, ellipseSegments)
		fillFan(cx, cy, pts, b.color)
	}
}

func (s *Surface) FillRect(cx, cy, w, h, rotation float64, c color.NRGBA) {
	rl.DrawRectanglePro(
		rl.Rectangle{X: float32(cx), Y: float32(cy), Width: float32(w), Height: float32(h)},
		rl.Vector2{X: float32(w / 2), Y: float32(h / 2)},
		float32(rotation*180/math.Pi),
		toRL(c),
	)
}

func (s *Surface) FillPolygon(pts []canvas.Point, c color.NRGBA) {
	col := toRL(c)
	for _, tri := range canvas.Triangulate(pts) {
		v := FanVertices(tri[:])
		rl.DrawTriangle(v[0], v[1], v[2], col)
	}
}

func (s *Surface) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	rl.DrawLineEx(vec(x1, y1), vec(x2, y2), float32(width), toRL(c))
}

// gradientBand is one nested layer of an approximated radial gradient.
type gradientBand struct {
	scale float64 // Fraction of the full radius
	color color.NRGBA
}

// gradientBands splits a radial paint into nested layers, outermost first.
func gradientBands(p canvas.Paint) []gradientBand {
	bands := make([]gradientBand, 0, gradientLayers)
	for i := gradientLayers; i >= 1; i-- {
		scale := float64(i) / gradientLayers
		bands = append(bands, gradientBand{scale: scale, color: p.At(scale)})
	}
	return bands
}

// fillFan fills a convex outline around (cx, cy).
func fillFan(cx, cy float64, outline []canvas.Point, c color.NRGBA) {
	pts := make([]canvas.Point, 0, len(outline)+2)
	pts = append(pts, canvas.Point{X: cx, Y: cy})
	pts = append(pts, outline...)
	pts = append(pts, outline[0])
	rl.DrawTriangleFan(FanVertices(pts), toRL(c))
}

// FanVertices converts pts to raylib vertices wound counter-clockwise on
// screen, as raylib's triangle calls require. For fans the first point is the
// hub and is kept in place.
func FanVertices(pts []canvas.Point) []rl.Vector2 {
	out := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		out[i] = vec(p.X, p.Y)
	}
	if len(pts) < 3 {
		return out
	}

	rim := pts
	if len(pts) > 3 {
		rim = pts[1:]
	}
	if canvas.SignedArea(rim) > 0 {
		start := len(out) - len(rim)
		for i, j := start, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

func toRL(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
