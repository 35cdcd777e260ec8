// Package canvas defines the drawing surface the particle field paints on.
// Backends (raylib window, gg raster, recorder) implement Surface.
package canvas

import (
	"image/color"
	"math"
)

// Point is a position in surface pixels, y pointing down.
type Point struct {
	X, Y float64
}

// Paint is a fill style: a solid color, or a radial gradient from Inner at
// the shape center to Outer at its edge.
type Paint struct {
	Inner  color.NRGBA
	Outer  color.NRGBA
	Radial bool
}

// Solid returns a single-color paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Inner: c, Outer: c}
}

// RadialGradient returns a center-to-edge gradient paint.
func RadialGradient(inner, outer color.NRGBA) Paint {
	return Paint{Inner: inner, Outer: outer, Radial: true}
}

// At returns the paint color at t in [0, 1] from center to edge.
func (p Paint) At(t float64) color.NRGBA {
	if !p.Radial {
		return p.Inner
	}
	return Lerp(p.Inner, p.Outer, t)
}

// Surface is a 2D drawing target. Rotations are in radians, clockwise on screen.
type Surface interface {
	Size() (w, h int)
	Clear()
	FillCircle(cx, cy, r float64, p Paint)
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)
	FillEllipse(cx, cy, rx, ry, rotation float64, p Paint)
	FillRect(cx, cy, w, h, rotation float64, c color.NRGBA)
	FillPolygon(pts []Point, c color.NRGBA)
	Line(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// WithAlpha returns c with its alpha set to floor(a*255), a clamped to [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Floor(Clamp01(a) * 255))
	return c
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates each channel of a toward b.
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Rotate turns p about the origin by angle radians.
func Rotate(p Point, angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Transform rotates local points by angle and translates them to (cx, cy).
func Transform(local []Point, cx, cy, angle float64) []Point {
	out := make([]Point, len(local))
	for i, p := range local {
		r := Rotate(p, angle)
		out[i] = Point{X: r.X + cx, Y: r.Y + cy}
	}
	return out
}

// EllipsePoints approximates a rotated ellipse outline with n vertices.
func EllipsePoints(cx, cy, rx, ry, rotation float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	local := make([]Point, n)
	for i := range local {
		a := 2 * math.Pi * float64(i) / float64(n)
		local[i] = Point{X: math.Cos(a) * rx, Y: math.Sin(a) * ry}
	}
	return Transform(local, cx, cy, rotation)
}

// RectPoints returns the corners of a w×h rectangle centered on (cx, cy), rotated.
func RectPoints(cx, cy, w, h, rotation float64) []Point {
	hw, hh := w/2, h/2
	return Transform([]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}, cx, cy, rotation)
}

// SignedArea returns the shoelace area of pts. Positive means clockwise on a
// y-down surface.
func SignedArea(pts []Point) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
