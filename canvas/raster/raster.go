// Package raster implements canvas.Surface on an offscreen gg context, for
// exporting frames as PNG without a window.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/backdrop/canvas"
)

// Surface draws into a software pixmap.
type Surface struct {
	ctx        *gg.Context
	w, h       int
	background color.NRGBA // Clear color; zero = transparent
}

// New creates a w×h surface.
func New(w, h int) *Surface {
	return &Surface{ctx: gg.NewContext(w, h), w: w, h: h}
}

// SetBackground sets the color Clear fills with.
func (s *Surface) SetBackground(c color.NRGBA) {
	s.background = c
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Clear() {
	if s.background.A == 0 {
		s.ctx.Clear()
		return
	}
	s.ctx.ClearWithColor(toRGBA(s.background))
}

func (s *Surface) FillCircle(cx, cy, r float64, p canvas.Paint) {
	s.ctx.DrawCircle(cx, cy, r)
	s.fill(cx, cy, r, p)
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	s.ctx.SetLineWidth(width)
	s.setColor(c)
	s.ctx.DrawCircle(cx, cy, r)
	s.stroke()
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, p canvas.Paint) {
	// Path points are transformed as they are added, so the matrix can be
	// restored before filling.
	s.ctx.Push()
	s.ctx.Translate(cx, cy)
	s.ctx.Rotate(rotation)
	s.ctx.DrawEllipse(0, 0, rx, ry)
	s.ctx.Pop()
	s.fill(cx, cy, max(rx, ry), p)
}

func (s *Surface) FillRect(cx, cy, w, h, rotation float64, c color.NRGBA) {
	s.FillPolygon(canvas.RectPoints(cx, cy, w, h, rotation), c)
}

func (s *Surface) FillPolygon(pts []canvas.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.ctx.ClosePath()
	s.setColor(c)
	if err := s.ctx.Fill(); err != nil {
		slog.Debug("raster fill failed", "error", err)
	}
}

func (s *Surface) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	s.ctx.SetLineWidth(width)
	s.setColor(c)
	s.ctx.DrawLine(x1, y1, x2, y2)
	s.stroke()
}

func (s *Surface) fill(cx, cy, r float64, p canvas.Paint) {
	if p.Radial {
		brush := gg.NewRadialGradientBrush(cx, cy, 0, r).
			AddColorStop(0, toRGBA(p.Inner)).
			AddColorStop(1, toRGBA(p.Outer))
		s.ctx.SetFillBrush(brush)
	} else {
		s.setColor(p.Inner)
	}
	if err := s.ctx.Fill(); err != nil {
		slog.Debug("raster fill failed", "error", err)
	}
}

func (s *Surface) stroke() {
	if err := s.ctx.Stroke(); err != nil {
		slog.Debug("raster stroke failed", "error", err)
	}
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image {
	return s.ctx.Image()
}

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

// setColor avoids Context.SetColor, which reads premultiplied channels.
func (s *Surface) setColor(c color.NRGBA) {
	s.ctx.SetFillBrush(gg.Solid(toRGBA(c)))
}

// toRGBA converts straight-alpha color without premultiplying.
func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
