package field

import (
	"image/color"
	"math"

	"github.com/pthm-cable/backdrop/canvas"
)

// Fixed accent colors used by some profiles regardless of theme.
var (
	flameOuter  = color.NRGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}
	orbitOuter  = color.NRGBA{R: 0x4a, G: 0x55, B: 0x68, A: 0xff}
	bladeSilver = color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	leafColors  = [...]color.NRGBA{
		{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
		{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
		{R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
	}
)

const (
	ringWidth   = 1.0
	bandLayers  = 3
	bandStep    = 10.0
	bandBaseY   = 50.0 // Distance of the first band above the bottom edge
	bandSpacing = 30.0
)

// Render clears dst and paints the set: the wave background bands, every
// particle in its profile style, then connective lines for the wave and blade
// profiles. It returns the number of lines drawn.
func (s *Set) Render(dst canvas.Surface) int {
	s.paint(dst)
	return s.connections(dst)
}

func (s *Set) paint(dst canvas.Surface) {
	dst.Clear()
	if s.world == nil || s.profile == nil {
		return
	}
	s.profile.draw(dst)
}

func (s *Set) connections(dst canvas.Surface) int {
	if s.world == nil || !s.motion.Connective() {
		return 0
	}
	return s.connect(dst)
}

// connect joins every pair closer than the connect distance.
func (s *Set) connect(dst canvas.Surface) int {
	pts := s.points[:0]
	cols := s.colors[:0]
	query := s.base.Query()
	for query.Next() {
		pos, _, app, _ := query.Get()
		pts = append(pts, canvas.Point{X: pos.X, Y: pos.Y})
		cols = append(cols, app.Color)
	}
	s.points, s.colors = pts, cols

	if s.grid == nil {
		s.grid = newGrid(s.width, s.height, s.cfg.WrapMargin, s.cfg.ConnectDistance)
	}
	s.grid.reset(pts)

	lines := 0
	s.grid.pairs(pts, s.cfg.ConnectDistance, func(i, j int, d float64) {
		a := ConnectionAlpha(d, s.cfg.ConnectDistance, s.cfg.ConnectAlpha)
		dst.Line(pts[i].X, pts[i].Y, pts[j].X, pts[j].Y,
			s.cfg.ConnectWidth, canvas.WithAlpha(cols[i], a))
		lines++
	})
	return lines
}

// drawBands paints translucent sine bands rising from the bottom edge.
func (s *Set) drawBands(dst canvas.Surface) {
	w, h := s.width, s.height
	for layer := 0; layer < bandLayers; layer++ {
		l := float64(layer)
		amp := 20 - l*5

		pts := make([]canvas.Point, 0, int(w/bandStep)+3)
		pts = append(pts, canvas.Point{X: 0, Y: h})
		for x := 0.0; x <= w; x += bandStep {
			y := h - bandBaseY - l*bandSpacing + math.Sin(x*0.01+s.bandPhase+l)*amp
			pts = append(pts, canvas.Point{X: x, Y: y})
		}
		pts = append(pts, canvas.Point{X: w, Y: h})

		dst.FillPolygon(pts, canvas.WithAlpha(s.palette.Primary, 0.1-l*0.02))
	}
}

func (p *driftProfile) draw(dst canvas.Surface) {
	query := p.set.base.Query()
	for query.Next() {
		pos, _, app, _ := query.Get()
		dst.FillCircle(pos.X, pos.Y, app.Radius, canvas.Solid(canvas.WithAlpha(app.Color, app.Opacity)))
	}
}

func (p *waveProfile) draw(dst canvas.Surface) {
	p.set.drawBands(dst)

	query := p.filter.Query()
	for query.Next() {
		pos, _, app, _, _ := query.Get()
		dst.FillCircle(pos.X, pos.Y, app.Radius, canvas.Solid(canvas.WithAlpha(app.Color, app.Opacity)))
		// Ripple
		dst.StrokeCircle(pos.X, pos.Y, app.Radius*2, ringWidth, canvas.WithAlpha(app.Color, app.Opacity*0.3))
	}
}

func (p *flameProfile) draw(dst canvas.Surface) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, app, mot, _ := query.Get()
		paint := canvas.RadialGradient(
			canvas.WithAlpha(app.Color, app.Opacity),
			canvas.WithAlpha(flameOuter, app.Opacity*0.3),
		)
		dst.FillEllipse(pos.X, pos.Y, app.Radius, app.Radius*1.5, mot.Angle, paint)
	}
}

func (p *orbitProfile) draw(dst canvas.Surface) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, app, _, _ := query.Get()
		paint := canvas.RadialGradient(
			canvas.WithAlpha(app.Color, app.Opacity),
			canvas.WithAlpha(orbitOuter, app.Opacity*0.5),
		)
		dst.FillCircle(pos.X, pos.Y, app.Radius, paint)
		// Orbit trail
		dst.StrokeCircle(pos.X, pos.Y, app.Radius*3, ringWidth, canvas.WithAlpha(app.Color, app.Opacity*0.1))
	}
}

func (p *leafProfile) draw(dst canvas.Surface) {
	t := p.set.clock
	query := p.filter.Query()
	for query.Next() {
		pos, _, app, mot, _ := query.Get()
		col := leafColors[LeafColorIndex(t, pos.X)]
		dst.FillEllipse(pos.X, pos.Y, app.Radius*1.5, app.Radius*0.8, mot.Angle,
			canvas.Solid(canvas.WithAlpha(col, app.Opacity)))
	}
}

// LeafColorIndex picks one of the three foliage colors; it cycles with time
// and horizontal position.
func LeafColorIndex(t, x float64) int {
	i := int(math.Floor(t+x)) % len(leafColors)
	if i < 0 {
		i += len(leafColors)
	}
	return i
}

func (p *bladeProfile) draw(dst canvas.Surface) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, app, mot, blade := query.Get()
		base := app.Color
		if blade.Metallic {
			base = bladeSilver
		}
		col := canvas.WithAlpha(base, app.Opacity)
		r := app.Radius

		dst.FillRect(pos.X, pos.Y, r*4, r*0.6, mot.Angle, col)
		tip := canvas.Transform([]canvas.Point{{X: r * 2, Y: 0}, {X: r * 3, Y: 0}, {X: r * 2, Y: -r * 0.3}}, pos.X, pos.Y, mot.Angle)
		dst.FillPolygon(tip, col)
	}
}
