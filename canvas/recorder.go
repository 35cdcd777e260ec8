package canvas

import "image/color"

// OpKind identifies a recorded drawing call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpCircle
	OpRing
	OpEllipse
	OpRect
	OpPolygon
	OpLine
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpRing:
		return "ring"
	case OpEllipse:
		return "ellipse"
	case OpRect:
		return "rect"
	case OpPolygon:
		return "polygon"
	case OpLine:
		return "line"
	}
	return "unknown"
}

// Op is one recorded call. Unused fields are zero.
type Op struct {
	Kind     OpKind
	X, Y     float64 // Center, or line start
	X2, Y2   float64 // Line end
	RX, RY   float64 // Radii, or rect width/height
	Rotation float64
	Width    float64 // Stroke width
	Points   []Point
	Paint    Paint
}

// Recorder is a Surface that keeps every call. Clear drops earlier ops.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: cx, Y: cy, RX: rad, RY: rad, Paint: p})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRing, X: cx, Y: cy, RX: rad, RY: rad, Width: width, Paint: Solid(c)})
}

func (r *Recorder) FillEllipse(cx, cy, rx, ry, rotation float64, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpEllipse, X: cx, Y: cy, RX: rx, RY: ry, Rotation: rotation, Paint: p})
}

func (r *Recorder) FillRect(cx, cy, w, h, rotation float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: cx, Y: cy, RX: w, RY: h, Rotation: rotation, Paint: Solid(c)})
}

func (r *Recorder) FillPolygon(pts []Point, c color.NRGBA) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: cp, Paint: Solid(c)})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width, Paint: Solid(c)})
}

// Count returns how many ops of kind were recorded since the last Clear.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the ops of kind in call order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
