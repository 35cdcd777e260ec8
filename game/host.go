// Package game runs the particle field in a raylib window or headless.
package game

import (
	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/event"
)

type size struct {
	w, h int
}

type frame struct {
	dt  float64
	dst canvas.Surface
}

// signals is the field.Host both runners expose: current size plus resize
// and frame notifications.
type signals struct {
	width, height int
	resized       event.Signal[size]
	frames        event.Signal[frame]
}

func (s *signals) Size() (int, int) {
	return s.width, s.height
}

func (s *signals) OnResize(fn func(w, h int)) func() {
	return s.resized.Subscribe(func(sz size) { fn(sz.w, sz.h) })
}

func (s *signals) OnFrame(fn func(dt float64, dst canvas.Surface)) func() {
	return s.frames.Subscribe(func(f frame) { fn(f.dt, f.dst) })
}

// resize records a new size and notifies subscribers. Unchanged sizes are ignored.
func (s *signals) resize(w, h int) bool {
	if w == s.width && h == s.height {
		return false
	}
	s.width, s.height = w, h
	s.resized.Emit(size{w: w, h: h})
	return true
}

func (s *signals) frame(dt float64, dst canvas.Surface) {
	s.frames.Emit(frame{dt: dt, dst: dst})
}
