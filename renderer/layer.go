package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Layer is an offscreen render target composited over the window at a fixed
// opacity. The particle field is painted into it at full strength and shown
// at Opacity, so overlapping shapes do not stack past the layer alpha.
type Layer struct {
	target      rl.RenderTexture2D
	width       int32
	height      int32
	Opacity     float32
	initialized bool
}

// NewLayer creates a layer for a w×h window.
func NewLayer(w, h int32, opacity float32) *Layer {
	return &Layer{width: w, height: h, Opacity: opacity}
}

// Init allocates the render target (must be called after the raylib window is created).
func (l *Layer) Init() {
	if l.initialized {
		return
	}
	l.target = rl.LoadRenderTexture(l.width, l.height)
	l.initialized = true
}

// Resize reallocates the render target at the new size.
func (l *Layer) Resize(w, h int32) {
	if w == l.width && h == l.height {
		return
	}
	l.Unload()
	l.width, l.height = w, h
	l.Init()
}

// Begin redirects drawing into the layer.
func (l *Layer) Begin() {
	if !l.initialized {
		l.Init()
	}
	rl.BeginTextureMode(l.target)
}

// End restores drawing to the window.
func (l *Layer) End() {
	rl.EndTextureMode()
}

// Draw composites the layer onto the window.
func (l *Layer) Draw() {
	if !l.initialized {
		return
	}
	srcRect := rl.Rectangle{
		X:      0,
		Y:      float32(l.height),
		Width:  float32(l.width),
		Height: -float32(l.height), // Negative to flip
	}
	dstRect := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(l.width),
		Height: float32(l.height),
	}
	rl.DrawTexturePro(l.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.Fade(rl.White, l.Opacity))
}

// Unload frees the render target.
func (l *Layer) Unload() {
	if l.initialized {
		rl.UnloadRenderTexture(l.target)
		l.initialized = false
	}
}
