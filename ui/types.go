// Package ui draws the window overlays: the status HUD and the theme panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Style holds UI styling constants.
type Style struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ActiveColor    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	SwatchSize     int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultStyle returns the default UI style.
func DefaultStyle() Style {
	return Style{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		ActiveColor:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		SwatchSize:     12,
		ButtonHeight:   24,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
