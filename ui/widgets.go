package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles UI drawing with consistent styling.
type Renderer struct {
	Style Style
}

// NewRenderer creates a renderer with the default style.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Style.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Style.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Style.HeaderFontSize, r.Style.SectionHeader)
	return y + r.Style.LineHeight
}

// DrawLabelValue draws a label and value on the same line and returns the new Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Style.FontSize, r.Style.LabelColor)
	rl.DrawText(value, x+r.Style.LabelWidth, y, r.Style.FontSize, r.Style.ValueColor)
	return y + r.Style.LineHeight
}

// DrawSwatches draws a row of color squares and returns the new Y position.
func (r *Renderer) DrawSwatches(x, y int32, label string, colors ...rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Style.FontSize, r.Style.LabelColor)
	sx := x + r.Style.LabelWidth
	for _, c := range colors {
		rl.DrawRectangle(sx, y+1, r.Style.SwatchSize, r.Style.SwatchSize, c)
		rl.DrawRectangleLines(sx, y+1, r.Style.SwatchSize, r.Style.SwatchSize, r.Style.PanelBorder)
		sx += r.Style.SwatchSize + 4
	}
	return y + r.Style.LineHeight
}
