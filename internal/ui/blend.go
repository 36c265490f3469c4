package ui

import (
	lipgloss "charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var black = colorful.Color{}

// dim darkens c the way a black layer of the given opacity would.
func dim(c colorful.Color, alpha float64) colorful.Color {
	if alpha <= 0 {
		return c
	}
	return c.BlendRgb(black, alpha).Clamped()
}

// over composites fg at opacity alpha on top of bg.
func over(fg, bg colorful.Color, alpha float64) colorful.Color {
	if alpha >= 1 {
		return fg
	}
	if alpha <= 0 {
		return bg
	}
	return bg.BlendRgb(fg, alpha).Clamped()
}

func paint(fg, bg colorful.Color, s string) string {
	return lipgloss.NewStyle().Foreground(fg).Background(bg).Render(s)
}
