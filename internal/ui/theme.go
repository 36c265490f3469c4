package ui

import (
	lipgloss "charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the flat colours that get blended while the drawer moves.
type Palette struct {
	Background colorful.Color
	Foreground colorful.Color
	RowAlt     colorful.Color
	HeaderBg   colorful.Color
	HeaderFg   colorful.Color
	StatusBg   colorful.Color
	StatusFg   colorful.Color
	PanelBg    colorful.Color
	PanelFg    colorful.Color
	Accent     colorful.Color
	Muted      colorful.Color
}

type Theme struct {
	Palette Palette
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Fail    lipgloss.Style
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return newTheme(Palette{
			Background: mustHex("#1E2430"),
			Foreground: mustHex("#F4F6FA"),
			RowAlt:     mustHex("#252C3A"),
			HeaderBg:   mustHex("#30394A"),
			HeaderFg:   mustHex("#F4F6FA"),
			StatusBg:   mustHex("#30394A"),
			StatusFg:   mustHex("#F4F6FA"),
			PanelBg:    mustHex("#F2B872"),
			PanelFg:    mustHex("#1E2430"),
			Accent:     mustHex("#86B6F6"),
			Muted:      mustHex("#A3ACC2"),
		})
	case "retro_terminal":
		return newTheme(Palette{
			Background: mustHex("#07150A"),
			Foreground: mustHex("#C5F7C4"),
			RowAlt:     mustHex("#0B1E0F"),
			HeaderBg:   mustHex("#12301A"),
			HeaderFg:   mustHex("#C5F7C4"),
			StatusBg:   mustHex("#12301A"),
			StatusFg:   mustHex("#C5F7C4"),
			PanelBg:    mustHex("#9CF5A2"),
			PanelFg:    mustHex("#07150A"),
			Accent:     mustHex("#E5D47A"),
			Muted:      mustHex("#73A17A"),
		})
	default:
		return newTheme(Palette{
			Background: mustHex("#0E1420"),
			Foreground: mustHex("#EAF2FF"),
			RowAlt:     mustHex("#141C2C"),
			HeaderBg:   mustHex("#1B2740"),
			HeaderFg:   mustHex("#EAF2FF"),
			StatusBg:   mustHex("#1B2740"),
			StatusFg:   mustHex("#EAF2FF"),
			PanelBg:    mustHex("#5EEBFF"),
			PanelFg:    mustHex("#0E1420"),
			Accent:     mustHex("#FFC857"),
			Muted:      mustHex("#9CAAC6"),
		})
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func newTheme(p Palette) Theme {
	return Theme{
		Palette: p,
		Accent:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6F91")).Bold(true),
	}
}
