// Package drawer implements an interruptible side menu whose visuals are a
// pure function of a single progress value: 0 is fully dismissed, 1 fully
// presented. Commands, a live pan gesture and a damped spring all drive that
// one value through Controller.
package drawer

import "slidemenu/internal/motion"

const (
	// MenuWidthFraction is the share of the container width the panel occupies.
	MenuWidthFraction = 0.60

	menuAlphaMin     = 0.4
	menuAlphaMax     = 0.8
	backdropAlphaMax = 0.2
	backdropAlphaCap = 0.6
)

type Size struct {
	Width  float64
	Height float64
}

type Point struct {
	X float64
	Y float64
}

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) MaxX() float64 { return r.X + r.Width }

func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains uses half-open bounds so adjacent rects never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Inset shrinks the rect by the given edge amounts; negative values grow it.
func (r Rect) Inset(top, left, bottom, right float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
}

// Visuals is everything a host applies for one progress value.
type Visuals struct {
	Progress      float64
	MenuFrame     Rect
	MenuAlpha     float64
	BackdropAlpha float64
}

// MenuOffsetX is the panel's horizontal origin.
func (v Visuals) MenuOffsetX() float64 { return v.MenuFrame.X }

func MenuWidth(size Size) float64 {
	return size.Width * MenuWidthFraction
}

// MenuAlpha starts partially visible so the panel cross-fades in.
func MenuAlpha(progress float64) float64 {
	return motion.Clip(motion.MapRange(progress, 0, 1, menuAlphaMin, menuAlphaMax), 0, 1)
}

func BackdropAlpha(progress float64) float64 {
	return motion.Clip(motion.MapRange(progress, 0, 1, 0, backdropAlphaMax), 0, backdropAlphaCap)
}

// MenuFrame slides the panel in from the right edge: fully off-screen at 0,
// flush with the right edge at 1.
func MenuFrame(progress float64, size Size) Rect {
	width := MenuWidth(size)
	return Rect{
		X:      motion.MapRange(progress, 0, 1, size.Width, size.Width-width),
		Y:      0,
		Width:  width,
		Height: size.Height,
	}
}

func VisualsFor(progress float64, size Size) Visuals {
	return Visuals{
		Progress:      progress,
		MenuFrame:     MenuFrame(progress, size),
		MenuAlpha:     MenuAlpha(progress),
		BackdropAlpha: BackdropAlpha(progress),
	}
}
