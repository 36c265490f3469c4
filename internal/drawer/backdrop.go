package drawer

// DefaultEdgeMargin widens the menu's hit region past its leading edge so a
// swipe that starts just outside the panel still grabs it.
const DefaultEdgeMargin = 18.0

// ExpandedContains reports whether p falls in frame grown by leadingMargin
// on its left edge.
func ExpandedContains(frame Rect, p Point, leadingMargin float64) bool {
	return frame.Inset(0, -leadingMargin, 0, 0).Contains(p)
}

// Backdrop is the dimmed surface behind the menu. Touches the foreground
// does not absorb are reported to the registered handler.
type Backdrop struct {
	margin  float64
	handler func()
}

func NewBackdrop(leadingMargin float64) *Backdrop {
	if leadingMargin < 0 {
		leadingMargin = 0
	}
	return &Backdrop{margin: leadingMargin}
}

// SetHandler registers the passthrough callback. The backdrop does not own it.
func (b *Backdrop) SetHandler(fn func()) { b.handler = fn }

func (b *Backdrop) Margin() float64 { return b.margin }

// Absorbs reports whether the foreground would take a touch at p.
func (b *Backdrop) Absorbs(p Point, foreground Rect) bool {
	return ExpandedContains(foreground, p, b.margin)
}

// HitTest returns true when the foreground absorbs p. Otherwise the touch
// landed on the backdrop itself; the handler fires once and false is returned
// so the host can keep forwarding the touch to what lies underneath.
func (b *Backdrop) HitTest(p Point, foreground Rect) bool {
	if b.Absorbs(p, foreground) {
		return true
	}
	if b.handler != nil {
		b.handler()
	}
	return false
}
