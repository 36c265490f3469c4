package ui

import "slidemenu/internal/drawer"

type Controller interface {
	OnMenuItem(id string)
	OnQuit()
	OnResize(cols, rows int)
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetContent(Content)
	SetInfo(title, markdown string)
	FlashStatus(msg string)
	Present()
	Dismiss()
	Toggle()
	Snapshot() Snapshot
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// Content is what the host draws behind and inside the drawer.
type Content struct {
	Title string
	Rows  []string
	Menu  []MenuItem
}

type MenuItem struct {
	ID    string
	Label string
}

// Snapshot is a copy of the last published frame, safe to read from any goroutine.
type Snapshot struct {
	Progress      float64
	State         string
	MenuX         float64
	MenuAlpha     float64
	BackdropAlpha float64
	Generation    uint64
	Cols          int
	Rows          int
}

func snapshotOf(f drawer.Frame, cols, rows int) Snapshot {
	return Snapshot{
		Progress:      f.Progress,
		State:         f.State.String(),
		MenuX:         f.MenuFrame.X,
		MenuAlpha:     f.MenuAlpha,
		BackdropAlpha: f.BackdropAlpha,
		Generation:    f.Generation,
		Cols:          cols,
		Rows:          rows,
	}
}
