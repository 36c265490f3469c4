package devtools

import "slidemenu/internal/drawer"

type Action string

const (
	ActionPresent  Action = "present"
	ActionDismiss  Action = "dismiss"
	ActionToggle   Action = "toggle"
	ActionBackdrop Action = "backdrop"
	ActionSnap     Action = "snap"
	ActionPan      Action = "pan"
	ActionTick     Action = "tick"
	ActionSettle   Action = "settle"
)

// Step is one scripted input. Pan distances and velocities are fractions of
// the menu width so scripts work at any container size.
type Step struct {
	Action Action
	Value  float64
	Phase  drawer.Phase
	DX     float64
	VX     float64
}

type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

func pan(phase drawer.Phase, dx, vx float64) Step {
	return Step{Action: ActionPan, Phase: phase, DX: dx, VX: vx}
}

func ticks(n int) Step { return Step{Action: ActionTick, Value: float64(n)} }

var settle = Step{Action: ActionSettle}

var scenarios = []Scenario{
	{
		Name:        "present",
		Description: "Animate open from rest.",
		Steps:       []Step{{Action: ActionPresent}, settle},
	},
	{
		Name:        "dismiss",
		Description: "Animate closed from fully open.",
		Steps:       []Step{{Action: ActionSnap, Value: 1}, {Action: ActionDismiss}, settle},
	},
	{
		Name:        "toggle",
		Description: "Toggle open, then toggle again mid-flight to reverse.",
		Steps:       []Step{{Action: ActionToggle}, ticks(10), {Action: ActionToggle}, settle},
	},
	{
		Name:        "interrupt",
		Description: "Grab the menu while it opens and throw it closed.",
		Steps: []Step{
			{Action: ActionPresent}, ticks(8),
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, 0.1, 1),
			pan(drawer.PhaseEnded, 0.2, 2),
			settle,
		},
	},
	{
		Name:        "commit",
		Description: "Drag open past halfway and release.",
		Steps: []Step{
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, -0.3, -0.5),
			pan(drawer.PhaseChanged, -0.6, -0.5),
			pan(drawer.PhaseEnded, -0.6, -0.5),
			settle,
		},
	},
	{
		Name:        "revert",
		Description: "A short slow drag springs back closed.",
		Steps: []Step{
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, -0.2, 0),
			pan(drawer.PhaseEnded, -0.2, 0),
			settle,
		},
	},
	{
		Name:        "fling",
		Description: "A short fast drag is projected open.",
		Steps: []Step{
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, -0.15, -5),
			pan(drawer.PhaseEnded, -0.15, -5),
			settle,
		},
	},
	{
		Name:        "overscroll",
		Description: "Drag past fully open; the rubber band resists and settles back.",
		Steps: []Step{
			{Action: ActionSnap, Value: 1},
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, -0.5, 0),
			pan(drawer.PhaseEnded, -0.5, 0),
			settle,
		},
	},
	{
		Name:        "backdrop",
		Description: "Tap the dimmed backdrop to close.",
		Steps:       []Step{{Action: ActionSnap, Value: 1}, {Action: ActionBackdrop}, settle},
	},
	{
		Name:        "cancel",
		Description: "A cancelled drag commits on position alone.",
		Steps: []Step{
			pan(drawer.PhaseBegan, 0, 0),
			pan(drawer.PhaseChanged, -0.7, -3),
			pan(drawer.PhaseCancelled, -0.7, -3),
			settle,
		},
	},
}
