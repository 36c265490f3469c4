package drawer

import "slidemenu/internal/motion"

const (
	// RubberbandInterval bounds how far past [0,1] a drag can stretch progress.
	RubberbandInterval = 0.70
	// CommitThreshold is the projected progress at or above which a release presents.
	CommitThreshold = 0.5
)

type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// GestureSample is one pan update. Translation is cumulative since the pan
// began; Velocity is in host units per second.
type GestureSample struct {
	Phase       Phase
	Translation motion.Vec2
	Velocity    motion.Vec2
}

// TransitionIntent is a request to move progress to Target.
type TransitionIntent struct {
	Target   float64
	Animated bool
}

// GestureInterpreter maps pan samples onto progress relative to the value
// captured when the pan began.
type GestureInterpreter struct {
	decelerationRate float64
	baseline         float64
	active           bool
}

func NewGestureInterpreter(decelerationRate float64) *GestureInterpreter {
	if motion.ValidateDecelerationRate(decelerationRate) != nil {
		decelerationRate = motion.DecelerationRateNormal
	}
	return &GestureInterpreter{decelerationRate: decelerationRate}
}

func (g *GestureInterpreter) DecelerationRate() float64 { return g.decelerationRate }

func (g *GestureInterpreter) Active() bool { return g.active }

// Begin captures the progress the pan is measured against.
func (g *GestureInterpreter) Begin(current float64) {
	g.baseline = current
	g.active = true
}

// Track returns the damped progress for a Changed sample. Dragging left
// (negative dx) opens the menu.
func (g *GestureInterpreter) Track(s GestureSample, menuWidth float64) (float64, bool) {
	if !g.active || menuWidth <= 0 {
		return 0, false
	}
	raw := g.baseline - s.Translation.X/menuWidth
	return motion.Rubberband(raw, 0, 1, RubberbandInterval), true
}

// Release ends the pan and decides which edge to settle on. The release
// velocity is projected forward so a quick flick can commit before the
// finger crosses the threshold. Cancelled pans carry no velocity bias.
func (g *GestureInterpreter) Release(s GestureSample, menuWidth float64) (TransitionIntent, bool) {
	if !g.active {
		return TransitionIntent{}, false
	}
	g.active = false
	if menuWidth <= 0 {
		return TransitionIntent{}, false
	}
	velocity := s.Velocity.X
	if s.Phase == PhaseCancelled {
		velocity = 0
	}
	projected := s.Translation.X + motion.Project(velocity, g.decelerationRate)
	final := g.baseline - projected/menuWidth
	target := 0.0
	if final >= CommitThreshold {
		target = 1
	}
	return TransitionIntent{Target: target, Animated: true}, true
}

// Reset drops an in-flight pan without producing an intent.
func (g *GestureInterpreter) Reset() {
	g.active = false
}
