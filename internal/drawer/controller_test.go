package drawer

import (
	"math"
	"testing"
)

type manualScheduler struct {
	gens []uint64
}

func (m *manualScheduler) ScheduleTick(gen uint64) { m.gens = append(m.gens, gen) }

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) Render(f Frame) { r.frames = append(r.frames, f) }

func (r *frameRecorder) last() Frame { return r.frames[len(r.frames)-1] }

func newTestController(t *testing.T) (*Controller, *manualScheduler, *frameRecorder) {
	t.Helper()
	sched := &manualScheduler{}
	rec := &frameRecorder{}
	c := New(Options{
		Size:             Size{Width: 100, Height: 30},
		DecelerationRate: 0.99,
		Renderer:         rec,
		Scheduler:        sched,
	})
	return c, sched, rec
}

func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if !c.Tick(c.Generation()) {
			return
		}
	}
	t.Fatalf("animation never settled, progress=%v", c.Progress())
}

func tickUntil(t *testing.T, c *Controller, reached func(float64) bool) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if reached(c.Progress()) {
			return
		}
		if !c.Tick(c.Generation()) {
			break
		}
	}
	if !reached(c.Progress()) {
		t.Fatalf("progress never reached condition, at %v", c.Progress())
	}
}

func TestInitialStateIsDismissed(t *testing.T) {
	c, _, rec := newTestController(t)
	if c.State() != StateDismissed || c.Progress() != 0 {
		t.Fatalf("unexpected initial state %v at %v", c.State(), c.Progress())
	}
	if len(rec.frames) != 1 || rec.last().MenuFrame.X != 100 {
		t.Fatalf("expected one initial frame with menu off-screen, got %+v", rec.frames)
	}
}

func TestPresentAnimatesToOne(t *testing.T) {
	c, sched, rec := newTestController(t)
	c.Present()
	if c.State() != StateAnimating {
		t.Fatalf("expected animating, got %v", c.State())
	}
	if len(sched.gens) != 1 {
		t.Fatalf("expected a tick to be scheduled")
	}
	settle(t, c)
	if c.Progress() != 1 || c.State() != StatePresented {
		t.Fatalf("expected presented at 1, got %v at %v", c.State(), c.Progress())
	}
	if !c.IsFullyPresented() {
		t.Fatalf("expected fully presented")
	}
	if !rec.last().Animated || rec.last().MenuFrame.X != 40 {
		t.Fatalf("expected final animated frame flush right, got %+v", rec.last())
	}
}

func TestPresentTwiceIsIdempotent(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Present()
	settle(t, c)
	scheduled := len(sched.gens)
	c.Present()
	if c.State() != StatePresented || c.Progress() != 1 {
		t.Fatalf("expected no change, got %v at %v", c.State(), c.Progress())
	}
	if len(sched.gens) != scheduled {
		t.Fatalf("expected no animation for a no-op present")
	}
}

func TestStaleTicksAreIgnored(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Present()
	first := c.Generation()
	c.Tick(first)
	c.Dismiss()
	before := c.Progress()
	if c.Tick(first) {
		t.Fatalf("expected stale tick to be rejected")
	}
	if c.Progress() != before {
		t.Fatalf("stale tick moved progress")
	}
	if c.Target() != 0 {
		t.Fatalf("expected dismiss target, got %v", c.Target())
	}
}

func TestGestureInterruptsAnimationWithoutJump(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Present()
	tickUntil(t, c, func(p float64) bool { return p >= 0.3 })
	captured := c.Progress()
	animGen := c.Generation()

	c.HandleGesture(pan(PhaseBegan, 0, 0))
	if c.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", c.State())
	}
	if c.Progress() != captured {
		t.Fatalf("expected no visual jump: %v != %v", c.Progress(), captured)
	}
	if c.Tick(animGen) {
		t.Fatalf("expected interrupted animation to stop ticking")
	}

	c.HandleGesture(pan(PhaseEnded, 0, 0))
	if math.Abs(c.Progress()-captured) > 1e-9 {
		t.Fatalf("expected progress to stay at captured baseline %v, got %v", captured, c.Progress())
	}
	if c.Target() == 1 {
		t.Fatalf("expected old animation target to be abandoned")
	}
	settle(t, c)
	if c.Progress() != 0 {
		t.Fatalf("expected release below threshold to settle closed, got %v", c.Progress())
	}
}

func TestDragCommitScenarios(t *testing.T) {
	cases := []struct {
		name   string
		dx, vx float64
		want   float64
	}{
		{name: "half width commits open", dx: -30, want: 1},
		{name: "forty percent reverts", dx: -24, want: 0},
		{name: "fling commits open", dx: -18, vx: -200, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestController(t)
			c.HandleGesture(pan(PhaseBegan, 0, 0))
			c.HandleGesture(pan(PhaseChanged, tc.dx, tc.vx))
			if got := c.Progress(); math.Abs(got+tc.dx/60) > 1e-9 {
				t.Fatalf("expected 1:1 tracking, got %v", got)
			}
			c.HandleGesture(pan(PhaseEnded, tc.dx, tc.vx))
			settle(t, c)
			if c.Progress() != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, c.Progress())
			}
		})
	}
}

func TestOverscrollIsDampedAndSettlesInRange(t *testing.T) {
	c, _, rec := newTestController(t)
	c.Present()
	settle(t, c)
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, -300, 0))
	if p := c.Progress(); p <= 1 || p >= 1.7 {
		t.Fatalf("expected damped overscroll, got %v", p)
	}
	if rec.last().Animated {
		t.Fatalf("expected live tracking frames to be unanimated")
	}
	c.HandleGesture(pan(PhaseEnded, -300, 0))
	settle(t, c)
	if c.Progress() != 1 {
		t.Fatalf("expected rest at 1, got %v", c.Progress())
	}
}

func TestOutOfOrderGestureSamplesIgnored(t *testing.T) {
	c, _, rec := newTestController(t)
	frames := len(rec.frames)
	c.HandleGesture(pan(PhaseChanged, -30, 0))
	c.HandleGesture(pan(PhaseEnded, -30, -500))
	if c.Progress() != 0 || c.State() != StateDismissed || len(rec.frames) != frames {
		t.Fatalf("expected samples without begin to be ignored")
	}
}

func TestZeroWidthHoldsProgress(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetSize(Size{Width: 0, Height: 10})
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, -30, 0))
	if c.Progress() != 0 {
		t.Fatalf("expected held progress, got %v", c.Progress())
	}
	c.HandleGesture(pan(PhaseEnded, -30, -900))
	if c.Progress() != 0 || c.State() != StateDismissed {
		t.Fatalf("expected rest without transition, got %v at %v", c.State(), c.Progress())
	}
}

func TestBackdropTapDismissesOnlyWhenPresented(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.ReceivedPassthroughTouch()
	if c.State() != StateDismissed || len(sched.gens) != 0 {
		t.Fatalf("expected no-op while dismissed")
	}

	c.Present()
	c.Tick(c.Generation())
	c.ReceivedPassthroughTouch()
	if c.Target() != 0 {
		t.Fatalf("expected tap mid-opening to dismiss")
	}
	settle(t, c)
	if c.Progress() != 0 {
		t.Fatalf("expected dismissed, got %v", c.Progress())
	}
}

func TestBackdropTapIgnoredWhileDragging(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, -30, 0))
	c.ReceivedPassthroughTouch()
	if c.State() != StateDragging {
		t.Fatalf("expected gesture to keep ownership, got %v", c.State())
	}
}

func TestToggle(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Toggle()
	if c.Target() != 1 {
		t.Fatalf("expected toggle to present")
	}
	c.Tick(c.Generation())
	c.Toggle()
	if c.Target() != 0 {
		t.Fatalf("expected toggle mid-flight to reverse, got %v", c.Target())
	}
	c.Toggle()
	if c.Target() != 1 {
		t.Fatalf("expected second reversal, got %v", c.Target())
	}
	settle(t, c)
	c.Toggle()
	settle(t, c)
	if c.Progress() != 0 {
		t.Fatalf("expected toggle from presented to dismiss, got %v", c.Progress())
	}
}

func TestCommandDuringDragTakesOver(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, -12, 0))
	c.Present()
	if c.State() != StateAnimating {
		t.Fatalf("expected command to preempt drag, got %v", c.State())
	}
	before := c.Progress()
	c.HandleGesture(pan(PhaseChanged, -50, 0))
	if c.Progress() != before {
		t.Fatalf("expected stale drag samples to be ignored")
	}
	settle(t, c)
	if c.Progress() != 1 {
		t.Fatalf("expected presented, got %v", c.Progress())
	}
}

func TestImmediateModeSnaps(t *testing.T) {
	sched := &manualScheduler{}
	c := New(Options{Size: Size{Width: 80, Height: 24}, Immediate: true, Scheduler: sched})
	c.Present()
	if c.Progress() != 1 || c.State() != StatePresented || len(sched.gens) != 0 {
		t.Fatalf("expected snap to presented, got %v at %v", c.State(), c.Progress())
	}
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, 40, 0))
	c.HandleGesture(pan(PhaseEnded, 40, 0))
	if c.Progress() != 0 || c.State() != StateDismissed {
		t.Fatalf("expected snap to dismissed, got %v at %v", c.State(), c.Progress())
	}
}

func TestObserversReceiveProgressAndTransitions(t *testing.T) {
	c, _, _ := newTestController(t)
	var progress []float64
	var events []TransitionEvent
	c.OnProgress(func(p float64) { progress = append(progress, p) })
	c.OnTransition(func(ev TransitionEvent) { events = append(events, ev) })

	c.Present()
	c.Tick(c.Generation())
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseEnded, -40, -100))

	if len(progress) < 3 {
		t.Fatalf("expected progress notifications, got %v", progress)
	}
	if len(events) != 2 {
		t.Fatalf("expected two transition events, got %+v", events)
	}
	if events[0].Source != SourceCommand || events[0].Command != "present" || events[0].Interrupted {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[1].Source != SourceGesture || !events[1].Interrupted || events[1].Velocity != -100 || events[1].Target != 1 {
		t.Fatalf("unexpected gesture event %+v", events[1])
	}
}

func TestSetProgressUnanimatedClampsAtRest(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetProgress(1.4, false)
	if c.Progress() != 1 {
		t.Fatalf("expected clamp to 1 at rest, got %v", c.Progress())
	}
	if rec.last().Animated {
		t.Fatalf("expected synchronous frame")
	}
}

func TestReleaseAtStartingEdgeRendersRestFrame(t *testing.T) {
	c, sched, rec := newTestController(t)
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, 0, 0))
	c.HandleGesture(pan(PhaseEnded, 0, 0))
	if c.State() != StateDismissed {
		t.Fatalf("expected dismissed, got %v", c.State())
	}
	if rec.last().State != c.State() {
		t.Fatalf("last frame says %v, controller says %v", rec.last().State, c.State())
	}
	if len(sched.gens) != 0 {
		t.Fatalf("expected no animation for a same-edge release")
	}

	c.Present()
	settle(t, c)
	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.HandleGesture(pan(PhaseChanged, 20, 0))
	c.HandleGesture(pan(PhaseChanged, 0, 0))
	c.HandleGesture(pan(PhaseEnded, 0, 0))
	if c.State() != StatePresented || rec.last().State != StatePresented {
		t.Fatalf("expected presented frame, got controller %v frame %v", c.State(), rec.last().State)
	}
}

func TestNoOpCommandsEmitNothing(t *testing.T) {
	c, _, rec := newTestController(t)
	var events []TransitionEvent
	c.OnTransition(func(ev TransitionEvent) { events = append(events, ev) })

	c.Dismiss()
	c.Dismiss()
	if len(events) != 0 {
		t.Fatalf("expected no events for dismissing a dismissed drawer, got %+v", events)
	}

	c.Present()
	settle(t, c)
	c.Present()
	if len(events) != 1 {
		t.Fatalf("expected only the first present to be reported, got %+v", events)
	}

	c.HandleGesture(pan(PhaseBegan, 0, 0))
	c.Present()
	if len(events) != 1 {
		t.Fatalf("expected a present that lands where the drag rests to be silent, got %+v", events)
	}
	if c.State() != StatePresented || rec.last().State != StatePresented {
		t.Fatalf("expected the drag to end in a presented frame, got %v / %v", c.State(), rec.last().State)
	}
}

func TestFractionalRestIsPartial(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetProgress(0.3, false)
	if c.State() != StatePartial || rec.last().State != StatePartial {
		t.Fatalf("expected partial at 0.3, got %v", c.State())
	}
	if !c.IsPresented() || c.IsFullyPresented() {
		t.Fatalf("expected partly presented")
	}
	if StatePartial.String() != "partial" {
		t.Fatalf("unexpected name %q", StatePartial.String())
	}
	c.ReceivedPassthroughTouch()
	settle(t, c)
	if c.State() != StateDismissed {
		t.Fatalf("expected backdrop tap to dismiss a partial drawer, got %v", c.State())
	}
}
