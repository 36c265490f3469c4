package drawer

import (
	"testing"

	"slidemenu/internal/motion"
)

func pan(phase Phase, dx, vx float64) GestureSample {
	return GestureSample{Phase: phase, Translation: motion.Vec2{X: dx}, Velocity: motion.Vec2{X: vx}}
}

func TestTrackRequiresBegin(t *testing.T) {
	g := NewGestureInterpreter(motion.DecelerationRateFast)
	if _, ok := g.Track(pan(PhaseChanged, -10, 0), 60); ok {
		t.Fatalf("expected changed sample without begin to be rejected")
	}
	if _, ok := g.Release(pan(PhaseEnded, -10, 0), 60); ok {
		t.Fatalf("expected ended sample without begin to be rejected")
	}
}

func TestTrackRejectsZeroWidth(t *testing.T) {
	g := NewGestureInterpreter(motion.DecelerationRateFast)
	g.Begin(0.5)
	if _, ok := g.Track(pan(PhaseChanged, -10, 0), 0); ok {
		t.Fatalf("expected zero menu width to be rejected")
	}
}

func TestTrackRubberbandsPastEdges(t *testing.T) {
	g := NewGestureInterpreter(motion.DecelerationRateFast)
	g.Begin(1)
	p, ok := g.Track(pan(PhaseChanged, -600, 0), 60)
	if !ok {
		t.Fatalf("expected tracked progress")
	}
	if p <= 1 || p >= 1+RubberbandInterval {
		t.Fatalf("expected damped overscroll in (1,1.7), got %v", p)
	}
	p, _ = g.Track(pan(PhaseChanged, 30, 0), 60)
	if p != 0.5 {
		t.Fatalf("expected linear tracking inside range, got %v", p)
	}
}

func TestReleaseCommitThreshold(t *testing.T) {
	g := NewGestureInterpreter(motion.DecelerationRateFast)
	g.Begin(0)
	intent, ok := g.Release(pan(PhaseEnded, -30, 0), 60)
	if !ok || intent.Target != 1 || !intent.Animated {
		t.Fatalf("expected commit to open at raw 0.5, got %+v ok=%v", intent, ok)
	}

	g.Begin(0)
	intent, _ = g.Release(pan(PhaseEnded, -24, 0), 60)
	if intent.Target != 0 {
		t.Fatalf("expected commit to closed at raw 0.4, got %+v", intent)
	}
}

func TestReleaseProjectsFlingVelocity(t *testing.T) {
	g := NewGestureInterpreter(0.99)
	g.Begin(0)
	// raw 0.3 plus 200 units/s projected at 0.99 is 0.63.
	intent, _ := g.Release(pan(PhaseEnded, -18, -200), 60)
	if intent.Target != 1 {
		t.Fatalf("expected fling to commit open, got %+v", intent)
	}
}

func TestCancelledReleaseIgnoresVelocity(t *testing.T) {
	g := NewGestureInterpreter(0.99)
	g.Begin(0)
	intent, _ := g.Release(pan(PhaseCancelled, -18, -200), 60)
	if intent.Target != 0 {
		t.Fatalf("expected cancelled pan to revert to nearest edge, got %+v", intent)
	}
	if g.Active() {
		t.Fatalf("expected interpreter to be idle after release")
	}
}

func TestInvalidDecelerationRateFallsBack(t *testing.T) {
	g := NewGestureInterpreter(1)
	if g.DecelerationRate() != motion.DecelerationRateNormal {
		t.Fatalf("expected fallback rate, got %v", g.DecelerationRate())
	}
}
