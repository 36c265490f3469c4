package ui

import (
	"math"
	"time"

	"slidemenu/internal/drawer"
	"slidemenu/internal/motion"
)

const (
	panDeadZone    = 1.0
	velocityWindow = 100 * time.Millisecond
)

type panSample struct {
	pt drawer.Point
	at time.Time
}

// PanRecognizer turns a press, motion and release sequence into gesture
// samples. Movement inside the dead zone is a tap, not a pan.
type PanRecognizer struct {
	now     func() time.Time
	pressed bool
	panning bool
	origin  drawer.Point
	history []panSample
}

func NewPanRecognizer(now func() time.Time) *PanRecognizer {
	if now == nil {
		now = time.Now
	}
	return &PanRecognizer{now: now}
}

func (p *PanRecognizer) Pressed() bool { return p.pressed }

func (p *PanRecognizer) Panning() bool { return p.panning }

func (p *PanRecognizer) Press(pt drawer.Point) {
	p.pressed = true
	p.panning = false
	p.origin = pt
	p.history = append(p.history[:0], panSample{pt: pt, at: p.now()})
}

// Move returns Began followed by Changed when the pointer first leaves the
// dead zone, and a single Changed afterwards.
func (p *PanRecognizer) Move(pt drawer.Point) []drawer.GestureSample {
	if !p.pressed {
		return nil
	}
	p.record(pt)
	translation := p.translation(pt)
	if !p.panning {
		if math.Abs(translation.X) < panDeadZone && math.Abs(translation.Y) < panDeadZone {
			return nil
		}
		p.panning = true
		return []drawer.GestureSample{
			{Phase: drawer.PhaseBegan},
			{Phase: drawer.PhaseChanged, Translation: translation, Velocity: p.velocity()},
		}
	}
	return []drawer.GestureSample{{Phase: drawer.PhaseChanged, Translation: translation, Velocity: p.velocity()}}
}

// Release ends the sequence. A release that never left the dead zone is a tap.
func (p *PanRecognizer) Release(pt drawer.Point) (samples []drawer.GestureSample, tap bool) {
	if !p.pressed {
		return nil, false
	}
	defer p.reset()
	if !p.panning {
		return nil, true
	}
	p.record(pt)
	return []drawer.GestureSample{{Phase: drawer.PhaseEnded, Translation: p.translation(pt), Velocity: p.velocity()}}, false
}

// Cancel abandons the sequence, reporting Cancelled if a pan was live.
func (p *PanRecognizer) Cancel() []drawer.GestureSample {
	if !p.pressed {
		return nil
	}
	defer p.reset()
	if !p.panning {
		return nil
	}
	last := p.history[len(p.history)-1].pt
	return []drawer.GestureSample{{Phase: drawer.PhaseCancelled, Translation: p.translation(last)}}
}

func (p *PanRecognizer) record(pt drawer.Point) {
	now := p.now()
	p.history = append(p.history, panSample{pt: pt, at: now})
	cut := 0
	for cut < len(p.history)-1 && now.Sub(p.history[cut].at) > velocityWindow {
		cut++
	}
	p.history = p.history[cut:]
}

func (p *PanRecognizer) translation(pt drawer.Point) motion.Vec2 {
	return motion.Vec2{X: pt.X - p.origin.X, Y: pt.Y - p.origin.Y}
}

// velocity is in cells per second over the retained window.
func (p *PanRecognizer) velocity() motion.Vec2 {
	if len(p.history) < 2 {
		return motion.Vec2{}
	}
	first := p.history[0]
	last := p.history[len(p.history)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return motion.Vec2{}
	}
	return motion.Vec2{X: (last.pt.X - first.pt.X) / dt, Y: (last.pt.Y - first.pt.Y) / dt}
}

func (p *PanRecognizer) reset() {
	p.pressed = false
	p.panning = false
	p.history = p.history[:0]
}
