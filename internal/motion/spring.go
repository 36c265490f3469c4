package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	settlePosEpsilon = 0.001
	settleVelEpsilon = 0.001
)

// SpringConfig describes the damped curve animated transitions follow.
type SpringConfig struct {
	FPS      int
	Duration time.Duration
	Damping  float64
}

// DefaultSpringConfig is a 0.7s, slightly underdamped curve at 60 FPS.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{FPS: 60, Duration: 700 * time.Millisecond, Damping: 0.80}
}

// ReducedSpringConfig trades frames for a calmer, almost critically damped curve.
func ReducedSpringConfig() SpringConfig {
	return SpringConfig{FPS: 30, Duration: 700 * time.Millisecond, Damping: 0.92}
}

// AngularFrequency picks ω so the envelope e^(-ζωt) falls under 2% by Duration.
func (c SpringConfig) AngularFrequency() float64 {
	d := c.Duration.Seconds()
	if d <= 0 || c.Damping <= 0 {
		return 1000
	}
	return 4 / (c.Damping * d)
}

// Interval is the time between animation frames.
func (c SpringConfig) Interval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// Spring steps a position toward a target one frame at a time.
type Spring struct {
	cfg    SpringConfig
	spring harmonica.Spring
}

func NewSpring(cfg SpringConfig) Spring {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return Spring{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.AngularFrequency(), cfg.Damping),
	}
}

func (s Spring) Config() SpringConfig { return s.cfg }

// Step advances one frame.
func (s Spring) Step(pos, vel, target float64) (float64, float64) {
	return s.spring.Update(pos, vel, target)
}

// Settled reports whether the motion is close enough to rest at target.
func (s Spring) Settled(pos, vel, target float64) bool {
	return math.Abs(pos-target) < settlePosEpsilon && math.Abs(vel) < settleVelEpsilon
}
