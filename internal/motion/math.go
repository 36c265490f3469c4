// Package motion holds the numeric building blocks behind interactive
// transitions: range remapping, clamping, rubberband damping, fling
// projection and a damped spring.
package motion

import "fmt"

// rubberbandCoefficient is the constant scroll views use for overscroll resistance.
const rubberbandCoefficient = 0.55

// Deceleration rates per unit time (millisecond) of a free-sliding motion.
const (
	DecelerationRateNormal = 0.998
	DecelerationRateFast   = 0.99

	MinDecelerationRate = 0.001
	MaxDecelerationRate = 0.999
)

// Vec2 is a two-dimensional vector in host units.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// MapRange remaps value from [inMin, inMax] onto [outMin, outMax].
// inMin and inMax must differ.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Clip clamps value into [lower, upper].
func Clip(value, lower, upper float64) float64 {
	return min(upper, max(value, lower))
}

// Rubberband returns value unchanged inside [lower, upper]. Past either edge
// the overshoot is damped so the result approaches edge ± interval but never
// reaches it.
func Rubberband(value, lower, upper, interval float64) float64 {
	if value >= lower && value <= upper {
		return value
	}
	if interval <= 0 {
		return Clip(value, lower, upper)
	}
	if value > upper {
		return upper + rubberbandDistance(value-upper, interval)
	}
	return lower - rubberbandDistance(lower-value, interval)
}

func rubberbandDistance(x, interval float64) float64 {
	return (1.0 - (1.0 / ((x * rubberbandCoefficient / interval) + 1.0))) * interval
}

// Project returns the extra distance a motion with initialVelocity (units per
// second) travels while decaying geometrically by decelerationRate every
// millisecond. Rates outside (0,1) are clamped first.
func Project(initialVelocity, decelerationRate float64) float64 {
	rate := Clip(decelerationRate, MinDecelerationRate, MaxDecelerationRate)
	return (initialVelocity / 1000) * rate / (1 - rate)
}

// ProjectPoint adds the projected travel on both axes to point.
func ProjectPoint(point, velocity Vec2, decelerationRate float64) Vec2 {
	return Vec2{
		X: point.X + Project(velocity.X, decelerationRate),
		Y: point.Y + Project(velocity.Y, decelerationRate),
	}
}

// ValidateDecelerationRate rejects rates Project would have to clamp.
func ValidateDecelerationRate(rate float64) error {
	if rate <= 0 || rate >= 1 {
		return fmt.Errorf("deceleration rate %v outside (0,1)", rate)
	}
	return nil
}
