package lorax

import (
	"math"

	"github.com/tanema/gween/ease"
)

// ElasticOut returns an elastic ease-out with a configurable amplitude and
// period, expressed as a gween easing function. An amplitude below 1 is
// treated as 1. A non-positive period falls back to 0.3.
func ElasticOut(amplitude, period float64) ease.TweenFunc {
	if amplitude < 1 {
		amplitude = 1
	}
	if period <= 0 {
		period = 0.3
	}
	shift := period / (2 * math.Pi) * math.Asin(1/amplitude)
	return func(t, b, c, d float32) float32 {
		if t <= 0 || d <= 0 {
			return b
		}
		p := float64(t) / float64(d)
		if p >= 1 {
			return b + c
		}
		v := amplitude*math.Pow(2, -10*p)*math.Sin((p-shift)*(2*math.Pi)/period) + 1
		return b + c*float32(v)
	}
}
