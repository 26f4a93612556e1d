package main

import "math"

// rate converts a work count into billions per second.
//
// The divisor is the target duration, not the measured one. Runs overshoot
// the target by up to one block and that overshoot is deliberately left in,
// so figures stay comparable with earlier runs of the tool.
func rate(count uint64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	r := float64(count) / seconds / 1e9
	// Denormal targets overflow; report nothing rather than +Inf.
	if math.IsInf(r, 0) {
		return 0
	}
	return r
}

// mix is the aggregation input of a compute phase.
func (p phaseResult) mix() float64 {
	return p.GopsInt + p.GFlops
}

// geometricMean3 is zero whenever any input is not strictly positive.
func geometricMean3(a, b, c float64) float64 {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0
	}
	// Rooting each factor first keeps large inputs from overflowing.
	return math.Cbrt(a) * math.Cbrt(b) * math.Cbrt(c)
}

func compositeScore(single, multi, mem phaseResult) float64 {
	return geometricMean3(single.mix(), multi.mix(), mem.GBps)
}
