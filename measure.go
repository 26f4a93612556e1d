package main

import (
	"errors"
	"time"
)

var errNoProcessClock = errors.New("process CPU accounting not supported on this platform")

type cpuTimes struct {
	user   time.Duration
	system time.Duration
}

func (t cpuTimes) sub(o cpuTimes) cpuTimes {
	return cpuTimes{user: t.user - o.user, system: t.system - o.system}
}

// cpuClock reports the CPU time consumed so far by the whole process.
type cpuClock interface {
	Now() (cpuTimes, error)
}

var processClock cpuClock

// phaseResult is the measurement of one phase. Seconds is the target
// duration, the rates are billions per second over that target.
type phaseResult struct {
	Seconds float64
	GopsInt float64
	GFlops  float64
	GBps    float64

	// Observed alongside the rates, never used to compute them.
	Elapsed  time.Duration
	CPU      cpuTimes
	Checksum uint64
}

// measurePhase runs fn and attaches the process CPU time spent inside it.
// The wall clock is measured by fn itself.
func measurePhase(fn func() phaseResult) phaseResult {
	before, errBefore := processClock.Now()
	r := fn()
	after, errAfter := processClock.Now()
	if errBefore == nil && errAfter == nil {
		r.CPU = after.sub(before)
	}
	return r
}
