package main

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// runCompute runs the compute kernel for seconds, either on the calling
// goroutine (single) or on threads parallel goroutines, and sums the counts.
func runCompute(seconds float64, threads int, single bool) phaseResult {
	var units []kernelResult
	if single {
		units = []kernelResult{pinned(func() kernelResult { return computeKernel(seconds) })}
	} else {
		units = fanOut(coerceThreads(threads), func(int) kernelResult {
			return computeKernel(seconds)
		})
	}

	var intOps, floatOps, checksum uint64
	var elapsed time.Duration
	for _, u := range units {
		intOps += u.intOps
		floatOps += u.floatOps
		checksum ^= u.checksum
		elapsed = max(elapsed, u.elapsed)
	}
	return phaseResult{
		Seconds:  seconds,
		GopsInt:  rate(intOps, seconds),
		GFlops:   rate(floatOps, seconds),
		Elapsed:  elapsed,
		Checksum: checksum,
	}
}

// fanOut starts n independent units, each pinned to its own OS thread, and
// waits for every one of them. Unit i writes only slot i.
func fanOut[T any](n int, unit func(i int) T) []T {
	results := make([]T, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			results[i] = pinned(func() T { return unit(i) })
			return nil
		})
	}
	// Units never return an error; Wait is only the join.
	_ = g.Wait()
	return results
}

func pinned[T any](fn func() T) T {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return fn()
}

func coerceThreads(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
