package main

import (
	"math"
	"time"
)

// kernelBlock is the number of iterations run between two clock reads.
const kernelBlock = 1 << 15

const (
	intOpsPerIter   = 3 // mul, add, xor
	floatOpsPerIter = 2 // mul, add
)

type kernelResult struct {
	intOps   uint64
	floatOps uint64
	checksum uint64
	elapsed  time.Duration
}

// computeKernel spins on a fixed integer/floating-point mix until seconds of
// wall-clock time have passed. Only whole blocks are counted, so the run
// overshoots the target by at most one block. A target <= 0 runs one block.
func computeKernel(seconds float64) kernelResult {
	x := uint64(88172645463393265)
	y := uint64(1315423911)
	a := 1.00000011920928955078125
	b := 1.0000002384185791015625
	c := 0.00000095367431640625

	var res kernelResult
	start := time.Now()
	for {
		for i := 0; i < kernelBlock; i++ {
			x = x*2862933555777941757 + 3037000493
			y ^= x
			// The conversion keeps the multiply and add unfused.
			a = float64(a*b) + c
			b += 1e-12
			c += 1e-13
		}
		res.intOps += intOpsPerIter * kernelBlock
		res.floatOps += floatOpsPerIter * kernelBlock
		if time.Since(start).Seconds() >= seconds {
			break
		}
	}
	res.elapsed = time.Since(start)
	// The checksum consumes the final state so the loop cannot be dropped.
	res.checksum = y ^ math.Float64bits(a)
	return res
}
