package main

import "time"

// memBufferSize is the per-thread source and destination buffer size.
const memBufferSize = 16 << 20

type copyResult struct {
	bytes   uint64
	elapsed time.Duration
	tail    byte
}

// runMemory copies each thread's source buffer into its destination buffer
// until seconds have passed. One copy counts its size once, not twice for
// the read and the write.
func runMemory(seconds float64, threads int) phaseResult {
	return runMemoryWith(seconds, threads, memBufferSize)
}

func runMemoryWith(seconds float64, threads, bufSize int) phaseResult {
	threads = coerceThreads(threads)

	// Allocation and fill happen before any clock starts.
	src := make([][]byte, threads)
	dst := make([][]byte, threads)
	for t := range threads {
		src[t] = make([]byte, bufSize)
		fill(src[t], byte(t+1))
		dst[t] = make([]byte, bufSize)
	}

	units := fanOut(threads, func(t int) copyResult {
		return copyLoop(dst[t], src[t], seconds)
	})

	var total uint64
	var elapsed time.Duration
	var checksum uint64
	for _, u := range units {
		total += u.bytes
		elapsed = max(elapsed, u.elapsed)
		checksum = checksum<<8 | uint64(u.tail)
	}
	return phaseResult{
		Seconds:  seconds,
		GBps:     rate(total, seconds),
		Elapsed:  elapsed,
		Checksum: checksum,
	}
}

func copyLoop(dst, src []byte, seconds float64) copyResult {
	var res copyResult
	start := time.Now()
	for {
		res.bytes += uint64(copy(dst, src))
		if time.Since(start).Seconds() >= seconds {
			break
		}
	}
	res.elapsed = time.Since(start)
	if len(dst) > 0 {
		res.tail = dst[len(dst)-1]
	}
	return res
}

func fill(b []byte, v byte) {
	if len(b) == 0 {
		return
	}
	b[0] = v
	for n := 1; n < len(b); n *= 2 {
		copy(b[n:], b[:n])
	}
}
