package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemBufferSize(t *testing.T) {
	assert.Equal(t, 16*1024*1024, memBufferSize)
}

func TestRunMemoryWith_OneCopyPerThread(t *testing.T) {
	const buf = 1 << 12
	for threads := 1; threads <= 3; threads++ {
		r := runMemoryWith(tinyTarget, threads, buf)
		want := float64(threads*buf) / tinyTarget / 1e9
		assert.InEpsilon(t, want, r.GBps, 1e-12, "threads=%d", threads)
		assert.Equal(t, tinyTarget, r.Seconds)
		assert.Zero(t, r.GopsInt)
	}
}

func TestRunMemoryWith_ZeroThreadsCoercedToOne(t *testing.T) {
	assert.Equal(t, runMemoryWith(tinyTarget, 1, 64).GBps, runMemoryWith(tinyTarget, 0, 64).GBps)
}

func TestRunMemoryWith_ChecksumCarriesFillBytes(t *testing.T) {
	r := runMemoryWith(tinyTarget, 2, 256)
	assert.Equal(t, uint64(0x0102), r.Checksum)
}

func TestCopyLoop_CountsWholeCopies(t *testing.T) {
	src := make([]byte, 1<<16)
	fill(src, 9)
	dst := make([]byte, len(src))

	r := copyLoop(dst, src, 0.02)

	assert.GreaterOrEqual(t, r.elapsed.Seconds(), 0.02)
	assert.NotZero(t, r.bytes)
	assert.Zero(t, r.bytes%uint64(len(src)))
	assert.True(t, bytes.Equal(src, dst))
	assert.Equal(t, byte(9), r.tail)
}

func TestFill(t *testing.T) {
	for _, n := range []int{0, 1, 3, 1000} {
		b := make([]byte, n)
		fill(b, 7)
		assert.Equal(t, bytes.Repeat([]byte{7}, n), b, "n=%d", n)
	}
}
