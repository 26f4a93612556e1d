package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometricMean3(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    float64
	}{
		{"cube", 2, 2, 2, 2},
		{"mixed", 1, 8, 27, 6},
		{"zero", 0, 8, 27, 0},
		{"negative", 4, -1, 9, 0},
		{"all zero", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, geometricMean3(tt.a, tt.b, tt.c), 1e-9)
		})
	}
}

func TestGeometricMean3_MatchesCubeRoot(t *testing.T) {
	for _, in := range [][3]float64{{0.5, 3.25, 17}, {120.1, 0.002, 9}, {1e-3, 1e3, 42}} {
		want := math.Pow(in[0]*in[1]*in[2], 1.0/3.0)
		assert.InEpsilon(t, want, geometricMean3(in[0], in[1], in[2]), 1e-12)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 2.0, rate(4e9, 2))
	assert.Zero(t, rate(1e9, 0))
	assert.Zero(t, rate(1e9, -1))

	base := rate(3_000_000, 1.5)
	assert.InEpsilon(t, 2*base, rate(6_000_000, 1.5), 1e-15, "doubling work doubles the rate")
}

func TestRate_OverflowReportsZero(t *testing.T) {
	assert.Zero(t, rate(intOpsPerIter*kernelBlock, 1e-320))
}

func TestGeometricMean3_LargeInputs(t *testing.T) {
	assert.InEpsilon(t, 1e200, geometricMean3(1e200, 1e200, 1e200), 1e-12)
}

func TestCompositeScore(t *testing.T) {
	single := phaseResult{GopsInt: 3, GFlops: 5}
	multi := phaseResult{GopsInt: 40, GFlops: 24}
	mem := phaseResult{GBps: 1}

	assert.InDelta(t, 8.0, compositeScore(single, multi, mem), 1e-9)
	assert.Zero(t, compositeScore(single, multi, phaseResult{}))
}
