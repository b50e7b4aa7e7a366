package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanEmptyIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(mean(nil)))
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 1e-12)
}

func TestSampleStdDev(t *testing.T) {
	// Known sample: mean 5, squared deviations sum 10, n-1 = 4.
	values := []float64{4, 5, 6, 3, 7}
	assert.InDelta(t, math.Sqrt(10.0/4.0), sampleStdDev(values), 1e-12)

	assert.True(t, math.IsNaN(sampleStdDev([]float64{1})), "single observation has no deviation")
	assert.True(t, math.IsNaN(sampleStdDev(nil)))
	assert.Equal(t, 0.0, sampleStdDev([]float64{2, 2, 2}))
}

func TestSampleVarianceAndCovariance(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	assert.InDelta(t, 5.0/3.0, sampleVariance(xs), 1e-12)

	ys := []float64{2, 4, 6, 8}
	assert.InDelta(t, 10.0/3.0, sampleCovariance(xs, ys), 1e-12)
	assert.True(t, math.IsNaN(sampleCovariance(xs, []float64{1})), "length mismatch is undefined")
}

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{0.015, -0.02, 0.0, 0.01, -0.005}

	// pos = 0.05 * 4 = 0.2 between the two lowest sorted values.
	assert.InDelta(t, -0.017, quantile(values, 0.05), 1e-12)
	assert.InDelta(t, -0.02, quantile(values, 0), 1e-12)
	assert.InDelta(t, 0.015, quantile(values, 1), 1e-12)
	assert.InDelta(t, 0.0, quantile(values, 0.5), 1e-12)
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}
