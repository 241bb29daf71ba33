// Package normalize provides population-level rescaling of ROI features.
// A feature measured across a whole batch of detected regions is divided by
// a robust central estimate of that feature, producing values that are
// independent of the absolute scale of the recording (field of view size,
// photon count, magnification).
package normalize

import (
	"math"
	"sort"
)

// Estimator reduces a sequence of values to a single central estimate.
type Estimator func(values []float64) float64

// Median returns the median of values using midpoint interpolation for
// even-length input. It returns NaN for an empty slice and does not modify
// the input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ByAverage divides every element of values by a common denominator:
// the estimator applied to the first firstN values, plus offset. A nil
// estimator defaults to Median. firstN <= 0 (or beyond the input length)
// means the estimator sees all values. The result has the same length and
// order as the input, which is left unmodified.
func ByAverage(values []float64, estimator Estimator, offset float64, firstN int) []float64 {
	if estimator == nil {
		estimator = Median
	}
	head := values
	if firstN > 0 && firstN < len(values) {
		head = values[:firstN]
	}
	denom := estimator(head) + offset
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / denom
	}
	return out
}
