package roi

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// DefaultRadialRadius is the grid radius of the shared reference table. A
// 61x61 grid covers regions of up to 3721 pixels, well beyond the size of
// any plausible cell mask.
const DefaultRadialRadius = 30

// RadialReference returns the Euclidean distances of every cell of a
// (2*radius+1) square grid from its center, flattened and sorted ascending.
// The first n entries approximate the distances-from-center of a perfectly
// packed disk of n pixels, which makes the table the baseline that
// compactness is measured against.
func RadialReference(radius int) ([]float64, error) {
	if radius < 1 {
		return nil, fmt.Errorf("radial reference radius must be positive, got %d", radius)
	}
	n := 2*radius + 1
	dists := make([]float64, 0, n*n)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dists = append(dists, math.Hypot(float64(dy), float64(dx)))
		}
	}
	sort.Float64s(dists)
	return dists, nil
}

var (
	radialOnce  sync.Once
	radialTable []float64
)

// DefaultRadialReference returns the shared reference table for
// DefaultRadialRadius. The table is built on first use and reused for the
// process lifetime; it is read-only and safe for concurrent callers, who
// must not modify the returned slice.
func DefaultRadialReference() []float64 {
	radialOnce.Do(func() {
		radialTable, _ = RadialReference(DefaultRadialRadius)
	})
	return radialTable
}
