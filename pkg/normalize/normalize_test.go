package normalize

import (
	"math"
	"testing"
)

func TestMedian(t *testing.T) {
	cases := []struct {
		values []float64
		want   float64
	}{
		{[]float64{5}, 5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{2, 4, 6}, 4},
	}
	for _, c := range cases {
		if got := Median(c.values); got != c.want {
			t.Errorf("Median(%v) = %f, expected %f", c.values, got, c.want)
		}
	}

	if !math.IsNaN(Median(nil)) {
		t.Error("Expected NaN median for empty input")
	}
}

// TestMedianDoesNotMutate verifies the input is sorted on a copy.
func TestMedianDoesNotMutate(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	want := []float64{3, 1, 2}
	for i := range values {
		if values[i] != want[i] {
			t.Fatalf("Median mutated input: got %v, want %v", values, want)
		}
	}
}

// TestByAverageIdentity checks that a constant estimator of 1 with no offset
// returns the input unchanged.
func TestByAverageIdentity(t *testing.T) {
	values := []float64{3.5, -1, 0, 7}
	got := ByAverage(values, func([]float64) float64 { return 1 }, 0, 0)
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("Expected identity at %d, got %f", i, got[i])
		}
	}
}

func TestByAverageMedian(t *testing.T) {
	got := ByAverage([]float64{2, 4, 6}, Median, 0, 0)
	want := []float64{1, 2, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

// TestByAverageDefaultEstimator verifies that a nil estimator behaves as
// Median.
func TestByAverageDefaultEstimator(t *testing.T) {
	withNil := ByAverage([]float64{2, 4, 6}, nil, 0, 0)
	withMedian := ByAverage([]float64{2, 4, 6}, Median, 0, 0)
	for i := range withNil {
		if withNil[i] != withMedian[i] {
			t.Errorf("Expected nil estimator to default to Median, got %v vs %v",
				withNil, withMedian)
			break
		}
	}
}

// TestByAverageFirstN verifies the estimator only sees the leading values
// while the division still covers the whole sequence.
func TestByAverageFirstN(t *testing.T) {
	got := ByAverage([]float64{2, 2, 8, 8}, Median, 0, 2)
	want := []float64{1, 1, 4, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}

	// A cap beyond the input length means all values.
	all := ByAverage([]float64{2, 4, 6}, Median, 0, 100)
	if all[0] != 0.5 {
		t.Errorf("Expected oversized cap to use all values, got %v", all)
	}
}

func TestByAverageOffset(t *testing.T) {
	got := ByAverage([]float64{1}, func([]float64) float64 { return 1 }, 1, 0)
	if got[0] != 0.5 {
		t.Errorf("Expected 0.5 with offset 1, got %f", got[0])
	}
}

// TestByAverageDoesNotMutate verifies the input slice is left alone.
func TestByAverageDoesNotMutate(t *testing.T) {
	values := []float64{2, 4, 6}
	ByAverage(values, Median, 0, 0)
	want := []float64{2, 4, 6}
	for i := range values {
		if values[i] != want[i] {
			t.Fatalf("ByAverage mutated input: got %v, want %v", values, want)
		}
	}
}
