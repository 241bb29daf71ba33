package ellipse

import (
	"errors"
	"math"
	"testing"
)

// circleCloud builds n uniformly weighted points on a circle of the given
// radius around (cy, cx).
func circleCloud(n int, radius, cy, cx float64) (y, x, lam []float64) {
	y = make([]float64, n)
	x = make([]float64, n)
	lam = make([]float64, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		y[k] = cy + radius*math.Cos(theta)
		x[k] = cx + radius*math.Sin(theta)
		lam[k] = 1
	}
	return y, x, lam
}

// TestFitSymmetricCloud verifies that a uniformly weighted circular cloud
// yields equal radii and a circular boundary centered on the cloud centroid.
func TestFitSymmetricCloud(t *testing.T) {
	const (
		radius = 2.0
		cy     = 3.0
		cx     = 5.0
		thres  = 2.5
	)
	y, x, lam := circleCloud(180, radius, cy, cx)

	fit, err := Fit(y, x, lam, thres, 100)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(fit.Mu[0]-cy) > 1e-9 || math.Abs(fit.Mu[1]-cx) > 1e-9 {
		t.Errorf("Expected mean (%f, %f), got (%f, %f)", cy, cx, fit.Mu[0], fit.Mu[1])
	}

	// Second moment of a circle of radius r is r^2/2 per axis.
	want := thres * radius / math.Sqrt2
	if math.Abs(fit.Radii[0]-want) > 1e-9 {
		t.Errorf("Expected major radius %f, got %f", want, fit.Radii[0])
	}
	if math.Abs(fit.Radii[0]-fit.Radii[1]) > 1e-9 {
		t.Errorf("Expected equal radii for symmetric cloud, got %f and %f",
			fit.Radii[0], fit.Radii[1])
	}

	// Every boundary vertex of a circular fit sits at the same distance
	// from the center.
	for i, p := range fit.Boundary {
		d := math.Hypot(p.Y-cy, p.X-cx)
		if math.Abs(d-want) > 1e-9 {
			t.Fatalf("Boundary point %d at distance %f, expected %f", i, d, want)
		}
	}
}

// TestFitRadiiSortedDescending verifies the major-first ordering on an
// elongated cloud.
func TestFitRadiiSortedDescending(t *testing.T) {
	y := []float64{-4, -2, 0, 2, 4, 0, 0}
	x := []float64{0, 0, 0, 0, 0, -1, 1}
	lam := []float64{1, 1, 1, 1, 1, 1, 1}

	fit, err := Fit(y, x, lam, 2, 50)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if fit.Radii[0] <= fit.Radii[1] {
		t.Errorf("Expected a strictly dominant major axis first, got %v", fit.Radii)
	}
}

// TestFitWeightedMean verifies that heavier pixels pull the centroid.
func TestFitWeightedMean(t *testing.T) {
	y := []float64{0, 0}
	x := []float64{0, 10}
	lam := []float64{3, 1}

	fit, err := Fit(y, x, lam, 2, 10)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(fit.Mu[1]-2.5) > 1e-12 {
		t.Errorf("Expected weighted mean x 2.5, got %f", fit.Mu[1])
	}
}

// TestFitDegenerateCloud verifies that a single repeated point is a valid
// zero-size fit rather than an error.
func TestFitDegenerateCloud(t *testing.T) {
	y := []float64{1, 1, 1}
	x := []float64{2, 2, 2}
	lam := []float64{1, 2, 3}

	fit, err := Fit(y, x, lam, 2.5, 20)
	if err != nil {
		t.Fatalf("Fit of degenerate cloud should succeed, got %v", err)
	}
	if fit.Radii[0] != 0 || fit.Radii[1] != 0 {
		t.Errorf("Expected zero radii, got %v", fit.Radii)
	}
	if fit.Area() != 0 {
		t.Errorf("Expected zero area, got %f", fit.Area())
	}
}

func TestFitRejectsZeroWeights(t *testing.T) {
	_, err := Fit([]float64{0, 1}, []float64{0, 1}, []float64{0, 0}, 2, 10)
	if !errors.Is(err, ErrZeroWeight) {
		t.Errorf("Expected ErrZeroWeight for all-zero weights, got %v", err)
	}

	_, err = Fit(nil, nil, nil, 2, 10)
	if !errors.Is(err, ErrZeroWeight) {
		t.Errorf("Expected ErrZeroWeight for empty input, got %v", err)
	}
}

func TestFitRejectsLengthMismatch(t *testing.T) {
	_, err := Fit([]float64{0, 1}, []float64{0}, []float64{1, 1}, 2, 10)
	if err == nil {
		t.Error("Expected error for mismatched input lengths")
	}
}

// TestFitDoesNotMutateWeights guards against the fit normalizing the
// caller's weight buffer in place.
func TestFitDoesNotMutateWeights(t *testing.T) {
	lam := []float64{2, 4, 6}
	y := []float64{0, 1, 2}
	x := []float64{0, 1, 0}

	if _, err := Fit(y, x, lam, 2, 10); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	want := []float64{2, 4, 6}
	for i := range lam {
		if lam[i] != want[i] {
			t.Fatalf("Fit mutated weights: got %v, want %v", lam, want)
		}
	}
}

// TestFitArea checks the area formula against the returned radii.
func TestFitArea(t *testing.T) {
	d := Data{Radii: [2]float64{4, 1}}
	want := math.Pi * 2 // pi*sqrt(4*1)
	if math.Abs(d.Area()-want) > 1e-12 {
		t.Errorf("Expected area %f, got %f", want, d.Area())
	}
}
