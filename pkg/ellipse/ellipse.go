// Package ellipse fits a weighted two-dimensional Gaussian to a cloud of
// pixel coordinates and derives the confidence ellipse of the fit. The
// pixel weights act as a discrete probability mass: bright pixels pull the
// centroid and covariance harder than dim ones.
package ellipse

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrZeroWeight is returned when the pixel weights are empty or sum to zero,
// leaving the Gaussian fit undefined.
var ErrZeroWeight = errors.New("pixel weights are empty or sum to zero")

// Point is a single (row, column) coordinate on the ellipse boundary.
type Point struct {
	Y, X float64
}

// Data holds the result of a weighted Gaussian fit.
//
// Radii is sorted descending (major axis first) regardless of the internal
// eigendecomposition order. Boundary keeps the raw eigenvector-radius pairing
// instead, because the polygon geometry depends on which radius belongs to
// which axis direction.
type Data struct {
	// Mu is the weighted mean position (row, column).
	Mu [2]float64

	// Cov is the 2x2 weighted covariance matrix of the pixel cloud.
	Cov *mat.SymDense

	// Radii holds the major and minor semi-axis lengths of the confidence
	// ellipse, in that order.
	Radii [2]float64

	// Boundary approximates the ellipse contour as a closed polygon.
	Boundary []Point
}

// Area returns the geometric-mean area pi*sqrt(major*minor) of the ellipse.
func (d Data) Area() float64 {
	return math.Sqrt(d.Radii[0]*d.Radii[1]) * math.Pi
}

// Fit computes a first- and second-moment Gaussian fit to the weighted
// coordinates (y, x, lam) and returns the ellipse enclosing thresholdStdDev
// standard deviations of the fitted distribution, traced with boundaryPoints
// vertices.
//
// A cloud collapsed onto a line or a single point produces zero-length axes;
// that is a valid result, not an error. The input slices are not modified.
func Fit(y, x, lam []float64, thresholdStdDev float64, boundaryPoints int) (Data, error) {
	if len(y) != len(x) || len(y) != len(lam) {
		return Data{}, fmt.Errorf("coordinate and weight lengths differ: y=%d x=%d lam=%d",
			len(y), len(x), len(lam))
	}
	if boundaryPoints < 2 {
		return Data{}, fmt.Errorf("boundaryPoints must be at least 2, got %d", boundaryPoints)
	}
	total := floats.Sum(lam)
	if len(lam) == 0 || total <= 0 {
		return Data{}, ErrZeroWeight
	}

	// Normalize the weights into a probability mass over pixels.
	w := make([]float64, len(lam))
	for i, l := range lam {
		w[i] = l / total
	}

	muY := stat.Mean(y, w)
	muX := stat.Mean(x, w)

	// Weighted covariance of the centered coordinates. With the weights
	// summing to one this is the plain second moment, no bias correction.
	var cyy, cxx, cxy float64
	for i := range w {
		dy := y[i] - muY
		dx := x[i] - muX
		cyy += w[i] * dy * dy
		cxx += w[i] * dx * dx
		cxy += w[i] * dy * dx
	}
	cov := mat.NewSymDense(2, []float64{cyy, cxy, cxy, cxx})

	var es mat.EigenSym
	if !es.Factorize(cov, true) {
		return Data{}, fmt.Errorf("eigendecomposition failed for covariance [%g %g; %g %g]",
			cyy, cxy, cxy, cxx)
	}
	vals := es.Values(nil)
	var evec mat.Dense
	es.VectorsTo(&evec)

	// Round-off can push a mathematically zero eigenvalue slightly negative;
	// clamp before the square root.
	raw := [2]float64{
		thresholdStdDev * math.Sqrt(math.Max(0, vals[0])),
		thresholdStdDev * math.Sqrt(math.Max(0, vals[1])),
	}

	// Trace the boundary by mapping unit-circle points through the
	// axis-scaled eigenvector basis. This uses the unsorted radii so that
	// each radius stays paired with its own eigenvector.
	boundary := make([]Point, boundaryPoints)
	for j := range boundary {
		theta := 2 * math.Pi * float64(j) / float64(boundaryPoints-1)
		s0 := raw[0] * math.Cos(theta)
		s1 := raw[1] * math.Sin(theta)
		boundary[j] = Point{
			Y: muY + evec.At(0, 0)*s0 + evec.At(0, 1)*s1,
			X: muX + evec.At(1, 0)*s0 + evec.At(1, 1)*s1,
		}
	}

	radii := raw
	if radii[0] < radii[1] {
		radii[0], radii[1] = radii[1], radii[0]
	}

	return Data{
		Mu:       [2]float64{muY, muX},
		Cov:      cov,
		Radii:    radii,
		Boundary: boundary,
	}, nil
}
