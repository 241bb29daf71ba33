// Package roi models a detected region of interest: an irregular pixel mask
// with per-pixel weights, as produced by a cell-detection pipeline. An ROI
// answers geometric queries about its own shape — how compact it is, how
// large, how elongated — by combining a radial reference baseline with a
// weighted Gaussian ellipse fit of the mask.
package roi

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"roistats/pkg/ellipse"
	"roistats/pkg/normalize"
)

var (
	// ErrLengthMismatch reports pixel coordinate and weight slices of
	// differing lengths at construction.
	ErrLengthMismatch = errors.New("ypix, xpix, and lam must all be the same length")

	// ErrNoScale reports a physical-unit query on an ROI built without
	// pixel-to-physical scale factors.
	ErrNoScale = errors.New("dy and dx scale factors are required for radius calculations")
)

// compactOffset keeps the compactness denominator away from zero.
const compactOffset = 1e-10

// aspectOffset damps the aspect ratio of vanishingly small regions.
const aspectOffset = 0.01

// radiusStdDevs is the confidence multiplier used for the radius and
// aspect-ratio queries: the ellipse encloses two standard deviations of the
// fitted Gaussian.
const radiusStdDevs = 2

// fitBoundaryPoints is the contour resolution used for internal fits; only
// the radii are consumed, so the polygon stays coarse.
const fitBoundaryPoints = 100

// Params holds the inputs needed to construct an ROI.
type Params struct {
	// Ypix and Xpix are the row and column coordinates of the mask pixels.
	// Order carries no meaning except that Lam aligns positionally.
	Ypix, Xpix []int

	// Lam holds the non-negative per-pixel weights (brightness/confidence).
	Lam []float64

	// Dy and Dx convert pixel units to physical units along each axis
	// (e.g. microns per pixel). Zero means unknown; radius and
	// aspect-ratio queries fail without them.
	Dy, Dx float64

	// Radial overrides the shared radial reference table. Nil selects
	// DefaultRadialReference.
	Radial []float64
}

// ROI is an immutable weighted pixel mask. All derived quantities are pure
// functions of the constructor inputs, recomputed on access.
type ROI struct {
	ypix, xpix []int
	lam        []float64
	dy, dx     float64
	radial     []float64
}

// New validates and builds an ROI. The coordinate and weight slices are
// copied, so the returned ROI does not alias caller data.
func New(p Params) (*ROI, error) {
	if len(p.Ypix) != len(p.Xpix) || len(p.Ypix) != len(p.Lam) {
		return nil, fmt.Errorf("%w: ypix=%d xpix=%d lam=%d",
			ErrLengthMismatch, len(p.Ypix), len(p.Xpix), len(p.Lam))
	}
	radial := p.Radial
	if radial == nil {
		radial = DefaultRadialReference()
	}
	return &ROI{
		ypix:   append([]int(nil), p.Ypix...),
		xpix:   append([]int(nil), p.Xpix...),
		lam:    append([]float64(nil), p.Lam...),
		dy:     p.Dy,
		dx:     p.Dx,
		radial: radial,
	}, nil
}

// NPixels returns the number of pixels in the mask.
func (r *ROI) NPixels() int {
	return len(r.xpix)
}

// MedianPix returns the per-axis median pixel (row, column), a robust
// centroid of the mask. Weights are deliberately ignored here: centering on
// the unweighted median keeps a handful of bright pixels from dragging the
// reference point that dispersion is measured from.
func (r *ROI) MedianPix() (float64, float64) {
	return normalize.Median(r.yf()), normalize.Median(r.xf())
}

// MeanRSquared returns the mean Euclidean distance of the mask pixels from
// the median pixel.
func (r *ROI) MeanRSquared() float64 {
	return meanRSquared(r.yf(), r.xf(), normalize.Median)
}

// MeanRSquared0 returns the expected MeanRSquared of a perfectly compact
// disk with the same pixel count, read off the radial reference table.
func (r *ROI) MeanRSquared0() float64 {
	n := len(r.ypix)
	if n > len(r.radial) {
		n = len(r.radial)
	}
	return stat.Mean(r.radial[:n], nil)
}

// Compactness returns the ratio of the mask's actual dispersion to the ideal
// disk baseline: about 1 for round, filled regions, larger for diffuse or
// irregular ones.
func (r *ROI) Compactness() float64 {
	return r.MeanRSquared() / (compactOffset + r.MeanRSquared0())
}

// Radii returns the major and minor semi-axis lengths of the two-standard-
// deviation confidence ellipse fitted to the mask, in physical units. It
// fails with ErrNoScale when the ROI has no scale factors.
func (r *ROI) Radii() ([2]float64, error) {
	if r.dy <= 0 || r.dx <= 0 {
		return [2]float64{}, ErrNoScale
	}
	y := r.yf()
	x := r.xf()
	for i := range y {
		y[i] /= r.dy
		x[i] /= r.dx
	}
	fit, err := ellipse.Fit(y, x, r.lam, radiusStdDevs, fitBoundaryPoints)
	if err != nil {
		return [2]float64{}, err
	}
	return fit.Radii, nil
}

// Radius returns a single scalar radius: the major semi-axis rescaled by the
// mean of the two scale factors, i.e. converted back to average pixel units.
func (r *ROI) Radius() (float64, error) {
	radii, err := r.Radii()
	if err != nil {
		return 0, err
	}
	return radii[0] * (r.dy + r.dx) / 2, nil
}

// AspectRatio returns the elongation of the fitted ellipse; see the
// package-level AspectRatio function.
func (r *ROI) AspectRatio() (float64, error) {
	radii, err := r.Radii()
	if err != nil {
		return 0, err
	}
	return AspectRatio(radii[0], radii[1]), nil
}

// AspectRatio computes 2*ry/(ry+rx+offset) with a fixed small offset. The
// formula is intentionally asymmetric: it equals 1 for a circle and grows
// toward 2 as ry dominates, so callers must pass the major axis first for
// the value to read as elongation. Downstream consumers depend on this exact
// range, so the formula must not be symmetrized.
func AspectRatio(ry, rx float64) float64 {
	return 2 * ry / (ry + rx + aspectOffset)
}

// meanRSquared measures pixel dispersion around the estimator's center.
func meanRSquared(y, x []float64, estimator normalize.Estimator) float64 {
	cy := estimator(y)
	cx := estimator(x)
	dists := make([]float64, len(y))
	for i := range y {
		dists[i] = math.Hypot(y[i]-cy, x[i]-cx)
	}
	return stat.Mean(dists, nil)
}

func (r *ROI) yf() []float64 {
	out := make([]float64, len(r.ypix))
	for i, v := range r.ypix {
		out[i] = float64(v)
	}
	return out
}

func (r *ROI) xf() []float64 {
	out := make([]float64, len(r.xpix))
	for i, v := range r.xpix {
		out[i] = float64(v)
	}
	return out
}
