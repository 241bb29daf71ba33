package batch

import (
	"fmt"

	"roistats/pkg/normalize"
	"roistats/pkg/roi"
)

const (
	// normFirstN caps how many leading records seed the population
	// estimators. TODO: why only the first 100? Carried over unchanged from
	// the original pipeline; do not resample without checking downstream
	// classifiers.
	normFirstN = 100

	mrsOffset = 1e-10
)

// Stats computes the derived morphology fields of every record in place,
// then rescales mrs and npix across the whole batch so the features are
// independent of recording scale. Radius and aspect ratio are written only
// when absent, letting upstream detection override the geometric fit.
// Footprint defaults to zero when unset. The mutated slice is returned.
//
// Deprecated: Stats remains only for pipelines that still exchange raw
// record slices. Use roi.New and the ROI accessors instead.
func Stats(dy, dx float64, recs []*Record) ([]*Record, error) {
	mrs := make([]float64, len(recs))
	npix := make([]float64, len(recs))
	for i, rec := range recs {
		r, err := roi.New(roi.Params{
			Ypix: rec.Ypix,
			Xpix: rec.Xpix,
			Lam:  rec.Lam,
			Dy:   dy,
			Dx:   dx,
		})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		rec.Mrs = r.MeanRSquared()
		rec.Mrs0 = r.MeanRSquared0()
		rec.Compact = r.Compactness()
		my, mx := r.MedianPix()
		rec.Med = [2]float64{my, mx}
		rec.Npix = r.NPixels()

		if rec.Radius == nil {
			radius, err := r.Radius()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			aspect, err := r.AspectRatio()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			rec.Radius = &radius
			rec.AspectRatio = &aspect
		}

		mrs[i] = rec.Mrs
		npix[i] = float64(rec.Npix)
	}

	mrsNormed := normalize.ByAverage(mrs, normalize.Median, mrsOffset, normFirstN)
	npixNormed := normalize.ByAverage(npix, nil, 0, normFirstN)
	for i, rec := range recs {
		rec.Mrs = mrsNormed[i]
		rec.NpixNorm = npixNormed[i]
		if rec.Footprint == nil {
			footprint := 0.0
			rec.Footprint = &footprint
		}
	}
	return recs, nil
}
