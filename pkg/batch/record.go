// Package batch carries the record-based interface kept for older pipelines
// that exchange raw per-ROI field maps instead of roi.ROI values. New code
// should construct ROIs directly; this package exists for compatibility.
package batch

// Record is one raw ROI entry as exchanged with legacy detection output.
// Field names follow the historical serialized keys. Radius, AspectRatio and
// Footprint are pointers so that "not yet set" is distinguishable from zero:
// Stats only fills the geometric fields when upstream has not already done so.
type Record struct {
	Ypix []int     `yaml:"ypix" json:"ypix"`
	Xpix []int     `yaml:"xpix" json:"xpix"`
	Lam  []float64 `yaml:"lam" json:"lam"`

	Mrs      float64    `yaml:"mrs" json:"mrs"`
	Mrs0     float64    `yaml:"mrs0" json:"mrs0"`
	Compact  float64    `yaml:"compact" json:"compact"`
	Med      [2]float64 `yaml:"med" json:"med"`
	Npix     int        `yaml:"npix" json:"npix"`
	NpixNorm float64    `yaml:"npix_norm" json:"npix_norm"`

	Radius      *float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
	AspectRatio *float64 `yaml:"aspect_ratio,omitempty" json:"aspect_ratio,omitempty"`
	Footprint   *float64 `yaml:"footprint,omitempty" json:"footprint,omitempty"`
}
