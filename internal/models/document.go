package models

import (
	"roistats/pkg/batch"
)

// Document is the on-disk batch of detected regions the roistats tool
// processes: the per-region records plus the scale factors they share.
type Document struct {
	// Dy and Dx are the pixel-to-physical scale factors shared by every
	// region in the batch. Zero means unknown; the tool falls back to its
	// configured defaults.
	Dy float64 `yaml:"dy" json:"dy"`
	Dx float64 `yaml:"dx" json:"dx"`

	// ROIs holds the raw per-region records in detection order.
	ROIs []*batch.Record `yaml:"rois" json:"rois"`
}
