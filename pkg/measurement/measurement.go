// Package measurement implements the clinical measurement tools: a
// finite-state tool-activation machine that collects picked world points
// and, on completion, computes a typed measurement (distance, angle,
// area, volume or tissue density).
package measurement

import (
	"time"

	"mprcore/pkg/geometry"
)

// Type identifies a measurement tool.
type Type string

const (
	Distance   Type = "distance"
	Angle      Type = "angle"
	Area       Type = "area"
	Volume     Type = "volume"
	Hounsfield Type = "hounsfield"
)

// valid reports whether t names a known tool.
func (t Type) valid() bool {
	switch t {
	case Distance, Angle, Area, Volume, Hounsfield:
		return true
	}
	return false
}

// Measurement is one completed clinical measurement. Records are
// immutable once created; the store only ever appends and deletes them.
type Measurement struct {
	// ID is assigned by the store from a monotonically increasing
	// counter; IDs are never reused.
	ID int64 `json:"id"`

	// Type is the tool that produced this measurement.
	Type Type `json:"type"`

	// Points are the picked world points in click order, in mm.
	Points []geometry.Point3D `json:"points,omitempty"`

	// Value is the computed quantity in Unit.
	Value float64 `json:"value"`

	// Unit is the measurement unit: mm, degrees, mm², cm³ or HU.
	Unit string `json:"unit"`

	// Tissue is the classified tissue type, Hounsfield measurements only.
	Tissue string `json:"tissue,omitempty"`

	// Accuracy is an optional human-readable accuracy note derived from
	// the volume spacing.
	Accuracy string `json:"accuracy,omitempty"`

	// Stats holds optional neighborhood statistics around a density
	// probe point.
	Stats *ProbeStats `json:"stats,omitempty"`

	// CreatedAt is the completion timestamp, assigned by the store.
	CreatedAt time.Time `json:"createdAt"`
}
