package measurement

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"mprcore/pkg/geometry"
	"mprcore/pkg/volume"
)

// PointPicker resolves a 2D screen position to a 3D world point. It is
// supplied by the renderer; the core never raycasts against scene
// geometry itself. ok is false when the ray hits nothing.
type PointPicker interface {
	Pick(screenX, screenY float64) (point geometry.Point3D, ok bool)
}

// IntensitySampler looks up the volume intensity at a world point, in
// Hounsfield units for CT data. Supplied externally.
type IntensitySampler interface {
	SampleAt(point geometry.Point3D) float64
}

// RegionSampler optionally extends IntensitySampler with neighborhood
// sampling around a probe point, enabling mean/min/max/stddev statistics
// on density measurements.
type RegionSampler interface {
	IntensitySampler
	SampleRegion(center geometry.Point3D, radiusMM float64) []float64
}

// VoxelCounter reports the voxel count of the active region of interest.
// Supplied by the segmentation collaborator; the core only performs the
// spacing-aware conversion to cm³.
type VoxelCounter interface {
	CountVoxels() int
}

// RayProvider resolves a screen position to the camera ray through it,
// in world space. Used only by FallbackPicker.
type RayProvider interface {
	Ray(screenX, screenY float64) (origin, direction geometry.Point3D)
}

// FallbackPicker decorates a renderer picker with the fixed-distance
// fallback policy: when the wrapped picker reports no intersection, the
// point is placed on the camera ray at a fixed distance from its origin.
// This keeps a documented, predictable landing spot for measurement
// points over empty regions of the scene. Without a RayProvider a miss
// stays a miss.
type FallbackPicker struct {
	Inner PointPicker
	Rays  RayProvider

	// DistanceMM is how far along the ray the fallback point lands.
	DistanceMM float64

	Logger *slog.Logger
}

// Pick resolves the screen position through the wrapped picker, applying
// the fallback policy on a miss.
func (f *FallbackPicker) Pick(screenX, screenY float64) (geometry.Point3D, bool) {
	if f.Inner != nil {
		if p, ok := f.Inner.Pick(screenX, screenY); ok {
			return p, true
		}
	}
	if f.Rays == nil {
		return geometry.Point3D{}, false
	}

	origin, dir := f.Rays.Ray(screenX, screenY)
	point := origin.Add(dir.Normalize().Mul(f.DistanceMM))
	if f.Logger != nil {
		f.Logger.Debug("no renderer intersection, using fixed-distance fallback",
			"screenX", screenX, "screenY", screenY, "distanceMM", f.DistanceMM)
	}
	return point, true
}

// GridSampler implements RegionSampler over a loaded intensity grid with
// nearest-voxel lookup. It stands in for the external sampler when the
// host keeps the raw voxel data in memory.
type GridSampler struct {
	Volume *volume.Volume
	Grid   *volume.IntensityGrid
}

// SampleAt returns the intensity of the voxel nearest to the world point.
func (s *GridSampler) SampleAt(point geometry.Point3D) float64 {
	pos := s.Volume.WorldToVoxel(point)
	return s.Grid.At(pos.X, pos.Y, pos.Z)
}

// SampleRegion returns the intensities of all voxels within a cube of
// the given half-width in mm centered on the world point, clipped to the
// volume bounds.
func (s *GridSampler) SampleRegion(center geometry.Point3D, radiusMM float64) []float64 {
	pos := s.Volume.WorldToVoxel(center)

	var radius [3]int
	for axis := 0; axis < 3; axis++ {
		radius[axis] = int(math.Ceil(radiusMM / s.Volume.Spacing[axis]))
	}

	var values []float64
	for z := pos.Z - radius[2]; z <= pos.Z+radius[2]; z++ {
		for y := pos.Y - radius[1]; y <= pos.Y+radius[1]; y++ {
			for x := pos.X - radius[0]; x <= pos.X+radius[0]; x++ {
				clamped := s.Volume.Clamp(volume.CrosshairPosition{X: x, Y: y, Z: z})
				if clamped.X != x || clamped.Y != y || clamped.Z != z {
					continue
				}
				values = append(values, s.Grid.At(x, y, z))
			}
		}
	}
	return values
}

// ProbeStats summarizes the intensities sampled around a density probe.
type ProbeStats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
	Count  int     `json:"count"`
}

// NewProbeStats computes summary statistics over the sampled values.
// Returns nil for an empty sample.
func NewProbeStats(values []float64) *ProbeStats {
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	ps := &ProbeStats{
		Mean:  stat.Mean(values, nil),
		Min:   min,
		Max:   max,
		Count: len(values),
	}
	if len(values) > 1 {
		ps.StdDev = stat.StdDev(values, nil)
	}
	return ps
}
