// Package volume implements the coordinate space of a loaded volumetric
// dataset: conversions between integer voxel indices, physical world
// coordinates in mm, and bounds clamping. All functions are pure; the only
// state is the metadata of the currently loaded volume.
package volume

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"mprcore/pkg/geometry"
)

// Volume holds the metadata of a loaded volumetric dataset. The voxel data
// itself is owned by the data-loading layer; this core only consumes the
// dimensions, the per-axis spacing and the optional affine transform.
type Volume struct {
	// Dimensions is the voxel count along x, y, z. All components > 0.
	Dimensions [3]int

	// Spacing is the physical size of one voxel along each axis in mm.
	// All components > 0.
	Spacing [3]float64

	// Affine is an optional 4x4 matrix applied after spacing scaling,
	// mapping scaled voxel coordinates to patient/world space.
	Affine *mat.Dense

	// affineInv is the cached inverse of Affine, computed by NewVolume.
	affineInv *mat.Dense
}

// CrosshairPosition is a 3D position in integer voxel indices. Every
// component is kept inside the volume bounds by construction: all updates
// go through Clamp or WorldToVoxel.
type CrosshairPosition struct {
	X, Y, Z int
}

// NewVolume validates the metadata and returns a Volume ready for
// coordinate conversion. The affine may be nil; when present it must be
// 4x4 and invertible.
func NewVolume(dimensions [3]int, spacing [3]float64, affine *mat.Dense) (*Volume, error) {
	v := &Volume{
		Dimensions: dimensions,
		Spacing:    spacing,
		Affine:     affine,
	}

	if err := v.validate(); err != nil {
		return nil, err
	}

	if affine != nil {
		var inv mat.Dense
		if err := inv.Inverse(affine); err != nil {
			return nil, fmt.Errorf("affine matrix is not invertible: %w", err)
		}
		v.affineInv = &inv
	}

	return v, nil
}

func (v *Volume) validate() error {
	for axis := 0; axis < 3; axis++ {
		if v.Dimensions[axis] <= 0 {
			return fmt.Errorf("dimension %d must be positive, got %d", axis, v.Dimensions[axis])
		}
		if v.Spacing[axis] <= 0 {
			return fmt.Errorf("spacing %d must be positive, got %f", axis, v.Spacing[axis])
		}
	}

	if v.Affine != nil {
		rows, cols := v.Affine.Dims()
		if rows != 4 || cols != 4 {
			return fmt.Errorf("affine matrix must be 4x4, got %dx%d", rows, cols)
		}
	}

	return nil
}

// VoxelToWorld converts a voxel index position to physical world
// coordinates in mm by scaling each axis by its spacing and applying the
// affine transform when present.
func (v *Volume) VoxelToWorld(voxel CrosshairPosition) geometry.Point3D {
	p := geometry.Point3D{
		X: float64(voxel.X) * v.Spacing[0],
		Y: float64(voxel.Y) * v.Spacing[1],
		Z: float64(voxel.Z) * v.Spacing[2],
	}

	if v.Affine == nil {
		return p
	}
	return applyAffine(v.Affine, p)
}

// WorldToVoxel converts a world point in mm back to the nearest voxel
// index, clamped into the volume bounds. It is the inverse of
// VoxelToWorld up to rounding.
func (v *Volume) WorldToVoxel(point geometry.Point3D) CrosshairPosition {
	if v.affineInv != nil {
		point = applyAffine(v.affineInv, point)
	}

	pos := CrosshairPosition{
		X: int(math.Round(point.X / v.Spacing[0])),
		Y: int(math.Round(point.Y / v.Spacing[1])),
		Z: int(math.Round(point.Z / v.Spacing[2])),
	}

	return v.Clamp(pos)
}

// Clamp clamps each component of the position independently into
// [0, dimension-1].
func (v *Volume) Clamp(pos CrosshairPosition) CrosshairPosition {
	return CrosshairPosition{
		X: clampInt(pos.X, v.Dimensions[0]-1),
		Y: clampInt(pos.Y, v.Dimensions[1]-1),
		Z: clampInt(pos.Z, v.Dimensions[2]-1),
	}
}

// applyAffine multiplies the homogeneous [x y z 1] column vector by m.
func applyAffine(m *mat.Dense, p geometry.Point3D) geometry.Point3D {
	in := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
	var out mat.VecDense
	out.MulVec(m, in)

	return geometry.Point3D{
		X: out.AtVec(0),
		Y: out.AtVec(1),
		Z: out.AtVec(2),
	}
}

func clampInt(value, max int) int {
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}
