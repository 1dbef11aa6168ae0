package volume

import (
	"fmt"
)

// IntensityGrid wraps the raw voxel intensities of a loaded volume as a
// flat array in row-major order (index = z*nx*ny + y*nx + x) and provides
// slice and region access for the planar views plus point sampling for
// density measurements. The grid is read-only once constructed.
type IntensityGrid struct {
	// data holds the voxel intensities, one value per voxel
	data []float64

	// dims are the voxel counts along x, y, z
	dims [3]int
}

// NewIntensityGrid creates a grid over the given flat intensity data.
// The data length must match the product of the dimensions.
func NewIntensityGrid(data []float64, dims [3]int) (*IntensityGrid, error) {
	expected := dims[0] * dims[1] * dims[2]
	if expected <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %v", dims)
	}
	if len(data) != expected {
		return nil, fmt.Errorf("grid data length %d does not match dimensions %v (want %d)",
			len(data), dims, expected)
	}

	return &IntensityGrid{data: data, dims: dims}, nil
}

// Dimensions returns the voxel counts along x, y, z.
func (g *IntensityGrid) Dimensions() [3]int {
	return g.dims
}

// At returns the intensity at the given voxel index. Out-of-bounds
// indices are clamped to the nearest edge voxel, so sampling never fails
// on user-driven input.
func (g *IntensityGrid) At(x, y, z int) float64 {
	x = clampInt(x, g.dims[0]-1)
	y = clampInt(y, g.dims[1]-1)
	z = clampInt(z, g.dims[2]-1)
	return g.data[z*g.dims[0]*g.dims[1]+y*g.dims[0]+x]
}

// ExtractSlice extracts a 2D cross-section of the volume along the given
// axis (0=x, 1=y, 2=z) at the given position. The returned data is in
// row-major order with the reported width and height:
//
//	axis 0 (YZ plane): width = ny, height = nz
//	axis 1 (XZ plane): width = nx, height = nz
//	axis 2 (XY plane): width = nx, height = ny
func (g *IntensityGrid) ExtractSlice(axis, position int) ([]float64, int, int, error) {
	if axis < 0 || axis > 2 {
		return nil, 0, 0, fmt.Errorf("invalid axis %d (must be 0, 1 or 2)", axis)
	}
	if position < 0 || position >= g.dims[axis] {
		return nil, 0, 0, fmt.Errorf("position %d out of range for axis %d (dimension %d)",
			position, axis, g.dims[axis])
	}

	var width, height int
	switch axis {
	case 0:
		width, height = g.dims[1], g.dims[2]
	case 1:
		width, height = g.dims[0], g.dims[2]
	case 2:
		width, height = g.dims[0], g.dims[1]
	}

	slice := make([]float64, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			switch axis {
			case 0:
				slice[row*width+col] = g.At(position, col, row)
			case 1:
				slice[row*width+col] = g.At(col, position, row)
			case 2:
				slice[row*width+col] = g.At(col, row, position)
			}
		}
	}

	return slice, width, height, nil
}

// ExtractRegion copies a 3D subregion of the grid into a new flat array.
func (g *IntensityGrid) ExtractRegion(start CrosshairPosition, size [3]int) ([]float64, error) {
	if start.X < 0 || start.Y < 0 || start.Z < 0 {
		return nil, fmt.Errorf("region start must be non-negative, got %+v", start)
	}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return nil, fmt.Errorf("region size must be positive, got %v", size)
	}
	if start.X+size[0] > g.dims[0] || start.Y+size[1] > g.dims[1] || start.Z+size[2] > g.dims[2] {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	region := make([]float64, size[0]*size[1]*size[2])
	for z := 0; z < size[2]; z++ {
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				region[z*size[0]*size[1]+y*size[0]+x] = g.At(start.X+x, start.Y+y, start.Z+z)
			}
		}
	}

	return region, nil
}

// CountInRange returns the number of voxels whose intensity lies in
// [lower, upper). It backs region-of-interest voxel counting for volume
// measurements when no external segmentation is attached.
func (g *IntensityGrid) CountInRange(lower, upper float64) int {
	count := 0
	for _, value := range g.data {
		if value >= lower && value < upper {
			count++
		}
	}
	return count
}
