package volume

import (
	"testing"
)

// makeTestGrid builds a 4x3x2 grid whose voxel value encodes its index
// as x + 10*y + 100*z, so every position is distinguishable.
func makeTestGrid(t *testing.T) *IntensityGrid {
	t.Helper()

	dims := [3]int{4, 3, 2}
	data := make([]float64, dims[0]*dims[1]*dims[2])
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				data[z*dims[0]*dims[1]+y*dims[0]+x] = float64(x + 10*y + 100*z)
			}
		}
	}

	grid, err := NewIntensityGrid(data, dims)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	return grid
}

// TestNewIntensityGrid verifies the data length check
func TestNewIntensityGrid(t *testing.T) {
	if _, err := NewIntensityGrid(make([]float64, 10), [3]int{4, 3, 2}); err == nil {
		t.Error("Expected error for mismatched data length")
	}
	if _, err := NewIntensityGrid(nil, [3]int{0, 3, 2}); err == nil {
		t.Error("Expected error for zero dimension")
	}
}

// TestGridAt verifies indexing and edge clamping
func TestGridAt(t *testing.T) {
	grid := makeTestGrid(t)

	if got := grid.At(2, 1, 1); got != 112 {
		t.Errorf("Expected 112 at (2,1,1), got %f", got)
	}
	if got := grid.At(0, 0, 0); got != 0 {
		t.Errorf("Expected 0 at origin, got %f", got)
	}

	// Out-of-bounds sampling clamps to the nearest edge voxel
	if got, want := grid.At(-3, 0, 0), grid.At(0, 0, 0); got != want {
		t.Errorf("Expected clamped value %f, got %f", want, got)
	}
	if got, want := grid.At(99, 99, 99), grid.At(3, 2, 1); got != want {
		t.Errorf("Expected clamped value %f, got %f", want, got)
	}
}

// TestExtractSlice verifies cross-sections along each axis
func TestExtractSlice(t *testing.T) {
	grid := makeTestGrid(t)

	// XY plane at z=1
	slice, width, height, err := grid.ExtractSlice(2, 1)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if width != 4 || height != 3 {
		t.Errorf("Expected 4x3 slice, got %dx%d", width, height)
	}
	if slice[1*width+2] != 112 {
		t.Errorf("Expected 112 at slice (2,1), got %f", slice[1*width+2])
	}

	// YZ plane at x=3
	slice, width, height, err = grid.ExtractSlice(0, 3)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if width != 3 || height != 2 {
		t.Errorf("Expected 3x2 slice, got %dx%d", width, height)
	}
	if slice[1*width+2] != 123 {
		t.Errorf("Expected 123 at slice (2,1), got %f", slice[1*width+2])
	}

	// Out-of-range position
	if _, _, _, err := grid.ExtractSlice(2, 5); err == nil {
		t.Error("Expected error for out-of-range position")
	}
	if _, _, _, err := grid.ExtractSlice(7, 0); err == nil {
		t.Error("Expected error for invalid axis")
	}
}

// TestExtractRegion verifies 3D subregion extraction
func TestExtractRegion(t *testing.T) {
	grid := makeTestGrid(t)

	region, err := grid.ExtractRegion(CrosshairPosition{X: 1, Y: 1, Z: 0}, [3]int{2, 2, 2})
	if err != nil {
		t.Fatalf("ExtractRegion failed: %v", err)
	}
	if len(region) != 8 {
		t.Fatalf("Expected 8 voxels, got %d", len(region))
	}
	// First voxel of the region is (1,1,0)
	if region[0] != 11 {
		t.Errorf("Expected 11, got %f", region[0])
	}
	// Last voxel of the region is (2,2,1)
	if region[7] != 122 {
		t.Errorf("Expected 122, got %f", region[7])
	}

	if _, err := grid.ExtractRegion(CrosshairPosition{X: 3, Y: 0, Z: 0}, [3]int{2, 1, 1}); err == nil {
		t.Error("Expected error for region beyond bounds")
	}
	if _, err := grid.ExtractRegion(CrosshairPosition{X: -1, Y: 0, Z: 0}, [3]int{1, 1, 1}); err == nil {
		t.Error("Expected error for negative start")
	}
}

// TestCountInRange verifies half-open interval counting
func TestCountInRange(t *testing.T) {
	grid := makeTestGrid(t)

	// Values 0..3 (y=0, z=0 row)
	if count := grid.CountInRange(0, 4); count != 4 {
		t.Errorf("Expected 4 voxels in [0,4), got %d", count)
	}

	// Upper bound is exclusive
	if count := grid.CountInRange(0, 3); count != 3 {
		t.Errorf("Expected 3 voxels in [0,3), got %d", count)
	}

	// Nothing above the maximum
	if count := grid.CountInRange(1000, 2000); count != 0 {
		t.Errorf("Expected 0 voxels, got %d", count)
	}
}
