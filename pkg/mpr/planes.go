// Package mpr implements multiplanar reconstruction view state: three
// orthogonal cross-sectional views (axial, sagittal, coronal) kept
// synchronized around a shared crosshair position in voxel space.
package mpr

import "fmt"

// Plane identifies one of the three orthogonal viewing planes.
type Plane int

const (
	Axial Plane = iota
	Sagittal
	Coronal
)

// String returns the lower-case plane name.
func (p Plane) String() string {
	switch p {
	case Axial:
		return "axial"
	case Sagittal:
		return "sagittal"
	case Coronal:
		return "coronal"
	default:
		return fmt.Sprintf("plane(%d)", int(p))
	}
}

// PlaneState tracks the slice currently displayed by one view. SliceIndex
// is the voxel coordinate along the plane's normal axis and always equals
// the corresponding crosshair component after a synchronization step.
type PlaneState struct {
	Plane      Plane
	SliceIndex int
}

// AxisMapping is the explicit convention tying each viewing plane to the
// voxel axes (0=x, 1=y, 2=z). Normal is the axis perpendicular to the
// plane (the axis the slice index runs along); Horizontal and Vertical
// are the in-plane axes that normalized screen u and v map to.
//
// The mapping is injectable so a host can derive it from the DICOM
// patient orientation instead of relying on the default.
type AxisMapping struct {
	Normal     [3]int
	Horizontal [3]int
	Vertical   [3]int
}

// DefaultAxisMapping returns the radiological convention used when the
// host supplies nothing better: axial slices run along z (u->x, v->y),
// sagittal along x (u->y, v->z), coronal along y (u->x, v->z).
func DefaultAxisMapping() AxisMapping {
	return AxisMapping{
		Normal:     [3]int{Axial: 2, Sagittal: 0, Coronal: 1},
		Horizontal: [3]int{Axial: 0, Sagittal: 1, Coronal: 0},
		Vertical:   [3]int{Axial: 1, Sagittal: 2, Coronal: 2},
	}
}

// Validate checks that every plane's normal, horizontal and vertical axes
// form a permutation of the three voxel axes.
func (m AxisMapping) Validate() error {
	for p := Axial; p <= Coronal; p++ {
		seen := [3]bool{}
		for _, axis := range []int{m.Normal[p], m.Horizontal[p], m.Vertical[p]} {
			if axis < 0 || axis > 2 {
				return fmt.Errorf("%s plane: axis %d out of range", p, axis)
			}
			if seen[axis] {
				return fmt.Errorf("%s plane: axis %d assigned twice", p, axis)
			}
			seen[axis] = true
		}
	}
	return nil
}
