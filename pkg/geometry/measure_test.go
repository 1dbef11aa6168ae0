package geometry

import (
	"math"
	"testing"
)

// TestDistance verifies the literal Euclidean norm and symmetry
func TestDistance(t *testing.T) {
	p1 := NewPoint3D(0, 0, 0)
	p2 := NewPoint3D(3, 4, 0)

	if d := Distance(p1, p2); math.Abs(d-5.0) > 1e-9 {
		t.Errorf("Expected distance 5.0, got %f", d)
	}

	// Symmetry
	if Distance(p1, p2) != Distance(p2, p1) {
		t.Errorf("Distance should be symmetric")
	}

	// Zero distance
	if d := Distance(p1, p1); d != 0 {
		t.Errorf("Expected zero distance, got %f", d)
	}

	// Full 3D case
	d := Distance(NewPoint3D(1, 2, 3), NewPoint3D(4, 6, 15))
	if math.Abs(d-13.0) > 1e-9 {
		t.Errorf("Expected distance 13.0, got %f", d)
	}
}

// TestAngle verifies angle computation at the vertex in degrees
func TestAngle(t *testing.T) {
	tests := []struct {
		name     string
		p1       Point3D
		vertex   Point3D
		p2       Point3D
		expected float64
	}{
		{
			name:     "right angle",
			p1:       NewPoint3D(1, 0, 0),
			vertex:   NewPoint3D(0, 0, 0),
			p2:       NewPoint3D(0, 1, 0),
			expected: 90.0,
		},
		{
			name:     "straight line",
			p1:       NewPoint3D(-1, 0, 0),
			vertex:   NewPoint3D(0, 0, 0),
			p2:       NewPoint3D(1, 0, 0),
			expected: 180.0,
		},
		{
			name:     "collinear same direction",
			p1:       NewPoint3D(1, 1, 1),
			vertex:   NewPoint3D(0, 0, 0),
			p2:       NewPoint3D(2, 2, 2),
			expected: 0.0,
		},
		{
			name:     "45 degrees",
			p1:       NewPoint3D(1, 0, 0),
			vertex:   NewPoint3D(0, 0, 0),
			p2:       NewPoint3D(1, 1, 0),
			expected: 45.0,
		},
		{
			name:     "translated vertex",
			p1:       NewPoint3D(11, 10, 5),
			vertex:   NewPoint3D(10, 10, 5),
			p2:       NewPoint3D(10, 11, 5),
			expected: 90.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle := Angle(tt.p1, tt.vertex, tt.p2)
			if math.Abs(angle-tt.expected) > 0.01 {
				t.Errorf("Expected angle %f, got %f", tt.expected, angle)
			}
			// Arm order must not matter
			swapped := Angle(tt.p2, tt.vertex, tt.p1)
			if math.Abs(angle-swapped) > 1e-9 {
				t.Errorf("Angle should be symmetric in its arms: %f vs %f", angle, swapped)
			}
		})
	}
}

// TestAngleNeverNaN verifies the acos clamp against floating-point overshoot
func TestAngleNeverNaN(t *testing.T) {
	// Nearly collinear arms whose normalized dot product can exceed 1
	// in floating point
	p1 := NewPoint3D(0.1+0.2, 0.3, 0.7)
	vertex := NewPoint3D(0, 0, 0)
	p2 := p1.Mul(3.0000000000000004)

	angle := Angle(p1, vertex, p2)
	if math.IsNaN(angle) {
		t.Fatal("Angle must not be NaN for collinear points")
	}
	if math.Abs(angle) > 0.01 {
		t.Errorf("Expected ~0 degrees for collinear arms, got %f", angle)
	}

	// Degenerate arm: point coincident with vertex
	angle = Angle(vertex, vertex, p2)
	if math.IsNaN(angle) {
		t.Fatal("Angle must not be NaN for a degenerate arm")
	}
}

// TestPolygonArea verifies the shoelace formula on planar polygons
func TestPolygonArea(t *testing.T) {
	// 4x4 axis-aligned square -> 16 mm²
	square := []Point3D{
		NewPoint3D(0, 0, 0),
		NewPoint3D(4, 0, 0),
		NewPoint3D(4, 4, 0),
		NewPoint3D(0, 4, 0),
	}
	if area := PolygonArea(square); math.Abs(area-16.0) > 1e-9 {
		t.Errorf("Expected area 16.0, got %f", area)
	}

	// Winding order must not change the magnitude
	reversed := []Point3D{square[3], square[2], square[1], square[0]}
	if area := PolygonArea(reversed); math.Abs(area-16.0) > 1e-9 {
		t.Errorf("Expected area 16.0 for reversed winding, got %f", area)
	}

	// Right triangle with legs 3 and 4 -> 6 mm²
	triangle := []Point3D{
		NewPoint3D(0, 0, 0),
		NewPoint3D(3, 0, 0),
		NewPoint3D(0, 4, 0),
	}
	if area := PolygonArea(triangle); math.Abs(area-6.0) > 1e-9 {
		t.Errorf("Expected area 6.0, got %f", area)
	}

	// Polygon in a non-XY plane: same square stood up in the XZ plane
	standing := []Point3D{
		NewPoint3D(0, 2, 0),
		NewPoint3D(4, 2, 0),
		NewPoint3D(4, 2, 4),
		NewPoint3D(0, 2, 4),
	}
	if area := PolygonArea(standing); math.Abs(area-16.0) > 1e-9 {
		t.Errorf("Expected area 16.0 in XZ plane, got %f", area)
	}

	// Too few points
	if area := PolygonArea(square[:2]); area != 0 {
		t.Errorf("Expected area 0 for 2 points, got %f", area)
	}
	if area := PolygonArea(nil); area != 0 {
		t.Errorf("Expected area 0 for nil points, got %f", area)
	}
}

// TestVectorOps covers the basic vector algebra used by the measurements
func TestVectorOps(t *testing.T) {
	a := NewPoint3D(1, 2, 3)
	b := NewPoint3D(4, 5, 6)

	if s := a.Add(b); s != (Point3D{5, 7, 9}) {
		t.Errorf("Add: got %+v", s)
	}
	if d := b.Sub(a); d != (Point3D{3, 3, 3}) {
		t.Errorf("Sub: got %+v", d)
	}
	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot: expected 32, got %f", dot)
	}

	cross := NewPoint3D(1, 0, 0).Cross(NewPoint3D(0, 1, 0))
	if cross != (Point3D{0, 0, 1}) {
		t.Errorf("Cross: got %+v", cross)
	}

	n := NewPoint3D(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1.0) > 1e-12 {
		t.Errorf("Normalize: expected unit length, got %f", n.Length())
	}
	if z := (Point3D{}).Normalize(); z != (Point3D{}) {
		t.Errorf("Normalize of zero vector should be zero, got %+v", z)
	}
}
