// Package geometry provides the vector and polygon math used by the
// measurement tools. All coordinates are physical world coordinates in mm.
package geometry

import "math"

// Point3D represents a 3D point or vector in world space (mm).
type Point3D struct {
	X, Y, Z float64
}

// NewPoint3D creates a new 3D point
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (p Point3D) Add(other Point3D) Point3D {
	return Point3D{
		X: p.X + other.X,
		Y: p.Y + other.Y,
		Z: p.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (p Point3D) Sub(other Point3D) Point3D {
	return Point3D{
		X: p.X - other.X,
		Y: p.Y - other.Y,
		Z: p.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (p Point3D) Mul(scalar float64) Point3D {
	return Point3D{
		X: p.X * scalar,
		Y: p.Y * scalar,
		Z: p.Z * scalar,
	}
}

// Dot returns the dot product of two vectors
func (p Point3D) Dot(other Point3D) float64 {
	return p.X*other.X + p.Y*other.Y + p.Z*other.Z
}

// Cross returns the cross product of two vectors
func (p Point3D) Cross(other Point3D) Point3D {
	return Point3D{
		X: p.Y*other.Z - p.Z*other.Y,
		Y: p.Z*other.X - p.X*other.Z,
		Z: p.X*other.Y - p.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Distance returns the Euclidean distance between two points in mm
func (p Point3D) Distance(other Point3D) float64 {
	return p.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (p Point3D) Normalize() Point3D {
	length := p.Length()
	if length == 0 {
		return Point3D{}
	}
	return p.Mul(1.0 / length)
}
