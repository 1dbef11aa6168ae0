package geometry

import "math"

// Distance returns the Euclidean distance between two world points in mm.
func Distance(p1, p2 Point3D) float64 {
	return p1.Distance(p2)
}

// Angle returns the angle in degrees formed at vertex by the two arms
// vertex->p1 and vertex->p2.
//
// The dot product of the normalized arms is clamped to [-1, 1] before
// acos so that floating-point overshoot at collinear points cannot
// produce NaN. A degenerate arm (point coincident with the vertex)
// yields 0 degrees.
func Angle(p1, vertex, p2 Point3D) float64 {
	v1 := p1.Sub(vertex).Normalize()
	v2 := p2.Sub(vertex).Normalize()

	dot := v1.Dot(v2)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	return math.Acos(dot) * 180.0 / math.Pi
}

// PolygonArea returns the area in mm² of the planar polygon described by
// the ordered points, using the shoelace formula generalized to 3D:
//
//	area = |Σ p_i × p_{i+1}| / 2
//
// For a polygon lying in a coordinate plane this reduces to the familiar
// 2D shoelace value. Points are taken in the order given; the polygon is
// closed implicitly from the last point back to the first.
// Self-intersecting polygons produce a value but are not validated as
// simple. Fewer than 3 points yield 0.
func PolygonArea(points []Point3D) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum Point3D
	for i := range points {
		j := (i + 1) % len(points)
		sum = sum.Add(points[i].Cross(points[j]))
	}

	return sum.Length() / 2.0
}
