package geo

import (
	"math"
)

// Projection flattens a small neighbourhood of the sphere onto a plane with
// axes in nautical miles (x east, y north). All points fed to one projection
// must be near its reference, which holds for a gate and the track segments
// tested against it.
type Projection struct {
	ref    Point
	cosLat float64
}

// NewProjection anchors a local plane at ref.
func NewProjection(ref Point) Projection {
	return Projection{ref: ref, cosLat: math.Cos(radians(ref.Latitude))}
}

// XY is a planar coordinate in nautical miles relative to the projection
// reference.
type XY struct {
	X float64
	Y float64
}

func (p Projection) ToXY(pt Point) XY {
	return XY{
		X: (pt.Longitude - p.ref.Longitude) * p.cosLat * NauticalMilesPerDegree,
		Y: (pt.Latitude - p.ref.Latitude) * NauticalMilesPerDegree,
	}
}

// SegmentIntersection solves the parametric intersection of segments p1-p2
// and q1-q2. On intersection it returns the fraction along p1-p2 (used for
// time interpolation) and true. Collinear or parallel segments report no
// intersection; a degenerate gate line falls out the same way.
func SegmentIntersection(p1, p2, q1, q2 XY) (float64, bool) {
	rx, ry := p2.X-p1.X, p2.Y-p1.Y
	sx, sy := q2.X-q1.X, q2.Y-q1.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qpx, qpy := q1.X-p1.X, q1.Y-p1.Y
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// RayIntersection intersects a ray from origin along bearingDeg with the
// segment q1-q2 and returns the distance in nautical miles to the hit.
func RayIntersection(origin XY, bearingDeg float64, q1, q2 XY) (float64, bool) {
	brg := radians(bearingDeg)
	// Bearing is clockwise from north: east component sin, north component cos.
	rx, ry := math.Sin(brg), math.Cos(brg)
	sx, sy := q2.X-q1.X, q2.Y-q1.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qpx, qpy := q1.X-origin.X, q1.Y-origin.Y
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// CrossTrackNM returns the perpendicular distance from pt to the infinite
// line through a and b.
func CrossTrackNM(pt, a, b XY) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y)
	}
	return math.Abs((pt.X-a.X)*dy-(pt.Y-a.Y)*dx) / length
}

// PointInPolygon reports whether pt lies inside the polygon by ray casting.
// The polygon closes itself; vertices need not repeat the first point.
func PointInPolygon(pt Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		a, b := polygon[i], polygon[j]
		if (a.Latitude > pt.Latitude) != (b.Latitude > pt.Latitude) {
			x := (b.Longitude-a.Longitude)*(pt.Latitude-a.Latitude)/(b.Latitude-a.Latitude) + a.Longitude
			if pt.Longitude < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
