package geo

import (
	"math"
)

const (
	// NauticalMilesPerDegree is the length of one degree of latitude.
	NauticalMilesPerDegree = 60.0
	// EarthRadiusNM is the mean earth radius in nautical miles.
	EarthRadiusNM = 3440.065
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// DistanceNM returns the haversine great-circle distance between a and b.
func DistanceNM(a, b Point) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	la1 := radians(a.Latitude)
	la2 := radians(b.Latitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusNM * c
}

// InitialBearing returns the initial great-circle bearing from a to b in
// degrees true, normalized to [0, 360).
func InitialBearing(a, b Point) float64 {
	la1 := radians(a.Latitude)
	la2 := radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	return normalizeBearing(degrees(math.Atan2(y, x)))
}

func normalizeBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// BearingDifference returns the signed smallest difference b-a in degrees,
// in the range (-180, 180].
func BearingDifference(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// Interpolate returns the point a fraction f (0..1) of the way from a to b
// along the great circle through them. Antipodal endpoints degenerate; the
// caller never feeds those (consecutive GPS fixes are close together).
func Interpolate(a, b Point, f float64) Point {
	la1, lo1 := radians(a.Latitude), radians(a.Longitude)
	la2, lo2 := radians(b.Latitude), radians(b.Longitude)
	delta := DistanceNM(a, b) / EarthRadiusNM
	if delta == 0 {
		return a
	}
	sinDelta := math.Sin(delta)
	fa := math.Sin((1-f)*delta) / sinDelta
	fb := math.Sin(f*delta) / sinDelta
	x := fa*math.Cos(la1)*math.Cos(lo1) + fb*math.Cos(la2)*math.Cos(lo2)
	y := fa*math.Cos(la1)*math.Sin(lo1) + fb*math.Cos(la2)*math.Sin(lo2)
	z := fa*math.Sin(la1) + fb*math.Sin(la2)
	return Point{
		Latitude:  degrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
		Longitude: degrees(math.Atan2(y, x)),
	}
}

// Destination returns the point reached by travelling distNM from p on the
// given initial bearing.
func Destination(p Point, bearingDeg, distNM float64) Point {
	la1 := radians(p.Latitude)
	lo1 := radians(p.Longitude)
	brg := radians(bearingDeg)
	delta := distNM / EarthRadiusNM
	la2 := math.Asin(math.Sin(la1)*math.Cos(delta) + math.Cos(la1)*math.Sin(delta)*math.Cos(brg))
	lo2 := lo1 + math.Atan2(
		math.Sin(brg)*math.Sin(delta)*math.Cos(la1),
		math.Cos(delta)-math.Sin(la1)*math.Sin(la2),
	)
	return Point{Latitude: degrees(la2), Longitude: degrees(lo2)}
}
