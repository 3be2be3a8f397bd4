package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceNM(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
		tol      float64
	}{
		{
			name:     "same point",
			a:        Point{Latitude: 59.0, Longitude: 11.0},
			b:        Point{Latitude: 59.0, Longitude: 11.0},
			expected: 0,
			tol:      1e-9,
		},
		{
			name:     "one degree of latitude",
			a:        Point{Latitude: 0, Longitude: 0},
			b:        Point{Latitude: 1, Longitude: 0},
			expected: 60.04,
			tol:      0.1,
		},
		{
			name:     "one degree of longitude at 60N is half",
			a:        Point{Latitude: 60, Longitude: 0},
			b:        Point{Latitude: 60, Longitude: 1},
			expected: 30.02,
			tol:      0.1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceNM(tt.a, tt.b), tt.tol)
		})
	}
}

func TestInitialBearing(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{"north", Point{59, 11}, Point{60, 11}, 0},
		{"east", Point{0, 11}, Point{0, 12}, 90},
		{"south", Point{60, 11}, Point{59, 11}, 180},
		{"west", Point{0, 12}, Point{0, 11}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, InitialBearing(tt.a, tt.b), 0.01)
		})
	}
}

func TestBearingDifference(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"no difference", 90, 90, 0},
		{"small positive", 350, 10, 20},
		{"small negative", 10, 350, -20},
		{"opposite", 0, 180, 180},
		{"quarter turn left", 90, 0, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BearingDifference(tt.a, tt.b), 1e-9)
		})
	}
}

func TestInterpolate(t *testing.T) {
	a := Point{Latitude: 59.0, Longitude: 11.0}
	b := Point{Latitude: 59.1, Longitude: 11.2}

	start := Interpolate(a, b, 0)
	assert.InDelta(t, a.Latitude, start.Latitude, 1e-9)
	assert.InDelta(t, a.Longitude, start.Longitude, 1e-9)

	end := Interpolate(a, b, 1)
	assert.InDelta(t, b.Latitude, end.Latitude, 1e-9)
	assert.InDelta(t, b.Longitude, end.Longitude, 1e-9)

	mid := Interpolate(a, b, 0.5)
	assert.InDelta(t, DistanceNM(a, mid), DistanceNM(mid, b), 1e-6,
		"midpoint must be equidistant from both endpoints")
	assert.Greater(t, mid.Latitude, a.Latitude)
	assert.Less(t, mid.Latitude, b.Latitude)
}

func TestDestinationRoundTrip(t *testing.T) {
	start := Point{Latitude: 48.3, Longitude: 16.4}
	for _, bearing := range []float64{0, 45, 90, 213.7, 359} {
		dest := Destination(start, bearing, 10)
		assert.InDelta(t, 10, DistanceNM(start, dest), 1e-6)
		assert.InDelta(t, bearing, InitialBearing(start, dest), 0.05)
	}
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, q1, q2 XY
		frac           float64
		ok             bool
	}{
		{
			name: "perpendicular crossing at quarter",
			p1:   XY{X: 0, Y: 0}, p2: XY{X: 4, Y: 0},
			q1: XY{X: 1, Y: -1}, q2: XY{X: 1, Y: 1},
			frac: 0.25, ok: true,
		},
		{
			name: "miss beyond segment end",
			p1:   XY{X: 0, Y: 0}, p2: XY{X: 4, Y: 0},
			q1: XY{X: 5, Y: -1}, q2: XY{X: 5, Y: 1},
			ok: false,
		},
		{
			name: "parallel",
			p1:   XY{X: 0, Y: 0}, p2: XY{X: 4, Y: 0},
			q1: XY{X: 0, Y: 1}, q2: XY{X: 4, Y: 1},
			ok: false,
		},
		{
			name: "gate too short",
			p1:   XY{X: 0, Y: 0}, p2: XY{X: 4, Y: 0},
			q1: XY{X: 1, Y: 0.5}, q2: XY{X: 1, Y: 1},
			ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frac, ok := SegmentIntersection(tt.p1, tt.p2, tt.q1, tt.q2)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.frac, frac, 1e-9)
			}
		})
	}
}

func TestRayIntersection(t *testing.T) {
	// Gate line two miles north of the origin, one mile wide.
	q1 := XY{X: -0.5, Y: 2}
	q2 := XY{X: 0.5, Y: 2}

	dist, ok := RayIntersection(XY{}, 0, q1, q2)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, dist, 1e-9)

	// Heading away from the gate.
	_, ok = RayIntersection(XY{}, 180, q1, q2)
	assert.False(t, ok)

	// An oblique hit near the gate edge.
	dist, ok = RayIntersection(XY{}, math.Atan2(0.45, 2)*180/math.Pi, q1, q2)
	assert.True(t, ok)
	assert.InDelta(t, math.Hypot(0.45, 2), dist, 1e-9)
}

func TestCrossTrackNM(t *testing.T) {
	a := XY{X: 0, Y: 0}
	b := XY{X: 10, Y: 0}
	assert.InDelta(t, 3, CrossTrackNM(XY{X: 5, Y: 3}, a, b), 1e-9)
	assert.InDelta(t, 3, CrossTrackNM(XY{X: 5, Y: -3}, a, b), 1e-9)
	assert.InDelta(t, 0, CrossTrackNM(XY{X: 5, Y: 0}, a, b), 1e-9)
	// Degenerate line collapses to point distance.
	assert.InDelta(t, 5, CrossTrackNM(XY{X: 3, Y: 4}, a, a), 1e-9)
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{
		{Latitude: 59.0, Longitude: 11.0},
		{Latitude: 59.0, Longitude: 11.1},
		{Latitude: 59.1, Longitude: 11.1},
		{Latitude: 59.1, Longitude: 11.0},
	}
	assert.True(t, PointInPolygon(Point{Latitude: 59.05, Longitude: 11.05}, square))
	assert.False(t, PointInPolygon(Point{Latitude: 59.2, Longitude: 11.05}, square))
	assert.False(t, PointInPolygon(Point{Latitude: 59.05, Longitude: 11.2}, square))
	assert.False(t, PointInPolygon(Point{Latitude: 59.05, Longitude: 11.05}, square[:2]))
}

func TestProjectionToXY(t *testing.T) {
	ref := Point{Latitude: 60, Longitude: 10}
	proj := NewProjection(ref)

	origin := proj.ToXY(ref)
	assert.Zero(t, origin.X)
	assert.Zero(t, origin.Y)

	north := proj.ToXY(Point{Latitude: 60.1, Longitude: 10})
	assert.InDelta(t, 6, north.Y, 1e-9)
	assert.InDelta(t, 0, north.X, 1e-9)

	east := proj.ToXY(Point{Latitude: 60, Longitude: 10.1})
	assert.InDelta(t, 6*math.Cos(60*math.Pi/180), east.X, 1e-9)
}
