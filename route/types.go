package route

import (
	"math"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/scorecard"
)

// Waypoint is a named gate on the route. Immutable for the duration of a
// contestant's flight.
type Waypoint struct {
	Name      string
	Index     int
	Type      scorecard.GateType
	Latitude  float64
	Longitude float64
	// Width is the gate line length in nautical miles.
	Width float64

	// GateLine is the two-point gate segment, perpendicular to the leg
	// bisector through the waypoint.
	GateLine [2]geo.Point
	// ExtendedGateLine is the wider tolerance line, present when the
	// scorecard defines an extended width larger than the gate width.
	ExtendedGateLine *[2]geo.Point

	TimeCheck       bool
	GateCheck       bool
	IsProcedureTurn bool

	BearingNext         float64
	BearingFromPrevious float64
	DistanceNextNM      float64
	DistancePreviousNM  float64
}

// Point returns the waypoint centre.
func (w *Waypoint) Point() geo.Point {
	return geo.Point{Latitude: w.Latitude, Longitude: w.Longitude}
}

// TurnAngle is the absolute course change at the waypoint in degrees.
// Gates turning more than 90 degrees are "steep" for backtracking purposes.
func (w *Waypoint) TurnAngle() float64 {
	return math.Abs(geo.BearingDifference(w.BearingFromPrevious, w.BearingNext))
}

// IsSteep reports whether the turn at this gate exceeds 90 degrees.
func (w *Waypoint) IsSteep() bool {
	return w.TurnAngle() > 90
}

// HasGeometry reports whether the gate line is usable for crossing tests.
// Degenerate lines resolve only through the miss path.
func (w *Waypoint) HasGeometry() bool {
	return w.GateLine[0] != w.GateLine[1]
}

// ZoneKind classifies an airspace zone on the route.
type ZoneKind string

const (
	ZoneProhibited  ZoneKind = "prohibited"
	ZonePenalty     ZoneKind = "penalty"
	ZoneInformation ZoneKind = "information"
)

// Zone is a polygonal airspace area scored by the zone rules.
type Zone struct {
	Name    string      `yaml:"name" validate:"required"`
	Kind    ZoneKind    `yaml:"kind" validate:"required,oneof=prohibited penalty information"`
	Polygon []geo.Point `yaml:"polygon" validate:"min=3"`
}

// Contains reports whether p lies inside the zone polygon.
func (z *Zone) Contains(p geo.Point) bool {
	return geo.PointInPolygon(p, z.Polygon)
}

// Route is the complete task snapshot for one navigation task.
type Route struct {
	Name      string
	Waypoints []Waypoint
	Zones     []Zone

	// CorridorWidthNM bounds air-sports-race tasks; zero disables corridor
	// scoring.
	CorridorWidthNM float64
	// MinimumAltitudeFt is the floor for altitude penalties; zero disables.
	MinimumAltitudeFt float64
}

// GateTypes returns the distinct gate types present on the route.
func (r *Route) GateTypes() []scorecard.GateType {
	seen := map[scorecard.GateType]struct{}{}
	var out []scorecard.GateType
	for i := range r.Waypoints {
		t := r.Waypoints[i].Type
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
