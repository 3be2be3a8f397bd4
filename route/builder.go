package route

import (
	"fmt"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/scorecard"
)

// WaypointSpec is the authored description of one waypoint, before gate
// geometry is derived.
type WaypointSpec struct {
	Name      string
	Latitude  float64
	Longitude float64
	Type      scorecard.GateType
	// Width is the gate line length in nautical miles.
	Width float64
	// IsProcedureTurn marks gates requiring a procedure turn when the
	// scorecard enables them.
	IsProcedureTurn bool
}

// Build derives the full route snapshot from authored waypoints: leg
// bearings and distances, gate lines perpendicular to the leg bisector, and
// extended gate lines where the scorecard defines a wider tolerance.
func Build(name string, specs []WaypointSpec, sc *scorecard.Scorecard) (*Route, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("route %q needs at least two waypoints, got %d", name, len(specs))
	}
	r := &Route{Name: name, Waypoints: make([]Waypoint, len(specs))}
	for i, spec := range specs {
		w := Waypoint{
			Name:            spec.Name,
			Index:           i,
			Type:            spec.Type,
			Latitude:        spec.Latitude,
			Longitude:       spec.Longitude,
			Width:           spec.Width,
			IsProcedureTurn: spec.IsProcedureTurn,
			TimeCheck:       defaultTimeCheck(spec.Type),
			GateCheck:       defaultGateCheck(spec.Type),
		}
		r.Waypoints[i] = w
	}
	for i := range r.Waypoints {
		w := &r.Waypoints[i]
		if i > 0 {
			prev := &r.Waypoints[i-1]
			w.BearingFromPrevious = geo.InitialBearing(prev.Point(), w.Point())
			w.DistancePreviousNM = geo.DistanceNM(prev.Point(), w.Point())
		}
		if i < len(r.Waypoints)-1 {
			next := &r.Waypoints[i+1]
			w.BearingNext = geo.InitialBearing(w.Point(), next.Point())
			w.DistanceNextNM = geo.DistanceNM(w.Point(), next.Point())
		}
	}
	// Endpoints have only one leg; mirror it so the turn angle is zero.
	r.Waypoints[0].BearingFromPrevious = r.Waypoints[0].BearingNext
	last := &r.Waypoints[len(r.Waypoints)-1]
	last.BearingNext = last.BearingFromPrevious

	for i := range r.Waypoints {
		w := &r.Waypoints[i]
		gs, err := sc.GateScoreFor(w.Type)
		if err != nil {
			return nil, err
		}
		w.GateLine = gateLine(w, w.Width)
		if gs.ExtendedGateWidth > w.Width {
			ext := gateLine(w, gs.ExtendedGateWidth)
			w.ExtendedGateLine = &ext
		}
	}
	return r, nil
}

// gateLine builds the two-point line of the given width, perpendicular to
// the bisector of the inbound and outbound legs.
func gateLine(w *Waypoint, widthNM float64) [2]geo.Point {
	bisector := w.BearingFromPrevious + geo.BearingDifference(w.BearingFromPrevious, w.BearingNext)/2
	half := widthNM / 2
	return [2]geo.Point{
		geo.Destination(w.Point(), bisector-90, half),
		geo.Destination(w.Point(), bisector+90, half),
	}
}

func defaultTimeCheck(t scorecard.GateType) bool {
	switch t {
	case scorecard.DummyPoint, scorecard.UnknownLeg:
		return false
	default:
		return true
	}
}

func defaultGateCheck(t scorecard.GateType) bool {
	switch t {
	case scorecard.SecretPoint, scorecard.DummyPoint, scorecard.UnknownLeg:
		return false
	default:
		return true
	}
}
