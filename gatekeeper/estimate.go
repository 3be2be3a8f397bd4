package gatekeeper

import (
	"time"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/route"
)

// EstimateCrossingOfNextTimedGate is a read-only projection: it scans the
// outstanding gates in route order, skips gates without a time check, and
// extrapolates the contestant's current course/speed vector to the first
// timed gate's line. It never mutates state; the returned time is a preview
// and is never persisted.
func (g *Gatekeeper) EstimateCrossingOfNextTimedGate() (*route.Waypoint, time.Time, bool) {
	if !g.hasPositions {
		return nil, time.Time{}, false
	}
	cur := g.lastPosition
	course, speed, ok := g.courseAndSpeed()
	if !ok || speed <= 0 {
		return nil, time.Time{}, false
	}
	for _, gs := range g.outstanding {
		if !gs.wp.TimeCheck {
			continue
		}
		wp := gs.wp
		distNM, hit := 0.0, false
		if wp.HasGeometry() {
			proj := geo.NewProjection(wp.Point())
			origin := proj.ToXY(cur.Point())
			q1, q2 := proj.ToXY(wp.GateLine[0]), proj.ToXY(wp.GateLine[1])
			distNM, hit = geo.RayIntersection(origin, course, q1, q2)
		}
		if !hit {
			// The current heading does not intercept the line; fall back to
			// the straight-line distance to the gate.
			distNM = geo.DistanceNM(cur.Point(), wp.Point())
		}
		seconds := distNM / speed * 3600
		return wp, cur.Time.Add(time.Duration(seconds * float64(time.Second))), true
	}
	return nil, time.Time{}, false
}

// PreviewCrossingNow is the "if you cross now" preview: the timing penalty
// the next timed gate would attract if crossed at the extrapolated instant.
// Nothing is committed to the score log.
func (g *Gatekeeper) PreviewCrossingNow() (gateName string, estimated time.Time, points float64, ok bool) {
	wp, estimated, ok := g.EstimateCrossingOfNextTimedGate()
	if !ok {
		return "", time.Time{}, 0, false
	}
	planned, scheduled := g.gateTimes[wp.Name]
	if !scheduled {
		return wp.Name, estimated, 0, true
	}
	rule, err := g.engine.Scorecard.GateScoreFor(wp.Type)
	if err != nil {
		return "", time.Time{}, 0, false
	}
	points, _ = g.engine.TimingPenalty(rule, planned, estimated)
	return wp.Name, estimated, points, true
}

// courseAndSpeed prefers the tracker-reported course and ground speed and
// falls back to values derived from the two most recent track points.
func (g *Gatekeeper) courseAndSpeed() (courseDeg, speedKnots float64, ok bool) {
	cur := g.lastPosition
	if cur.HasCourse() {
		courseDeg = cur.Course
	} else {
		if g.prevPosition.Time.IsZero() {
			return 0, 0, false
		}
		courseDeg = geo.InitialBearing(g.prevPosition.Point(), cur.Point())
	}
	if cur.HasSpeed() {
		speedKnots = cur.Speed
	} else {
		if g.prevPosition.Time.IsZero() {
			return 0, 0, false
		}
		dt := cur.Time.Sub(g.prevPosition.Time).Hours()
		if dt <= 0 {
			return 0, 0, false
		}
		speedKnots = geo.DistanceNM(g.prevPosition.Point(), cur.Point()) / dt
	}
	return courseDeg, speedKnots, true
}
