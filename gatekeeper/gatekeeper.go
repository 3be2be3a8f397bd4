package gatekeeper

import (
	"fmt"
	"math"
	"time"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scorecard"
	"github.com/airsports-live/trackscore/scoring"
	"github.com/airsports-live/trackscore/track"
)

const (
	// missRecedingSamples is how many consecutive receding fixes after
	// leaving a gate's vicinity declare the gate missed. A single stray GPS
	// sample never does.
	missRecedingSamples = 3
	// vicinityFloorNM keeps the miss envelope meaningful for narrow gates.
	vicinityFloorNM = 1.0
)

// gateState tracks one outstanding gate.
type gateState struct {
	wp   *route.Waypoint
	rule scorecard.GateScore

	inVicinity     bool
	lastDistanceNM float64
	recedingCount  int
	bypassCount    int
}

func (g *gateState) vicinityNM() float64 {
	return 2 * math.Max(g.wp.Width, vicinityFloorNM)
}

// Gatekeeper is the gate-crossing state machine for one contestant.
type Gatekeeper struct {
	contestantID string
	route        *route.Route
	engine       *scoring.Engine
	log          *scoring.Log

	// gateTimes holds the planned crossing time per gate name, where
	// scheduled.
	gateTimes map[string]time.Time

	outstanding []*gateState

	lastResolved     *route.Waypoint
	lastResolvedTime time.Time
	lastResolvedRule scorecard.GateScore

	prevPosition track.Position
	lastPosition track.Position
	hasPositions bool

	backtrack backtrackState
	zones     []*zoneState
	corridor  corridorState
	altitude  altitudeState
}

// New builds the state machine for a contestant flying the given route under
// the given scorecard. It refuses to start if any gate type on the route has
// no rule in the scorecard.
func New(contestantID string, r *route.Route, sc *scorecard.Scorecard, gateTimes map[string]time.Time, log *scoring.Log) (*Gatekeeper, error) {
	if len(r.Waypoints) == 0 {
		return nil, fmt.Errorf("route %q has no waypoints", r.Name)
	}
	g := &Gatekeeper{
		contestantID: contestantID,
		route:        r,
		engine:       scoring.NewEngine(sc),
		log:          log,
		gateTimes:    gateTimes,
	}
	for i := range r.Waypoints {
		wp := &r.Waypoints[i]
		rule, err := sc.GateScoreFor(wp.Type)
		if err != nil {
			return nil, err
		}
		g.outstanding = append(g.outstanding, &gateState{wp: wp, rule: rule})
	}
	for i := range r.Zones {
		g.zones = append(g.zones, &zoneState{zone: &r.Zones[i]})
	}
	return g, nil
}

// Evaluate consumes one track segment. Events it produces are appended to
// the score log in evaluation order.
func (g *Gatekeeper) Evaluate(prev, cur track.Position) {
	g.prevPosition = prev
	g.lastPosition = cur
	g.hasPositions = true

	g.resolveProximityGates(cur)
	g.evaluateCrossing(prev, cur)
	g.updateBacktracking(prev, cur)
	g.updateZones(cur)
	g.updateCorridor(cur)
	g.updateAltitude(cur)
}

// resolveProximityGates resolves leading gates that do not require a
// physical crossing (secret, dummy, unknown-leg) once the contestant passes
// close enough. They never block the gates behind them.
func (g *Gatekeeper) resolveProximityGates(cur track.Position) {
	for len(g.outstanding) > 0 {
		gs := g.outstanding[0]
		if gs.wp.GateCheck {
			return
		}
		dist := geo.DistanceNM(cur.Point(), gs.wp.Point())
		if dist > math.Max(gs.wp.Width, vicinityFloorNM) {
			return
		}
		g.resolveCrossed(gs, cur.Time, false)
	}
}

// evaluateCrossing tests the segment against the first outstanding gate
// requiring a physical crossing. Only one such gate is tested per segment;
// a second gate on the same segment resolves on the next call, preserving
// strict route order.
func (g *Gatekeeper) evaluateCrossing(prev, cur track.Position) {
	idx, gs := g.firstCheckedGate()
	if gs == nil {
		return
	}
	wp := gs.wp
	if wp.HasGeometry() {
		proj := geo.NewProjection(wp.Point())
		p1, p2 := proj.ToXY(prev.Point()), proj.ToXY(cur.Point())
		q1, q2 := proj.ToXY(wp.GateLine[0]), proj.ToXY(wp.GateLine[1])
		if frac, ok := geo.SegmentIntersection(p1, p2, q1, q2); ok {
			g.sweepLeadingGates(idx, cur.Time)
			g.resolveCrossed(gs, crossingTime(prev, cur, frac), false)
			return
		}
		if wp.ExtendedGateLine != nil {
			e1, e2 := proj.ToXY(wp.ExtendedGateLine[0]), proj.ToXY(wp.ExtendedGateLine[1])
			if frac, ok := geo.SegmentIntersection(p1, p2, e1, e2); ok {
				g.sweepLeadingGates(idx, cur.Time)
				g.resolveCrossed(gs, crossingTime(prev, cur, frac), true)
				return
			}
		}
	}
	g.updateMissTracking(idx, gs, cur)
}

// crossingTime interpolates the crossing instant linearly by the fractional
// distance along the segment to the intersection point.
func crossingTime(prev, cur track.Position, frac float64) time.Time {
	return prev.Time.Add(time.Duration(frac * float64(cur.Time.Sub(prev.Time))))
}

// updateMissTracking declares the gate missed once the contestant has been
// inside its vicinity envelope and then recedes decisively without ever
// intersecting the line. A gate bypassed outside its envelope is caught by
// the fallback: sustained recession while the contestant is already closer
// to a later gate on the route.
func (g *Gatekeeper) updateMissTracking(idx int, gs *gateState, cur track.Position) {
	dist := geo.DistanceNM(cur.Point(), gs.wp.Point())
	defer func() { gs.lastDistanceNM = dist }()

	if dist <= gs.vicinityNM() {
		gs.inVicinity = true
		gs.recedingCount = 0
		gs.bypassCount = 0
		return
	}
	receding := gs.lastDistanceNM > 0 && dist > gs.lastDistanceNM
	if gs.inVicinity {
		if receding {
			gs.recedingCount++
		} else {
			gs.recedingCount = 0
		}
		if gs.recedingCount >= missRecedingSamples {
			g.sweepLeadingGates(idx, cur.Time)
			g.resolveMissed(gs, cur.Time)
		}
		return
	}
	next := g.nextCheckedGateAfter(idx)
	if next == nil {
		return
	}
	if receding && geo.DistanceNM(cur.Point(), next.Point()) < dist {
		gs.bypassCount++
	} else {
		gs.bypassCount = 0
	}
	if gs.bypassCount >= missRecedingSamples {
		g.sweepLeadingGates(idx, cur.Time)
		g.resolveMissed(gs, cur.Time)
	}
}

func (g *Gatekeeper) nextCheckedGateAfter(idx int) *route.Waypoint {
	for i := idx + 1; i < len(g.outstanding); i++ {
		if g.outstanding[i].wp.GateCheck {
			return g.outstanding[i].wp
		}
	}
	return nil
}

// sweepLeadingGates resolves as missed any gates still outstanding ahead of
// position idx in the outstanding list. They are all proximity gates the
// contestant never came near.
func (g *Gatekeeper) sweepLeadingGates(idx int, at time.Time) {
	for i := 0; i < idx; i++ {
		g.resolveMissed(g.outstanding[0], at)
	}
}

func (g *Gatekeeper) firstCheckedGate() (int, *gateState) {
	for i, gs := range g.outstanding {
		if gs.wp.GateCheck {
			return i, gs
		}
	}
	return -1, nil
}

// resolveCrossed removes the gate from the outstanding list and commits the
// crossing with its timing penalty. extendedOnly marks a crossing credited
// through the extended gate line only.
func (g *Gatekeeper) resolveCrossed(gs *gateState, at time.Time, extendedOnly bool) {
	g.removeOutstanding(gs)
	g.noteResolved(gs, at)

	var points, offset float64
	msg := fmt.Sprintf("crossed gate %s", gs.wp.Name)
	if planned, ok := g.gateTimes[gs.wp.Name]; ok && gs.wp.TimeCheck {
		points, offset = g.engine.TimingPenalty(gs.rule, planned, at)
		if points > 0 {
			msg = fmt.Sprintf("crossed gate %s %.0f s %s", gs.wp.Name, math.Abs(offset), earlyLate(offset))
		}
	}
	if extendedOnly {
		points += g.engine.BadExtendedCrossingPenalty(gs.rule)
		msg += " (extended gate only)"
	}
	g.log.Append(scoring.KindCrossed, gs.wp.Name, at, offset, points, msg)
	internal.Logf("gatekeeper: %s %s", g.contestantID, msg)
}

func earlyLate(offset float64) string {
	if offset < 0 {
		return "early"
	}
	return "late"
}

// resolveMissed removes the gate and commits the missed penalty without a
// crossing time.
func (g *Gatekeeper) resolveMissed(gs *gateState, at time.Time) {
	g.removeOutstanding(gs)
	g.noteResolved(gs, at)
	points := g.engine.MissedGatePenalty(gs.rule, gs.wp.IsProcedureTurn)
	g.log.Append(scoring.KindMissed, gs.wp.Name, at, 0, points,
		fmt.Sprintf("missed gate %s", gs.wp.Name))
	internal.Logf("gatekeeper: %s missed gate %s", g.contestantID, gs.wp.Name)
}

func (g *Gatekeeper) removeOutstanding(gs *gateState) {
	for i, o := range g.outstanding {
		if o == gs {
			g.outstanding = append(g.outstanding[:i], g.outstanding[i+1:]...)
			return
		}
	}
}

func (g *Gatekeeper) noteResolved(gs *gateState, at time.Time) {
	g.lastResolved = gs.wp
	g.lastResolvedTime = at
	g.lastResolvedRule = gs.rule
}

// Finalize resolves every remaining outstanding gate as missed, flushes the
// continuous detectors, and freezes the state. Called when the contestant's
// flight window closes or they are terminated.
func (g *Gatekeeper) Finalize(at time.Time) {
	g.flushZones(at)
	g.flushCorridor(at)
	for len(g.outstanding) > 0 {
		g.resolveMissed(g.outstanding[0], at)
	}
}

// OutstandingGateNames returns the names of gates not yet resolved, in route
// order.
func (g *Gatekeeper) OutstandingGateNames() []string {
	out := make([]string, len(g.outstanding))
	for i, gs := range g.outstanding {
		out[i] = gs.wp.Name
	}
	return out
}

// Score returns the cumulative score.
func (g *Gatekeeper) Score() float64 { return g.log.Score() }

// activeLeg returns the leg the contestant is currently flying: from the
// last resolved gate (or the first waypoint) to the next outstanding one.
func (g *Gatekeeper) activeLeg() (from, to *route.Waypoint) {
	if len(g.outstanding) == 0 {
		return g.lastResolved, nil
	}
	to = g.outstanding[0].wp
	from = g.lastResolved
	if from == nil && to.Index > 0 {
		from = &g.route.Waypoints[to.Index-1]
	}
	return from, to
}
