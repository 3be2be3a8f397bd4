package gatekeeper

import (
	"fmt"
	"math"
	"time"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/scoring"
	"github.com/airsports-live/trackscore/track"
)

const (
	// backtrackAngleThreshold is how far off the leg bearing the course must
	// be before it counts as flying backwards.
	backtrackAngleThreshold = 120.0
	// backtrackMinSpeedKnots ignores course noise while effectively parked.
	backtrackMinSpeedKnots = 5.0
)

// backtrackState tracks a sustained course reversal against the active leg.
type backtrackState struct {
	reversedSince time.Time
	reversing     bool
	penalised     bool
}

// updateBacktracking detects course reversal beyond the angular threshold
// sustained longer than the scorecard grace time. Reversals just after a
// steep gate or within the gate's distance grace are exempt.
func (g *Gatekeeper) updateBacktracking(prev, cur track.Position) {
	sc := g.engine.Scorecard
	if sc.BacktrackingPenalty <= 0 {
		return
	}
	from, to := g.activeLeg()
	if to == nil {
		return
	}
	course, speed, ok := g.courseAndSpeed()
	if !ok || speed < backtrackMinSpeedKnots {
		g.resetBacktracking()
		return
	}
	expected := to.BearingFromPrevious
	if from != nil {
		expected = geo.InitialBearing(from.Point(), to.Point())
	}
	if math.Abs(geo.BearingDifference(expected, course)) <= backtrackAngleThreshold {
		g.resetBacktracking()
		return
	}
	if g.backtrackExempt(cur) {
		g.resetBacktracking()
		return
	}
	if !g.backtrack.reversing {
		g.backtrack.reversing = true
		g.backtrack.reversedSince = prev.Time
		return
	}
	if g.backtrack.penalised {
		return
	}
	if cur.Time.Sub(g.backtrack.reversedSince).Seconds() <= sc.BacktrackingGraceTimeSeconds {
		return
	}
	accrued := g.log.AccruedFor(scoring.KindBacktracking)
	points := g.engine.BacktrackingPenalty(accrued)
	g.backtrack.penalised = true
	if points <= 0 {
		return
	}
	g.log.Append(scoring.KindBacktracking, to.Name, cur.Time,
		cur.Time.Sub(g.backtrack.reversedSince).Seconds(), points,
		fmt.Sprintf("backtracking on leg to %s", to.Name))
}

// backtrackExempt covers the steep-gate grace period after crossing a gate
// with a sharp turn, and the distance graces around the previous and next
// gates.
func (g *Gatekeeper) backtrackExempt(cur track.Position) bool {
	if g.lastResolved != nil && g.lastResolved.IsSteep() {
		grace := g.lastResolvedRule.BacktrackingAfterSteepGateGraceSeconds
		if grace > 0 && cur.Time.Sub(g.lastResolvedTime).Seconds() <= grace {
			return true
		}
	}
	if g.lastResolved != nil {
		graceNM := g.lastResolvedRule.BacktrackingAfterGateGraceNM
		if graceNM > 0 && geo.DistanceNM(cur.Point(), g.lastResolved.Point()) <= graceNM {
			return true
		}
	}
	if len(g.outstanding) > 0 {
		next := g.outstanding[0]
		graceNM := next.rule.BacktrackingBeforeGateGraceNM
		if graceNM > 0 && geo.DistanceNM(cur.Point(), next.wp.Point()) <= graceNM {
			return true
		}
	}
	return false
}

func (g *Gatekeeper) resetBacktracking() {
	g.backtrack.reversing = false
	g.backtrack.penalised = false
}
