package scoring

import (
	"math"
	"time"

	"github.com/airsports-live/trackscore/scorecard"
)

// Engine computes point deductions from scorecard rules. It holds no
// mutable state and is safe to share.
type Engine struct {
	Scorecard *scorecard.Scorecard
}

func NewEngine(sc *scorecard.Scorecard) *Engine {
	return &Engine{Scorecard: sc}
}

// TimingPenalty scores a crossing against its planned time. The grace period
// is chosen by the sign of the deviation (early uses the before grace, late
// the after grace); seconds beyond grace cost PenaltyPerSecond, clamped to
// MaximumPenalty. The returned offset is the signed deviation in seconds.
func (e *Engine) TimingPenalty(gs scorecard.GateScore, planned, actual time.Time) (points, offsetSeconds float64) {
	offsetSeconds = actual.Sub(planned).Seconds()
	grace := gs.GracePeriodAfter
	if offsetSeconds < 0 {
		grace = gs.GracePeriodBefore
	}
	beyond := math.Abs(offsetSeconds) - grace
	if beyond <= 0 {
		return 0, offsetSeconds
	}
	// Whole seconds beyond grace, rounded up: a 2.3 s overshoot past grace
	// scores three seconds.
	points = gs.PenaltyPerSecond * math.Ceil(beyond)
	return math.Min(points, gs.MaximumPenalty), offsetSeconds
}

// MissedGatePenalty is the flat penalty for never crossing a gate, plus the
// procedure turn penalty when the route scores procedure turns and the gate
// required one.
func (e *Engine) MissedGatePenalty(gs scorecard.GateScore, requiredProcedureTurn bool) float64 {
	p := gs.MissedPenalty
	if e.Scorecard.UseProcedureTurns && requiredProcedureTurn {
		p += gs.MissedProcedureTurnPenalty
	}
	return p
}

// BadExtendedCrossingPenalty applies when only the extended gate line was
// crossed. It comes on top of the timing penalty.
func (e *Engine) BadExtendedCrossingPenalty(gs scorecard.GateScore) float64 {
	return gs.BadCrossingExtendedGatePenalty
}

// BacktrackingPenalty returns the deduction for one sustained course
// reversal, honouring the accrual cap. accrued is what backtracking has
// already cost this contestant.
func (e *Engine) BacktrackingPenalty(accrued float64) float64 {
	return capped(e.Scorecard.BacktrackingPenalty, accrued, e.Scorecard.BacktrackingMaximumPenalty)
}

// ProhibitedZonePenalty is the flat deduction for one sustained prohibited
// zone entry. A maximum of -1 means uncapped.
func (e *Engine) ProhibitedZonePenalty(accrued float64) float64 {
	max := e.Scorecard.ProhibitedZoneMaximum
	if max < 0 {
		return e.Scorecard.ProhibitedZonePenalty
	}
	return capped(e.Scorecard.ProhibitedZonePenalty, accrued, max)
}

// PenaltyZonePenalty scores seconds spent inside a penalty zone beyond its
// grace time.
func (e *Engine) PenaltyZonePenalty(secondsBeyondGrace, accrued float64) float64 {
	if secondsBeyondGrace <= 0 {
		return 0
	}
	p := e.Scorecard.PenaltyZonePenaltyPerSecond * math.Ceil(secondsBeyondGrace)
	return capped(p, accrued, e.Scorecard.PenaltyZoneMaximum)
}

// CorridorPenalty scores seconds spent outside the corridor beyond grace.
func (e *Engine) CorridorPenalty(secondsBeyondGrace, accrued float64) float64 {
	if secondsBeyondGrace <= 0 {
		return 0
	}
	p := e.Scorecard.CorridorOutsidePenalty * math.Ceil(secondsBeyondGrace)
	return capped(p, accrued, e.Scorecard.CorridorMaximumPenalty)
}

// BelowMinimumAltitudePenalty is the flat deduction for a sustained descent
// below the route minimum.
func (e *Engine) BelowMinimumAltitudePenalty(accrued float64) float64 {
	return capped(e.Scorecard.BelowMinimumAltitudePenalty, accrued,
		e.Scorecard.BelowMinimumAltitudeMaximumPenalty)
}

// capped clamps a new deduction so accrued+points never exceeds max.
// A zero max means the rule is uncapped.
func capped(points, accrued, max float64) float64 {
	if max <= 0 {
		return points
	}
	if accrued >= max {
		return 0
	}
	return math.Min(points, max-accrued)
}
