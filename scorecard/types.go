package scorecard

import (
	"fmt"
)

// GateType identifies the role of a waypoint in the route.
type GateType string

const (
	Turnpoint     GateType = "tp"
	StartingPoint GateType = "sp"
	FinishPoint   GateType = "fp"
	SecretPoint   GateType = "secret"
	TakeoffGate   GateType = "to"
	LandingGate   GateType = "ldg"
	DummyPoint    GateType = "dummy"
	UnknownLeg    GateType = "ul"
)

// GateScore is the rule set for one gate type.
type GateScore struct {
	GracePeriodBefore              float64 `yaml:"graceperiod_before" validate:"gte=0"`
	GracePeriodAfter               float64 `yaml:"graceperiod_after" validate:"gte=0"`
	PenaltyPerSecond               float64 `yaml:"penalty_per_second" validate:"gte=0"`
	MaximumPenalty                 float64 `yaml:"maximum_penalty" validate:"gte=0"`
	MissedPenalty                  float64 `yaml:"missed_penalty" validate:"gte=0"`
	MissedProcedureTurnPenalty     float64 `yaml:"missed_procedure_turn_penalty" validate:"gte=0"`
	ExtendedGateWidth              float64 `yaml:"extended_gate_width" validate:"gte=0"`
	BadCrossingExtendedGatePenalty float64 `yaml:"bad_crossing_extended_gate_penalty" validate:"gte=0"`

	// Backtracking tolerances tied to this gate type. The steep-gate grace
	// suspends backtracking detection just after crossing a gate with a
	// sharp turn; the distance graces exempt reversals close to the gate.
	BacktrackingAfterSteepGateGraceSeconds float64 `yaml:"backtracking_after_steep_gate_grace_period_seconds" validate:"gte=0"`
	BacktrackingBeforeGateGraceNM          float64 `yaml:"backtracking_before_gate_grace_period_nm" validate:"gte=0"`
	BacktrackingAfterGateGraceNM           float64 `yaml:"backtracking_after_gate_grace_period_nm" validate:"gte=0"`
}

// Scorecard is the complete rule configuration for a task type.
type Scorecard struct {
	Name              string  `yaml:"name" validate:"required"`
	ShortcutName      string  `yaml:"shortcut_name"`
	UseProcedureTurns bool    `yaml:"use_procedure_turns"`
	InitialScore      float64 `yaml:"initial_score"`

	BacktrackingPenalty          float64 `yaml:"backtracking_penalty" validate:"gte=0"`
	BacktrackingGraceTimeSeconds float64 `yaml:"backtracking_grace_time_seconds" validate:"gte=0"`
	// BacktrackingMaximumPenalty caps accrued backtracking penalties; zero
	// means uncapped.
	BacktrackingMaximumPenalty float64 `yaml:"backtracking_maximum_penalty" validate:"gte=0"`

	ProhibitedZonePenalty   float64 `yaml:"prohibited_zone_penalty" validate:"gte=0"`
	ProhibitedZoneGraceTime float64 `yaml:"prohibited_zone_grace_time" validate:"gte=0"`
	// ProhibitedZoneMaximum of -1 means uncapped.
	ProhibitedZoneMaximum float64 `yaml:"prohibited_zone_maximum" validate:"gte=-1"`

	PenaltyZonePenaltyPerSecond float64 `yaml:"penalty_zone_penalty_per_second" validate:"gte=0"`
	PenaltyZoneGraceTime        float64 `yaml:"penalty_zone_grace_time" validate:"gte=0"`
	PenaltyZoneMaximum          float64 `yaml:"penalty_zone_maximum" validate:"gte=0"`

	CorridorOutsidePenalty float64 `yaml:"corridor_outside_penalty" validate:"gte=0"`
	CorridorGraceTime      float64 `yaml:"corridor_grace_time" validate:"gte=0"`
	CorridorMaximumPenalty float64 `yaml:"corridor_maximum_penalty" validate:"gte=0"`

	BelowMinimumAltitudePenalty        float64 `yaml:"below_minimum_altitude_penalty" validate:"gte=0"`
	BelowMinimumAltitudeMaximumPenalty float64 `yaml:"below_minimum_altitude_maximum_penalty" validate:"gte=0"`

	GateScores map[GateType]GateScore `yaml:"gate_scores" validate:"required"`
}

// GateScoreFor returns the rule set for the given gate type. A missing rule
// is a configuration error; callers treat it as fatal for the contestant.
func (s *Scorecard) GateScoreFor(t GateType) (GateScore, error) {
	gs, ok := s.GateScores[t]
	if !ok {
		return GateScore{}, fmt.Errorf("scorecard %q has no gate score for gate type %q", s.Name, t)
	}
	return gs, nil
}
