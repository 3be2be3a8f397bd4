package scoring

import (
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a score event.
type EventKind string

const (
	KindCrossed      EventKind = "crossed"
	KindMissed       EventKind = "missed"
	KindBacktracking EventKind = "backtracking"
	KindProhibited   EventKind = "prohibited_zone"
	KindPenaltyZone  EventKind = "penalty_zone"
	KindCorridor     EventKind = "corridor"
	KindAltitude     EventKind = "altitude"
)

// Event is one immutable entry in the score log.
type Event struct {
	ID           uuid.UUID `json:"id"`
	ContestantID string    `json:"contestant_id"`
	Kind         EventKind `json:"kind"`
	// Reference names the gate or zone the event belongs to.
	Reference string    `json:"reference"`
	Time      time.Time `json:"time"`
	// OffsetSeconds is the magnitude behind the penalty: timing deviation
	// for crossings, seconds inside/outside bounds for zone events.
	OffsetSeconds float64 `json:"offset_seconds"`
	Points        float64 `json:"points"`
	ScoreAfter    float64 `json:"score_after"`
	Message       string  `json:"message,omitempty"`
}
