package report

import (
	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/processor"
	"github.com/airsports-live/trackscore/scoring"
)

// EventEntry is one score log line in presentation form.
type EventEntry struct {
	Kind          string  `json:"kind" xml:"Kind"`
	Reference     string  `json:"reference" xml:"Reference"`
	Time          string  `json:"time" xml:"Time"`
	OffsetSeconds float64 `json:"offset_seconds" xml:"OffsetSeconds"`
	Points        float64 `json:"points" xml:"Points"`
	ScoreAfter    float64 `json:"score_after" xml:"ScoreAfter"`
	Message       string  `json:"message,omitempty" xml:"Message,omitempty"`
}

// ScoreReport is the complete scoring outcome for one contestant.
type ScoreReport struct {
	ContestantID     string       `json:"contestant_id" xml:"ContestantID"`
	Route            string       `json:"route" xml:"Route"`
	Scorecard        string       `json:"scorecard" xml:"Scorecard"`
	GeneratedAt      string       `json:"generated_at" xml:"GeneratedAt"`
	FinalScore       float64      `json:"final_score" xml:"FinalScore"`
	OutstandingGates []string     `json:"outstanding_gates,omitempty" xml:"OutstandingGates>Gate,omitempty"`
	Events           []EventEntry `json:"events" xml:"Events>Event"`
}

// Build snapshots the processor's current score into a report.
func Build(p *processor.Processor, routeName, scorecardName string) *ScoreReport {
	events := p.Events()
	r := &ScoreReport{
		ContestantID:     p.Contestant().ID,
		Route:            routeName,
		Scorecard:        scorecardName,
		GeneratedAt:      internal.Iso8601Now(),
		FinalScore:       p.Score(),
		OutstandingGates: p.OutstandingGates(),
		Events:           make([]EventEntry, 0, len(events)),
	}
	for _, ev := range events {
		r.Events = append(r.Events, entryFromEvent(ev))
	}
	return r
}

func entryFromEvent(ev scoring.Event) EventEntry {
	return EventEntry{
		Kind:          string(ev.Kind),
		Reference:     ev.Reference,
		Time:          internal.Iso8601FromTime(ev.Time),
		OffsetSeconds: ev.OffsetSeconds,
		Points:        ev.Points,
		ScoreAfter:    ev.ScoreAfter,
		Message:       ev.Message,
	}
}
