package scoring

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is the append-only score record for one contestant. A single writer
// appends; observers read the cumulative score and query events at any time.
type Log struct {
	mu           sync.RWMutex
	contestantID string
	score        float64
	events       []Event
}

// NewLog starts a log at the scorecard's initial score.
func NewLog(contestantID string, initialScore float64) *Log {
	return &Log{contestantID: contestantID, score: initialScore}
}

// Append commits a penalty event. Points are a deduction; the cumulative
// score after the event is recorded on the event itself.
func (l *Log) Append(kind EventKind, reference string, at time.Time, offsetSeconds, points float64, message string) Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.score -= points
	ev := Event{
		ID:            uuid.New(),
		ContestantID:  l.contestantID,
		Kind:          kind,
		Reference:     reference,
		Time:          at,
		OffsetSeconds: offsetSeconds,
		Points:        points,
		ScoreAfter:    l.score,
		Message:       message,
	}
	l.events = append(l.events, ev)
	return ev
}

// Score returns the cumulative score.
func (l *Log) Score() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.score
}

// Events returns all committed events in append order.
func (l *Log) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// EventsBetween returns events with from <= Time < to, in append order.
func (l *Log) EventsBetween(from, to time.Time) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Event
	for _, ev := range l.events {
		if !ev.Time.Before(from) && ev.Time.Before(to) {
			out = append(out, ev)
		}
	}
	return out
}

// AccruedFor sums the points of committed events of the given kind.
func (l *Log) AccruedFor(kind EventKind) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var sum float64
	for _, ev := range l.events {
		if ev.Kind == kind {
			sum += ev.Points
		}
	}
	return sum
}
