package track

import (
	"time"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/internal"
)

// Interpolation configures gap filling between consecutive fixes.
// Filling is off by default; when enabled, gaps wider than GapThreshold are
// bridged with synthetic positions every Step along the great circle.
type Interpolation struct {
	Enabled      bool
	GapThreshold time.Duration
	Step         time.Duration
}

// DefaultInterpolation returns the verified default: no gap filling, with
// the 3 second threshold below which a fix always passes through unchanged.
func DefaultInterpolation() Interpolation {
	return Interpolation{
		Enabled:      false,
		GapThreshold: 3 * time.Second,
		Step:         time.Second,
	}
}

// Buffer is the append-only, time-ordered position history for one
// contestant. It has a single writer; reads of All happen on the same
// goroutine as ingestion.
type Buffer struct {
	interp    Interpolation
	positions []Position
}

func NewBuffer(interp Interpolation) *Buffer {
	if interp.GapThreshold <= 0 {
		interp.GapThreshold = DefaultInterpolation().GapThreshold
	}
	if interp.Step <= 0 {
		interp.Step = DefaultInterpolation().Step
	}
	return &Buffer{interp: interp}
}

// Ingest accepts a new fix and returns the positions to evaluate, oldest
// first. Fixes not strictly newer than the last accepted one are dropped.
// Every returned position has already been appended to the history.
func (b *Buffer) Ingest(pos Position) []Position {
	last, ok := b.Last()
	if ok && !pos.Time.After(last.Time) {
		internal.Logf("track: dropping out-of-order position for %s at %s (last %s)",
			pos.DeviceID, pos.Time.Format(time.RFC3339Nano), last.Time.Format(time.RFC3339Nano))
		return nil
	}
	var out []Position
	gap := time.Duration(0)
	if ok {
		gap = pos.Time.Sub(last.Time)
	}
	if ok && b.interp.Enabled && gap > b.interp.GapThreshold {
		out = b.fillGap(last, pos)
	}
	out = append(out, pos)
	b.positions = append(b.positions, out...)
	return out
}

// fillGap synthesizes fixes between prev and next at fixed time steps,
// spherically interpolated along the great circle. The final real fix is not
// included; Ingest appends it after.
func (b *Buffer) fillGap(prev, next Position) []Position {
	total := next.Time.Sub(prev.Time)
	var out []Position
	for t := prev.Time.Add(b.interp.Step); t.Before(next.Time); t = t.Add(b.interp.Step) {
		frac := float64(t.Sub(prev.Time)) / float64(total)
		pt := geo.Interpolate(prev.Point(), next.Point(), frac)
		p := NewPosition(t, pt.Latitude, pt.Longitude)
		p.DeviceID = next.DeviceID
		p.Interpolated = true
		out = append(out, p)
	}
	return out
}

// Last returns the most recently accepted position.
func (b *Buffer) Last() (Position, bool) {
	if len(b.positions) == 0 {
		return Position{}, false
	}
	return b.positions[len(b.positions)-1], true
}

// LastTwo returns the two most recent positions, oldest first.
func (b *Buffer) LastTwo() (Position, Position, bool) {
	if len(b.positions) < 2 {
		return Position{}, Position{}, false
	}
	return b.positions[len(b.positions)-2], b.positions[len(b.positions)-1], true
}

// Len returns the number of accepted positions.
func (b *Buffer) Len() int { return len(b.positions) }

// All returns the history, oldest first. The slice must not be mutated.
func (b *Buffer) All() []Position { return b.positions }
