package processor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/airsports-live/trackscore/gatekeeper"
	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scorecard"
	"github.com/airsports-live/trackscore/scoring"
	"github.com/airsports-live/trackscore/track"
)

// defaultQueueSize bounds the per-contestant position queue. Trackers report
// about once a second, so this absorbs minutes of backlog.
const defaultQueueSize = 256

// Contestant identifies one tracked flight window.
type Contestant struct {
	ID              string
	TrackerDeviceID string
	TakeoffTime     time.Time
	// TrackerStartTime opens the tracked window; positions before it are
	// ignored.
	TrackerStartTime time.Time
	// FinishedByTime closes the window; the first position at or after it
	// finalizes the score.
	FinishedByTime time.Time
	// GateTimes is the planned crossing time per gate name.
	GateTimes map[string]time.Time
}

// snapshot is the externally readable state, refreshed after every processed
// position so observers never touch worker-owned state.
type snapshot struct {
	outstanding   []string
	nextGate      string
	nextCrossing  time.Time
	previewPoints float64
	hasEstimate   bool
	hasPreview    bool
}

// Processor drives the scoring pipeline for one contestant.
type Processor struct {
	contestant Contestant
	buffer     *track.Buffer
	gk         *gatekeeper.Gatekeeper
	log        *scoring.Log

	positions chan track.Position
	quit      chan struct{}
	done      chan struct{}

	terminated atomic.Bool
	quitOnce   sync.Once
	hasPrev    bool
	prev       track.Position
	lastSeen   time.Time

	mu   sync.RWMutex
	snap snapshot
}

// New wires the pipeline for one contestant. It fails if the scorecard lacks
// a rule for any gate type on the route; a contestant must not start
// scoring with defaults.
func New(c Contestant, r *route.Route, sc *scorecard.Scorecard, interp track.Interpolation) (*Processor, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("contestant id is required")
	}
	log := scoring.NewLog(c.ID, sc.InitialScore)
	gk, err := gatekeeper.New(c.ID, r, sc, c.GateTimes, log)
	if err != nil {
		return nil, fmt.Errorf("contestant %s: %w", c.ID, err)
	}
	p := &Processor{
		contestant: c,
		buffer:     track.NewBuffer(interp),
		gk:         gk,
		log:        log,
		positions:  make(chan track.Position, defaultQueueSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	p.snap = snapshot{outstanding: gk.OutstandingGateNames()}
	return p, nil
}

// Start launches the worker goroutine.
func (p *Processor) Start() {
	go p.run()
}

func (p *Processor) run() {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			// One contestant's failure must never reach another worker.
			internal.Logf("processor: %s worker panic: %v", p.contestant.ID, r)
			p.finalize()
		}
	}()
	for {
		select {
		case pos := <-p.positions:
			p.process(pos)
			if p.terminated.Load() {
				return
			}
		case <-p.quit:
			// Drain already queued positions so a replayed track scores
			// the same whether or not termination races the queue.
			for {
				select {
				case pos := <-p.positions:
					p.process(pos)
					if p.terminated.Load() {
						return
					}
				default:
					p.finalize()
					return
				}
			}
		}
	}
}

// Enqueue hands a position to the worker. It reports false when the
// contestant is terminated or the queue is full; either way the caller is
// never blocked.
func (p *Processor) Enqueue(pos track.Position) bool {
	if p.terminated.Load() {
		return false
	}
	select {
	case p.positions <- pos:
		return true
	default:
		internal.Logf("processor: %s queue full, dropping position at %s",
			p.contestant.ID, pos.Time.Format(time.RFC3339))
		return false
	}
}

func (p *Processor) process(pos track.Position) {
	if !p.contestant.TrackerStartTime.IsZero() && pos.Time.Before(p.contestant.TrackerStartTime) {
		return
	}
	if !p.contestant.FinishedByTime.IsZero() && !pos.Time.Before(p.contestant.FinishedByTime) {
		p.finalize()
		return
	}
	p.lastSeen = pos.Time
	for _, evaluable := range p.buffer.Ingest(pos) {
		if p.hasPrev {
			p.gk.Evaluate(p.prev, evaluable)
		}
		p.prev = evaluable
		p.hasPrev = true
	}
	p.refreshSnapshot()
}

// finalize freezes the score: outstanding gates become misses and the
// continuous detectors flush. Idempotent.
func (p *Processor) finalize() {
	if p.terminated.Swap(true) {
		return
	}
	at := p.lastSeen
	if at.IsZero() {
		at = p.contestant.FinishedByTime
	}
	if at.IsZero() {
		at = time.Now()
	}
	p.gk.Finalize(at)
	p.refreshSnapshot()
	internal.Logf("processor: %s finalized, score %.1f", p.contestant.ID, p.log.Score())
}

// Terminate cooperatively stops the worker and freezes the score. Positions
// arriving after termination are dropped without effect.
func (p *Processor) Terminate() {
	p.quitOnce.Do(func() { close(p.quit) })
	<-p.done
}

// Done is closed when the worker has exited.
func (p *Processor) Done() <-chan struct{} { return p.done }

func (p *Processor) refreshSnapshot() {
	snap := snapshot{outstanding: p.gk.OutstandingGateNames()}
	if wp, at, ok := p.gk.EstimateCrossingOfNextTimedGate(); ok {
		snap.nextGate = wp.Name
		snap.nextCrossing = at
		snap.hasEstimate = true
		if _, _, points, ok := p.gk.PreviewCrossingNow(); ok {
			snap.previewPoints = points
			snap.hasPreview = true
		}
	}
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
}

// Contestant returns the flight window descriptor.
func (p *Processor) Contestant() Contestant { return p.contestant }

// Score returns the cumulative score; safe at any time, never blocks
// ingestion.
func (p *Processor) Score() float64 { return p.log.Score() }

// Events returns the committed score events in order.
func (p *Processor) Events() []scoring.Event { return p.log.Events() }

// EventsBetween returns committed events within [from, to).
func (p *Processor) EventsBetween(from, to time.Time) []scoring.Event {
	return p.log.EventsBetween(from, to)
}

// OutstandingGates returns the names of unresolved gates in route order.
func (p *Processor) OutstandingGates() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.snap.outstanding))
	copy(out, p.snap.outstanding)
	return out
}

// NextTimedGateEstimate returns the latest crossing estimate for the next
// timed gate, refreshed after every processed position.
func (p *Processor) NextTimedGateEstimate() (gate string, at time.Time, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap.nextGate, p.snap.nextCrossing, p.snap.hasEstimate
}

// ScorePreview returns the timing penalty the next timed gate would attract
// were it crossed at the estimated instant. Points are zero when no planned
// time is scheduled for that gate.
func (p *Processor) ScorePreview() (gate string, at time.Time, points float64, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap.nextGate, p.snap.nextCrossing, p.snap.previewPoints, p.snap.hasPreview
}
