package processor

import (
	"fmt"
	"sync"

	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scorecard"
	"github.com/airsports-live/trackscore/track"
)

// Registry owns the running processors and routes inbound positions to them
// by tracker device id. Contestants are fully independent; the registry
// never shares mutable state between them.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*Processor
	byDevice map[string]*Processor
}

func NewRegistry() *Registry {
	return &Registry{
		byID:     map[string]*Processor{},
		byDevice: map[string]*Processor{},
	}
}

// Start builds, registers, and launches a processor for the contestant.
func (r *Registry) Start(c Contestant, rt *route.Route, sc *scorecard.Scorecard, interp track.Interpolation) (*Processor, error) {
	p, err := New(c, rt, sc, interp)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	if _, exists := r.byID[c.ID]; exists {
		r.mu.Unlock()
		return nil, fmt.Errorf("contestant %s already registered", c.ID)
	}
	r.byID[c.ID] = p
	if c.TrackerDeviceID != "" {
		r.byDevice[c.TrackerDeviceID] = p
	}
	r.mu.Unlock()
	p.Start()
	return p, nil
}

// Route delivers a position to the contestant tracking the given device.
// Unknown devices are dropped as soft anomalies.
func (r *Registry) Route(deviceID string, pos track.Position) bool {
	r.mu.RLock()
	p, ok := r.byDevice[deviceID]
	r.mu.RUnlock()
	if !ok {
		internal.Logf("registry: no contestant for device %s, dropping position", deviceID)
		return false
	}
	return p.Enqueue(pos)
}

// Get returns the processor for a contestant id.
func (r *Registry) Get(contestantID string) (*Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[contestantID]
	return p, ok
}

// Terminate stops one contestant's worker and freezes its score.
func (r *Registry) Terminate(contestantID string) bool {
	r.mu.RLock()
	p, ok := r.byID[contestantID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	p.Terminate()
	return true
}

// TerminateAll stops every worker, typically at the end of a task window.
func (r *Registry) TerminateAll() {
	r.mu.RLock()
	procs := make([]*Processor, 0, len(r.byID))
	for _, p := range r.byID {
		procs = append(procs, p)
	}
	r.mu.RUnlock()
	for _, p := range procs {
		p.Terminate()
	}
}
