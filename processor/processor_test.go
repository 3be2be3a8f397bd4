package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scorecard"
	"github.com/airsports-live/trackscore/scoring"
	"github.com/airsports-live/trackscore/track"
)

var windowStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func testRoute(t *testing.T, sc *scorecard.Scorecard) *route.Route {
	t.Helper()
	r, err := route.Build("test task", []route.WaypointSpec{
		{Name: "SP", Latitude: 60.0, Longitude: 11.0, Type: scorecard.StartingPoint, Width: 1},
		{Name: "TP1", Latitude: 60.1, Longitude: 11.0, Type: scorecard.Turnpoint, Width: 1},
		{Name: "FP", Latitude: 60.2, Longitude: 11.0, Type: scorecard.FinishPoint, Width: 1},
	}, sc)
	require.NoError(t, err)
	return r
}

func trackFix(offsetSeconds float64, lat float64) track.Position {
	p := track.NewPosition(windowStart.Add(time.Duration(offsetSeconds*float64(time.Second))), lat, 11.0)
	p.DeviceID = "tracker-1"
	return p
}

// fullRun is a clean flight crossing all three gates.
func fullRun() []track.Position {
	var out []track.Position
	lat := 59.99
	for i := 0; i <= 11; i++ {
		out = append(out, trackFix(float64(i), lat))
		lat += 0.02
	}
	return out
}

func startProcessor(t *testing.T, c Contestant) *Processor {
	t.Helper()
	sc := scorecard.FAIPrecision2020()
	p, err := New(c, testRoute(t, sc), sc, track.DefaultInterpolation())
	require.NoError(t, err)
	p.Start()
	return p
}

func TestNewValidatesContestant(t *testing.T) {
	sc := scorecard.FAIPrecision2020()
	r := testRoute(t, sc)

	_, err := New(Contestant{}, r, sc, track.DefaultInterpolation())
	assert.Error(t, err, "empty contestant id")

	partial := &scorecard.Scorecard{
		Name:       "partial",
		GateScores: map[scorecard.GateType]scorecard.GateScore{scorecard.StartingPoint: {}},
	}
	_, err = New(Contestant{ID: "c1"}, r, partial, track.DefaultInterpolation())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c1")
}

func TestProcessorScoresFullRun(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})

	for _, pos := range fullRun() {
		require.True(t, p.Enqueue(pos))
	}
	p.Terminate()

	assert.Empty(t, p.OutstandingGates())
	events := p.Events()
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, scoring.KindCrossed, ev.Kind)
	}
	assert.Equal(t, 0.0, p.Score(), "no planned times, no penalties")
}

func TestDuplicateDeliveryIsIdempotent(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})

	// Feeds sometimes redeliver; the track buffer drops replays, so the
	// score comes out the same.
	for _, pos := range fullRun() {
		p.Enqueue(pos)
		p.Enqueue(pos)
	}
	p.Terminate()

	assert.Len(t, p.Events(), 3)
	assert.Equal(t, 0.0, p.Score())
}

func TestTerminateFreezesScore(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})

	positions := fullRun()
	for _, pos := range positions[:4] {
		require.True(t, p.Enqueue(pos))
	}
	p.Terminate()
	scoreAt := p.Score()

	assert.False(t, p.Enqueue(positions[5]), "positions after termination are refused")
	assert.Equal(t, scoreAt, p.Score())
	assert.Empty(t, p.OutstandingGates(), "termination resolves the rest as missed")
	// SP crossed, the remaining two gates missed.
	assert.Equal(t, -200.0, scoreAt)
}

func TestTerminateWithoutPositionsStampsWallClock(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})

	// No positions and no deadline: missed events fall back to the wall
	// clock instead of the zero time.
	before := time.Now()
	p.Terminate()

	events := p.Events()
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, scoring.KindMissed, ev.Kind)
		assert.False(t, ev.Time.Before(before))
		assert.False(t, ev.Time.After(time.Now()))
	}
}

func TestTerminateIsIdempotent(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})
	p.Terminate()
	p.Terminate()
	assert.Len(t, p.Events(), 3, "every gate missed exactly once")
}

func TestPositionsOutsideWindowIgnored(t *testing.T) {
	c := Contestant{
		ID:               "c1",
		TrackerDeviceID:  "tracker-1",
		TrackerStartTime: windowStart.Add(2 * time.Second),
	}
	p := startProcessor(t, c)

	// The first two fixes predate the tracking window; the flight starts
	// from the third, so the start gate crossing at t=0.x never happens.
	positions := fullRun()
	for _, pos := range positions {
		p.Enqueue(pos)
	}
	p.Terminate()

	for _, ev := range p.Events() {
		if ev.Reference == "SP" {
			assert.Equal(t, scoring.KindMissed, ev.Kind)
		}
	}
}

func TestFinishedByTimeClosesWindow(t *testing.T) {
	c := Contestant{
		ID:              "c1",
		TrackerDeviceID: "tracker-1",
		FinishedByTime:  windowStart.Add(3 * time.Second),
	}
	p := startProcessor(t, c)

	for _, pos := range fullRun() {
		p.Enqueue(pos)
	}
	p.Terminate()

	// Only the start gate fits inside the window; the deadline finalizes
	// the rest as missed.
	events := p.Events()
	require.Len(t, events, 3)
	assert.Equal(t, scoring.KindCrossed, events[0].Kind)
	assert.Equal(t, scoring.KindMissed, events[1].Kind)
	assert.Equal(t, scoring.KindMissed, events[2].Kind)
}

func TestSnapshotEstimate(t *testing.T) {
	p := startProcessor(t, Contestant{ID: "c1", TrackerDeviceID: "tracker-1"})

	pos := trackFix(0, 59.90)
	pos.Course = 0
	pos.Speed = 60
	require.True(t, p.Enqueue(pos))
	next := trackFix(2, 59.95)
	next.Course = 0
	next.Speed = 60
	require.True(t, p.Enqueue(next))

	// The worker refreshes the snapshot after each position; wait for the
	// estimate to appear without blocking ingestion.
	require.Eventually(t, func() bool {
		_, _, ok := p.NextTimedGateEstimate()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	gate, at, ok := p.NextTimedGateEstimate()
	require.True(t, ok)
	assert.Equal(t, "SP", gate)
	assert.InDelta(t, 180, at.Sub(next.Time).Seconds(), 2)
	assert.Equal(t, []string{"SP", "TP1", "FP"}, p.OutstandingGates())

	p.Terminate()

	_, _, ok = p.NextTimedGateEstimate()
	assert.False(t, ok, "no estimate once every gate is resolved")

	events := p.EventsBetween(windowStart, windowStart.Add(time.Hour))
	assert.Len(t, events, 3, "all gates missed on termination")
}

func TestScorePreviewUsesPlannedGateTime(t *testing.T) {
	p := startProcessor(t, Contestant{
		ID:              "c1",
		TrackerDeviceID: "tracker-1",
		GateTimes:       map[string]time.Time{"SP": windowStart},
	})
	defer p.Terminate()

	_, _, _, ok := p.ScorePreview()
	require.False(t, ok, "no preview before any position")

	pos := trackFix(0, 59.90)
	pos.Course = 0
	pos.Speed = 60
	require.True(t, p.Enqueue(pos))
	next := trackFix(2, 59.95)
	next.Course = 0
	next.Speed = 60
	require.True(t, p.Enqueue(next))

	require.Eventually(t, func() bool {
		_, _, _, ok := p.ScorePreview()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	gate, at, points, ok := p.ScorePreview()
	require.True(t, ok)
	assert.Equal(t, "SP", gate)
	assert.InDelta(t, 180, at.Sub(next.Time).Seconds(), 2)
	// Roughly three minutes behind schedule, so the penalty sits at the cap.
	assert.Equal(t, 100.0, points)

	events := p.EventsBetween(windowStart, windowStart.Add(time.Hour))
	assert.Empty(t, events, "preview commits nothing to the log")
}

func TestRegistryRoutesByDevice(t *testing.T) {
	sc := scorecard.FAIPrecision2020()
	r := testRoute(t, sc)
	reg := NewRegistry()

	_, err := reg.Start(Contestant{ID: "c1", TrackerDeviceID: "tracker-1"}, r, sc, track.DefaultInterpolation())
	require.NoError(t, err)
	_, err = reg.Start(Contestant{ID: "c2", TrackerDeviceID: "tracker-2"}, r, sc, track.DefaultInterpolation())
	require.NoError(t, err)

	assert.True(t, reg.Route("tracker-1", trackFix(0, 59.99)))
	assert.False(t, reg.Route("tracker-99", trackFix(0, 59.99)), "unknown devices are dropped")

	reg.TerminateAll()

	p1, ok := reg.Get("c1")
	require.True(t, ok)
	p2, ok := reg.Get("c2")
	require.True(t, ok)
	assert.Len(t, p1.Events(), 3)
	assert.Len(t, p2.Events(), 3)
}

func TestRegistryRejectsDuplicateContestant(t *testing.T) {
	sc := scorecard.FAIPrecision2020()
	r := testRoute(t, sc)
	reg := NewRegistry()

	_, err := reg.Start(Contestant{ID: "c1", TrackerDeviceID: "tracker-1"}, r, sc, track.DefaultInterpolation())
	require.NoError(t, err)
	_, err = reg.Start(Contestant{ID: "c1", TrackerDeviceID: "tracker-2"}, r, sc, track.DefaultInterpolation())
	assert.Error(t, err)

	assert.False(t, reg.Terminate("nobody"))
	assert.True(t, reg.Terminate("c1"))
}
