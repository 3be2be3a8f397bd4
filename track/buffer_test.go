package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func fixAt(offset time.Duration, lat, lon float64) Position {
	p := NewPosition(trackStart.Add(offset), lat, lon)
	p.DeviceID = "tracker-1"
	return p
}

func TestIngestPassesSmallGapsThroughUnchanged(t *testing.T) {
	b := NewBuffer(DefaultInterpolation())

	out := b.Ingest(fixAt(0, 60.0, 11.0))
	require.Len(t, out, 1)

	// Two seconds is under the threshold; exactly one position comes back
	// and it is the real fix, untouched.
	out = b.Ingest(fixAt(2*time.Second, 60.001, 11.0))
	require.Len(t, out, 1)
	assert.False(t, out[0].Interpolated)
	assert.Equal(t, 60.001, out[0].Latitude)
	assert.Equal(t, 2, b.Len())
}

func TestIngestDropsOutOfOrderAndDuplicates(t *testing.T) {
	b := NewBuffer(DefaultInterpolation())
	b.Ingest(fixAt(5*time.Second, 60.0, 11.0))

	assert.Nil(t, b.Ingest(fixAt(5*time.Second, 60.1, 11.0)), "duplicate timestamp")
	assert.Nil(t, b.Ingest(fixAt(3*time.Second, 60.1, 11.0)), "older timestamp")
	assert.Equal(t, 1, b.Len())

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, 60.0, last.Latitude)
}

func TestIngestDisabledInterpolationSkipsWideGaps(t *testing.T) {
	b := NewBuffer(DefaultInterpolation())
	b.Ingest(fixAt(0, 60.0, 11.0))

	out := b.Ingest(fixAt(10*time.Second, 60.01, 11.0))
	require.Len(t, out, 1)
	assert.False(t, out[0].Interpolated)
}

func TestIngestFillsWideGapWhenEnabled(t *testing.T) {
	b := NewBuffer(Interpolation{Enabled: true, GapThreshold: 3 * time.Second, Step: time.Second})
	b.Ingest(fixAt(0, 60.0, 11.0))

	out := b.Ingest(fixAt(5*time.Second, 60.004, 11.0))
	require.Len(t, out, 5, "four synthetic fixes plus the real one")

	for i, p := range out[:4] {
		assert.True(t, p.Interpolated, "position %d", i)
		assert.Equal(t, "tracker-1", p.DeviceID)
		assert.Equal(t, trackStart.Add(time.Duration(i+1)*time.Second), p.Time)
	}
	assert.False(t, out[4].Interpolated)
	assert.Equal(t, 6, b.Len())

	// Synthetic latitudes advance monotonically between the endpoints.
	prev := 60.0
	for _, p := range out {
		assert.Greater(t, p.Latitude, prev)
		prev = p.Latitude
	}
	assert.InDelta(t, 60.004, out[4].Latitude, 1e-9)
}

func TestLastTwoOrdering(t *testing.T) {
	b := NewBuffer(DefaultInterpolation())

	_, _, ok := b.LastTwo()
	assert.False(t, ok)

	b.Ingest(fixAt(0, 60.0, 11.0))
	b.Ingest(fixAt(time.Second, 60.1, 11.0))
	b.Ingest(fixAt(2*time.Second, 60.2, 11.0))

	prev, cur, ok := b.LastTwo()
	require.True(t, ok)
	assert.Equal(t, 60.1, prev.Latitude)
	assert.Equal(t, 60.2, cur.Latitude)
}

func TestNewPositionOptionalFields(t *testing.T) {
	p := NewPosition(trackStart, 60, 11)
	assert.False(t, p.HasSpeed())
	assert.False(t, p.HasCourse())
	assert.False(t, p.HasAltitude())

	p.Speed = 70
	p.Course = 270
	p.Altitude = 500
	assert.True(t, p.HasSpeed())
	assert.True(t, p.HasCourse())
	assert.True(t, p.HasAltitude())
}
