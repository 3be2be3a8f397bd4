package scoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogScoreNeverIncreases(t *testing.T) {
	l := NewLog("c1", 200)
	at := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)

	ev := l.Append(KindCrossed, "TP1", at, 4, 6, "4 s late")
	assert.Equal(t, 194.0, ev.ScoreAfter)
	assert.Equal(t, 194.0, l.Score())

	ev = l.Append(KindCrossed, "TP2", at.Add(time.Minute), 0, 0, "on time")
	assert.Equal(t, 194.0, ev.ScoreAfter, "zero point events leave the score unchanged")

	ev = l.Append(KindMissed, "SC1", at.Add(2*time.Minute), 0, 100, "missed")
	assert.Equal(t, 94.0, ev.ScoreAfter)

	prev := l.Events()[0].ScoreAfter
	for _, e := range l.Events()[1:] {
		assert.LessOrEqual(t, e.ScoreAfter, prev)
		prev = e.ScoreAfter
	}
}

func TestLogEventOrderAndIdentity(t *testing.T) {
	l := NewLog("c1", 0)
	at := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)

	first := l.Append(KindCrossed, "SP", at, 0, 0, "")
	second := l.Append(KindBacktracking, "SP-TP1", at.Add(time.Second), 0, 200, "")

	events := l.Events()
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, second.ID, events[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "c1", events[0].ContestantID)
}

func TestEventsBetween(t *testing.T) {
	l := NewLog("c1", 0)
	base := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		l.Append(KindCrossed, "G", base.Add(time.Duration(i)*time.Minute), 0, 1, "")
	}

	got := l.EventsBetween(base.Add(time.Minute), base.Add(3*time.Minute))
	require.Len(t, got, 2, "window is inclusive of from, exclusive of to")
	assert.Equal(t, base.Add(time.Minute), got[0].Time)
	assert.Equal(t, base.Add(2*time.Minute), got[1].Time)

	assert.Empty(t, l.EventsBetween(base.Add(time.Hour), base.Add(2*time.Hour)))
}

func TestAccruedFor(t *testing.T) {
	l := NewLog("c1", 0)
	at := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	l.Append(KindBacktracking, "leg1", at, 0, 100, "")
	l.Append(KindCrossed, "TP1", at, 0, 9, "")
	l.Append(KindBacktracking, "leg2", at, 0, 100, "")

	assert.Equal(t, 200.0, l.AccruedFor(KindBacktracking))
	assert.Equal(t, 9.0, l.AccruedFor(KindCrossed))
	assert.Equal(t, 0.0, l.AccruedFor(KindPenaltyZone))
}

func TestLogConcurrentReaders(t *testing.T) {
	l := NewLog("c1", 1000)
	at := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					_ = l.Score()
					_ = l.Events()
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		l.Append(KindCrossed, "G", at.Add(time.Duration(i)*time.Second), 0, 1, "")
	}
	close(done)
	wg.Wait()

	assert.Equal(t, 900.0, l.Score())
	assert.Len(t, l.Events(), 100)
}
