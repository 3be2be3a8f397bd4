package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/track"
)

const metresPerSecondToKnots = 1.9438444924406046

// FeedPoller polls a GTFS-RT VehiclePositions feed and converts entities
// into positions keyed by vehicle id. Tracker gateways that expose their
// device fleet this way plug straight into the registry.
type FeedPoller struct {
	URL      string
	Interval time.Duration

	httpClient *http.Client
}

func NewFeedPoller(url string, interval time.Duration) *FeedPoller {
	if interval <= 0 {
		interval = time.Second
	}
	return &FeedPoller{
		URL:        url,
		Interval:   interval,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Run polls until the context is cancelled, invoking emit for every vehicle
// position in each fetch. Duplicate timestamps are passed through; the track
// buffer drops them downstream.
func (fp *FeedPoller) Run(ctx context.Context, emit func(track.Position)) error {
	ticker := time.NewTicker(fp.Interval)
	defer ticker.Stop()
	for {
		if err := fp.pollOnce(ctx, emit); err != nil {
			internal.Logf("ingest: feed poll failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (fp *FeedPoller) pollOnce(ctx context.Context, emit func(track.Position)) error {
	fm, err := fp.fetch(ctx)
	if err != nil {
		return err
	}
	for _, e := range fm.Entity {
		v := e.Vehicle
		if v == nil || v.Position == nil || v.Vehicle == nil || v.Vehicle.Id == nil {
			continue
		}
		if v.Position.Latitude == nil || v.Position.Longitude == nil || v.Timestamp == nil {
			continue
		}
		p := track.NewPosition(
			time.Unix(int64(*v.Timestamp), 0).UTC(),
			float64(*v.Position.Latitude),
			float64(*v.Position.Longitude),
		)
		p.DeviceID = *v.Vehicle.Id
		if v.Position.Speed != nil {
			p.Speed = float64(*v.Position.Speed) * metresPerSecondToKnots
		}
		if v.Position.Bearing != nil {
			p.Course = float64(*v.Position.Bearing)
		}
		emit(p)
	}
	return nil
}

func (fp *FeedPoller) fetch(ctx context.Context) (*gtfsrtpb.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fp.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := fp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fp.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, fp.URL)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return &fm, nil
}
