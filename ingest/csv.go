package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/track"
)

// TrackReader replays a recorded track from CSV: columns
// time,latitude,longitude[,speed,course,altitude,battery], with time in
// RFC 3339. A header row is detected and skipped.
type TrackReader struct {
	DeviceID string
}

// ReadFile parses the whole track, oldest first.
func (tr *TrackReader) ReadFile(path string) ([]track.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()
	return tr.Read(f)
}

func (tr *TrackReader) Read(r io.Reader) ([]track.Position, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	var out []track.Position
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("track line %d: %w", line+1, err)
		}
		line++
		if len(row) < 3 {
			continue
		}
		t, err := internal.ParsePositionTime(strings.TrimSpace(row[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("track line %d: bad time %q", line, row[0])
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("track line %d: bad coordinates", line)
		}
		p := track.NewPosition(t, lat, lon)
		p.DeviceID = tr.DeviceID
		if v, ok := optionalFloat(row, 3); ok {
			p.Speed = v
		}
		if v, ok := optionalFloat(row, 4); ok {
			p.Course = v
		}
		if v, ok := optionalFloat(row, 5); ok {
			p.Altitude = v
		}
		if v, ok := optionalFloat(row, 6); ok {
			p.Battery = v
		}
		out = append(out, p)
	}
	return out, nil
}

func optionalFloat(row []string, idx int) (float64, bool) {
	if idx >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
