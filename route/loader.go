package route

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/airsports-live/trackscore/scorecard"
)

// LoadCSV reads a waypoint list in the route-editor export format
// (name, longitude, latitude, type, width) and builds the route against the
// given scorecard. Lines starting with '#' and a leading header row are
// skipped.
func LoadCSV(path, name string, sc *scorecard.Scorecard) (*Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse route %s: %w", path, err)
	}
	var specs []WaypointSpec
	for i, row := range rows {
		if len(row) < 5 || strings.HasPrefix(row[0], "#") {
			continue
		}
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if lonErr != nil || latErr != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("route %s line %d: bad coordinates", path, i+1)
		}
		width, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("route %s line %d: bad width: %w", path, i+1, err)
		}
		specs = append(specs, WaypointSpec{
			Name:      strings.TrimSpace(row[0]),
			Longitude: lon,
			Latitude:  lat,
			Type:      scorecard.GateType(strings.TrimSpace(strings.ToLower(row[3]))),
			Width:     width,
		})
	}
	return Build(name, specs, sc)
}

type zoneFile struct {
	Zones             []Zone  `yaml:"zones"`
	CorridorWidthNM   float64 `yaml:"corridor_width_nm" validate:"gte=0"`
	MinimumAltitudeFt float64 `yaml:"minimum_altitude_ft" validate:"gte=0"`
}

// LoadZones reads zone polygons and corridor/altitude limits from a YAML
// file and attaches them to the route.
func LoadZones(path string, r *Route) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read zones: %w", err)
	}
	var zf zoneFile
	if err := yaml.Unmarshal(data, &zf); err != nil {
		return fmt.Errorf("parse zones %s: %w", path, err)
	}
	v := validator.New()
	if err := v.Struct(zf); err != nil {
		return fmt.Errorf("zones %s: %w", path, err)
	}
	for i := range zf.Zones {
		if err := v.Struct(zf.Zones[i]); err != nil {
			return fmt.Errorf("zones %s: %w", path, err)
		}
	}
	r.Zones = append(r.Zones, zf.Zones...)
	if zf.CorridorWidthNM > 0 {
		r.CorridorWidthNM = zf.CorridorWidthNM
	}
	if zf.MinimumAltitudeFt > 0 {
		r.MinimumAltitudeFt = zf.MinimumAltitudeFt
	}
	return nil
}
