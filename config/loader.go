package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/processor"
	"github.com/airsports-live/trackscore/track"
)

// LoadAppConfig loads and validates the application configuration.
func LoadAppConfig(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	for _, c := range cfg.Contestants {
		if err := v.Struct(c); err != nil {
			return cfg, err
		}
	}
	if cfg.Interpolation.GapThresholdSeconds == 0 {
		cfg.Interpolation.GapThresholdSeconds = 3
	}
	if cfg.Interpolation.StepSeconds == 0 {
		cfg.Interpolation.StepSeconds = 1
	}
	if cfg.Feed.PollIntervalMS == 0 {
		cfg.Feed.PollIntervalMS = 1000
	}
	return cfg, nil
}

// TrackInterpolation converts the configured policy into the track buffer form.
func (c AppConfig) TrackInterpolation() track.Interpolation {
	return track.Interpolation{
		Enabled:      c.Interpolation.Enabled,
		GapThreshold: time.Duration(c.Interpolation.GapThresholdSeconds) * time.Second,
		Step:         time.Duration(c.Interpolation.StepSeconds) * time.Second,
	}
}

// Contestant converts one contestant entry, parsing its time fields.
func (cc ContestantConfig) Contestant() (processor.Contestant, error) {
	c := processor.Contestant{
		ID:              cc.ID,
		TrackerDeviceID: cc.TrackerDeviceID,
	}
	var err error
	if cc.TakeoffTime != "" {
		if c.TakeoffTime, err = internal.ParsePositionTime(cc.TakeoffTime); err != nil {
			return c, fmt.Errorf("contestant %s takeoff_time: %w", cc.ID, err)
		}
	}
	if cc.TrackerStart != "" {
		if c.TrackerStartTime, err = internal.ParsePositionTime(cc.TrackerStart); err != nil {
			return c, fmt.Errorf("contestant %s tracker_start_time: %w", cc.ID, err)
		}
	}
	if cc.FinishedByTime != "" {
		if c.FinishedByTime, err = internal.ParsePositionTime(cc.FinishedByTime); err != nil {
			return c, fmt.Errorf("contestant %s finished_by_time: %w", cc.ID, err)
		}
	}
	if len(cc.GateTimes) > 0 {
		c.GateTimes = make(map[string]time.Time, len(cc.GateTimes))
		for gate, ts := range cc.GateTimes {
			t, err := internal.ParsePositionTime(ts)
			if err != nil {
				return c, fmt.Errorf("contestant %s gate %s: %w", cc.ID, gate, err)
			}
			c.GateTimes[gate] = t
		}
	}
	return c, nil
}
