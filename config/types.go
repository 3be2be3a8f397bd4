package config

type TaskConfig struct {
	Name          string `yaml:"name" validate:"required"`
	RoutePath     string `yaml:"route" validate:"required"`
	ZonesPath     string `yaml:"zones" validate:"omitempty"`
	ScorecardName string `yaml:"scorecard" validate:"omitempty"`
	ScorecardPath string `yaml:"scorecardFile" validate:"omitempty"`
}

type InterpolationConfig struct {
	// Enabled turns on synthetic gap filling for large position gaps.
	Enabled             bool `yaml:"enabled"`
	GapThresholdSeconds int  `yaml:"gapThresholdSeconds" validate:"gte=0"`
	StepSeconds         int  `yaml:"stepSeconds" validate:"gte=0"`
}

type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	PollIntervalMS      int    `yaml:"pollIntervalMS" validate:"gte=0"`
}

type ContestantConfig struct {
	ID              string `yaml:"id" validate:"required"`
	TrackerDeviceID string `yaml:"tracker_device_id" validate:"required"`
	TakeoffTime     string `yaml:"takeoff_time" validate:"omitempty"`
	TrackerStart    string `yaml:"tracker_start_time" validate:"omitempty"`
	FinishedByTime  string `yaml:"finished_by_time" validate:"omitempty"`
	// GateTimes maps gate name to the planned crossing time (RFC 3339).
	GateTimes map[string]string `yaml:"gate_times"`
}

type AppConfig struct {
	Task          TaskConfig          `yaml:"task" validate:"required"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Feed          FeedConfig          `yaml:"feed"`
	Contestants   []ContestantConfig  `yaml:"contestants"`
}
