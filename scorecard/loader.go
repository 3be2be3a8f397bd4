package scorecard

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a scorecard from a YAML file and validates it.
func Load(path string) (*Scorecard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scorecard: %w", err)
	}
	var s Scorecard
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scorecard %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints and per-gate-type rule sanity.
func (s *Scorecard) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("scorecard %q: %w", s.Name, err)
	}
	for t, gs := range s.GateScores {
		if err := v.Struct(gs); err != nil {
			return fmt.Errorf("scorecard %q gate type %q: %w", s.Name, t, err)
		}
	}
	return nil
}
