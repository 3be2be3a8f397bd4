package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIso8601FromTime(t *testing.T) {
	in := time.Date(2020, 1, 1, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2020-01-01T09:30:00Z", Iso8601FromTime(in))
}

func TestIso8601Now(t *testing.T) {
	parsed, err := time.Parse(time.RFC3339, Iso8601Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, 2*time.Second)
}

func TestParsePositionTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "whole seconds",
			input:    "2020-01-01T00:00:00Z",
			expected: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "fractional seconds",
			input:    "2020-01-01T00:00:02.631887Z",
			expected: time.Date(2020, 1, 1, 0, 0, 2, 631887000, time.UTC),
		},
		{
			name:     "numeric offset",
			input:    "2020-01-01T01:00:00+01:00",
			expected: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday at noon",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositionTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %v", got)
		})
	}
}
