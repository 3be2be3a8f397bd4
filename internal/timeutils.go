package internal

import (
	"time"
)

func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func Iso8601FromTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParsePositionTime accepts RFC3339 with or without fractional seconds, which
// is what tracker gateways actually send.
func ParsePositionTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
