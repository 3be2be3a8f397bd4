package track

import (
	"math"
	"time"

	"github.com/airsports-live/trackscore/geo"
)

// Position is a single GPS fix. Optional fields use NaN when the tracker did
// not report them. Positions are never mutated after buffer insertion.
type Position struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	// Speed is ground speed in knots.
	Speed float64
	// Course is degrees true.
	Course float64
	// Altitude is metres above MSL.
	Altitude float64
	// Battery is the tracker battery percentage.
	Battery  float64
	DeviceID string
	// Interpolated marks synthetic gap-fill positions.
	Interpolated bool
}

// NewPosition returns a Position with all optional fields unset.
func NewPosition(t time.Time, lat, lon float64) Position {
	return Position{
		Time:      t,
		Latitude:  lat,
		Longitude: lon,
		Speed:     math.NaN(),
		Course:    math.NaN(),
		Altitude:  math.NaN(),
		Battery:   math.NaN(),
	}
}

// Point returns the fix as a geographic point.
func (p Position) Point() geo.Point {
	return geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// HasSpeed reports whether the tracker reported ground speed.
func (p Position) HasSpeed() bool { return !math.IsNaN(p.Speed) }

// HasCourse reports whether the tracker reported course.
func (p Position) HasCourse() bool { return !math.IsNaN(p.Course) }

// HasAltitude reports whether the tracker reported altitude.
func (p Position) HasAltitude() bool { return !math.IsNaN(p.Altitude) }
