// Package reference wraps an independent solar position implementation used
// to check the formulas in domain.
package reference

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Position is a sun position in degrees.
type Position struct {
	Zenith    float64
	Elevation float64
	// Azimuth as reported by suncalc: from south, positive towards west.
	Azimuth float64
}

// SunPosition returns the suncalc position of the sun at t for a location.
func SunPosition(t time.Time, latDeg, lonDeg float64) Position {
	pos := suncalc.GetPosition(t, latDeg, lonDeg)
	elevation := pos.Altitude * 180 / math.Pi
	return Position{
		Zenith:    90 - elevation,
		Elevation: elevation,
		Azimuth:   pos.Azimuth * 180 / math.Pi,
	}
}

// SunTimes returns the sunrise and sunset instants of the UTC day containing t.
// Both are zero when the sun does not cross the horizon that day.
func SunTimes(t time.Time, latDeg, lonDeg float64) (sunrise, sunset time.Time) {
	times := suncalc.GetTimes(t, latDeg, lonDeg)
	return times["sunrise"].Value, times["sunset"].Value
}
