package domain

import (
	"math"
	"time"
)

// ZenithAngle returns the solar zenith angle in degrees from latitude and
// declination in degrees and the solar hour (0-24):
//
//	cos θz = sin φ sin δ + cos φ cos δ cos ω,  ω = 15·hour − 180
//
// The cosine is clamped to [−1, 1] so rounding at the poles or at the
// subsolar point cannot produce NaN.
//
// Reference: Muneer & Fairooz (2005). Validated against MOD07 SZA to ~0.4°.
func ZenithAngle(latDeg, decDeg, hour float64) float64 {
	lat := Deg2Rad(latDeg)
	dec := Deg2Rad(decDeg)
	ha := Deg2Rad(HourAngle(hour))

	cosZ := float64(math.Sin(lat)*math.Sin(dec)) + float64(math.Cos(lat)*math.Cos(dec)*math.Cos(ha))
	cosZ = math.Max(-1, math.Min(1, cosZ))

	return Rad2Deg(math.Acos(cosZ))
}

// ZenithAngleFromDOY computes the declination for the day of year and then
// the zenith angle. The hour is local solar time, so longitude is already
// accounted for by whoever produced it.
func ZenithAngleFromDOY(latDeg, doy, hour float64) float64 {
	return ZenithAngle(latDeg, DeclinationForDOY(doy), hour)
}

// ZenithAngleAt computes the zenith angle for a UTC instant at a location.
// The clock converts the instant into the local solar day and hour; a nil
// clock uses MeanSolarClock.
func ZenithAngleAt(t time.Time, latDeg, lonDeg float64, clock SolarClock) float64 {
	if clock == nil {
		clock = MeanSolarClock{}
	}
	doy := clock.DayOfYear(t, lonDeg)
	hour := clock.HourOfDay(t, lonDeg)
	return ZenithAngleFromDOY(latDeg, doy, hour)
}

// ElevationAngle converts a zenith angle to a solar elevation (altitude) in degrees.
func ElevationAngle(szaDeg float64) float64 {
	return 90.0 - szaDeg
}
