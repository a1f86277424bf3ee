package domain

import "time"

// SolarClock converts a UTC instant at a longitude into local solar time.
// DayOfYear and HourOfDay must use the same convention, otherwise zenith and
// azimuth shift by the longitude-dependent offset between them.
type SolarClock interface {
	// DayOfYear returns the day of year (1 = January 1st) of the local solar day.
	DayOfYear(t time.Time, lonDeg float64) float64

	// HourOfDay returns the local solar hour in [0, 24).
	HourOfDay(t time.Time, lonDeg float64) float64
}

// MeanSolarClock is local mean solar time: UTC shifted by 4 minutes per
// degree of longitude, with no equation-of-time correction.
type MeanSolarClock struct{}

// DayOfYear implements SolarClock.
func (MeanSolarClock) DayOfYear(t time.Time, lonDeg float64) float64 {
	doy, _ := SolarDayAndHour(LocalMeanSolarTime(t, lonDeg))
	return doy
}

// HourOfDay implements SolarClock.
func (MeanSolarClock) HourOfDay(t time.Time, lonDeg float64) float64 {
	_, hour := SolarDayAndHour(LocalMeanSolarTime(t, lonDeg))
	return hour
}

// LocalMeanSolarTime shifts a UTC instant by lon/15 hours. The returned time
// is labelled UTC but its wall clock reads local mean solar time.
func LocalMeanSolarTime(t time.Time, lonDeg float64) time.Time {
	offset := time.Duration(lonDeg / 15.0 * float64(time.Hour))
	return t.UTC().Add(offset).Truncate(time.Second)
}

// SolarDayAndHour reads the day of year and the fractional hour from a wall
// clock already expressed in solar time.
func SolarDayAndHour(solar time.Time) (doy, hour float64) {
	doy = float64(solar.YearDay())
	hour = float64(solar.Hour()) + float64(solar.Minute())/60.0 + float64(solar.Second())/3600.0
	return doy, hour
}
