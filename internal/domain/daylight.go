package domain

// DaylightHours converts a sunrise hour angle in degrees to day length in
// hours (15° per hour, twice for morning and afternoon):
//
//	N = (2/15) ω_s
//
// With the polar correction in SunriseHourAngle the result saturates at 0 and 24.
func DaylightHours(shaDeg float64) float64 {
	return (2.0 / 15.0) * shaDeg
}

// SunriseHour returns the solar clock hour of sunrise, taking 12 as solar noon.
//
//	sunrise = 12 − ω_s/15
func SunriseHour(shaDeg float64) float64 {
	return 12.0 - (shaDeg / 15.0)
}

// SunsetHour returns the solar clock hour of sunset.
func SunsetHour(shaDeg float64) float64 {
	return 12.0 + (shaDeg / 15.0)
}
