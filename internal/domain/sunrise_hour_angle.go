package domain

import "math"

// PolarState describes whether the sun rises and sets on a given day.
type PolarState int

const (
	// PolarNone means the sun rises and sets normally.
	PolarNone PolarState = iota
	// PolarNight means the sun stays below the horizon all day.
	PolarNight
	// PolarDay means the sun stays above the horizon all day.
	PolarDay
)

// String returns the lower-case name used in API responses.
func (p PolarState) String() string {
	switch p {
	case PolarNight:
		return "polar_night"
	case PolarDay:
		return "polar_day"
	default:
		return "none"
	}
}

// sunriseCosine returns cos(ω_s) = −tan φ · tan δ for a day of year and a
// latitude in degrees. The value is not limited to [−1, 1].
func sunriseCosine(doy, latDeg float64) float64 {
	dec := DeclinationForDOY(doy)
	return float64(-math.Tan(Deg2Rad(latDeg))) * math.Tan(Deg2Rad(dec))
}

// SunriseHourAngle returns the sunrise hour angle ω_s in degrees for a day of
// year and a latitude in degrees:
//
//	cos ω_s = −tan φ · tan δ
//
// When |cos ω_s| > 1 the arccosine has no real value. Those positions are
// resolved from the cosine itself: cos ω_s ≥ 1 gives 0 (polar night) and
// cos ω_s ≤ −1 gives 180 (polar day). A NaN latitude or day propagates as NaN.
func SunriseHourAngle(doy, latDeg float64) float64 {
	cosSHA := sunriseCosine(doy, latDeg)

	// math.Acos returns NaN outside [−1, 1]; overwritten below.
	sha := Rad2Deg(math.Acos(cosSHA))

	if cosSHA >= 1 {
		sha = 0
	}
	if cosSHA <= -1 {
		sha = 180
	}

	return sha
}

// ClassifyPolar reports whether the sun never rises or never sets at the given
// latitude and day of year, using the same criterion as SunriseHourAngle.
func ClassifyPolar(doy, latDeg float64) PolarState {
	cosSHA := sunriseCosine(doy, latDeg)
	switch {
	case cosSHA >= 1:
		return PolarNight
	case cosSHA <= -1:
		return PolarDay
	default:
		return PolarNone
	}
}
