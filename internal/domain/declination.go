package domain

import "math"

// Declination returns the solar declination in degrees for a day angle in
// radians, using the second-order Fourier fit of Spencer as given by Duffie &
// Beckman:
//
//	δ = 0.006918 − 0.399912 cos Γ + 0.070257 sin Γ − 0.006758 cos 2Γ
//	  + 0.000907 sin 2Γ − 0.002697 cos 3Γ + 0.00148 sin 3Γ
//
// The result stays within roughly ±23.45°.
func Declination(dayAngleRad float64) float64 {
	g := dayAngleRad

	// Each product is converted explicitly so the compiler cannot fuse it into
	// the following addition; the sum must round the same way on every platform.
	dec := 0.006918 -
		float64(0.399912*math.Cos(g)) +
		float64(0.070257*math.Sin(g)) -
		float64(0.006758*math.Cos(2*g)) +
		float64(0.000907*math.Sin(2*g)) -
		float64(0.002697*math.Cos(3*g)) +
		float64(0.00148*math.Sin(3*g))

	return dec * degPerRad
}

// DeclinationForDOY is Declination(DayAngle(doy)).
func DeclinationForDOY(doy float64) float64 {
	return Declination(DayAngle(doy))
}
