package domain

import "math"

// Azimuth returns the solar azimuth in degrees from the declination and
// zenith angle in degrees and the solar hour:
//
//	A = asin(−sin ω · cos δ / sin θz)
//
// The result lies in [−90, 90]. The arcsine cannot tell morning from
// afternoon or north from south beyond the sign of the hour angle, so the
// value is only a true compass bearing near solar noon.
//
// With the sun exactly at the zenith (θz = 0) the division is singular and
// the result is NaN. NaN is also returned when the ratio leaves [−1, 1].
// Neither case panics.
func Azimuth(decDeg, szaDeg, hour float64) float64 {
	dec := Deg2Rad(decDeg)
	sza := Deg2Rad(szaDeg)
	ha := Deg2Rad(HourAngle(hour))

	ratio := -1.0 * math.Sin(ha) * math.Cos(dec) / math.Sin(sza)

	return Rad2Deg(math.Asin(ratio))
}
