// Package domain holds the closed-form solar geometry formulas.
//
// Every function is pure and elementwise. Scalar kernels work on float64 and
// the *Field variants lift the same kernels over gonum matrices.
package domain

import "math"

// pi is held in a variable so the conversion factors below are computed with
// float64 division rather than exact constant arithmetic.
var pi = math.Pi

var (
	radPerDeg = pi / 180.0
	degPerRad = 180.0 / pi
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * radPerDeg
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * degPerRad
}

// HourAngle converts a solar hour (0-24) to an hour angle in degrees.
// Hour 12 is solar noon and maps to 0°; the sun moves 15° per hour.
func HourAngle(hour float64) float64 {
	return float64(hour*15.0) - 180.0
}
