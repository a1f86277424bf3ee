// Package solartime provides solar clocks beyond local mean solar time.
package solartime

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"go.ngs.io/sun-angles/internal/domain"
)

// ApparentClock is local apparent (true) solar time: local mean solar time
// corrected by the equation of time, so solar noon falls on the meridian
// transit of the sun.
type ApparentClock struct{}

// DayOfYear implements domain.SolarClock.
func (c ApparentClock) DayOfYear(t time.Time, lonDeg float64) float64 {
	doy, _ := domain.SolarDayAndHour(c.SolarTime(t, lonDeg))
	return doy
}

// HourOfDay implements domain.SolarClock.
func (c ApparentClock) HourOfDay(t time.Time, lonDeg float64) float64 {
	_, hour := domain.SolarDayAndHour(c.SolarTime(t, lonDeg))
	return hour
}

// SolarTime returns the instant shifted to local apparent solar time.
func (ApparentClock) SolarTime(t time.Time, lonDeg float64) time.Time {
	eot := time.Duration(EquationOfTime(t) * float64(time.Minute))
	return domain.LocalMeanSolarTime(t, lonDeg).Add(eot).Truncate(time.Second)
}

// EquationOfTime returns apparent minus mean solar time in minutes for a UTC
// instant (NOAA series). Positive values mean the sundial is ahead of the clock.
func EquationOfTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60

	y := math.Tan(domain.Deg2Rad(eps0) / 2)
	y *= y

	L0r := domain.Deg2Rad(L0)
	Mr := domain.Deg2Rad(M)

	eot := y*math.Sin(2*L0r) -
		2*e*math.Sin(Mr) +
		4*e*y*math.Sin(Mr)*math.Cos(2*L0r) -
		0.5*y*y*math.Sin(4*L0r) -
		1.25*e*e*math.Sin(2*Mr)

	return domain.Rad2Deg(eot) * 4
}

func fixAngle(a float64) float64 { return a - 360.0*math.Floor(a/360.0) }
