package domain

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"go.ngs.io/sun-angles/internal/field"
)

// DayAngleField applies DayAngle to every element.
func DayAngleField(doy mat.Matrix) *mat.Dense {
	return field.Map1(DayAngle, doy)
}

// DeclinationField applies Declination to every element.
func DeclinationField(dayAngleRad mat.Matrix) *mat.Dense {
	return field.Map1(Declination, dayAngleRad)
}

// SunriseHourAngleField applies SunriseHourAngle elementwise.
func SunriseHourAngleField(doy, latDeg mat.Matrix) (*mat.Dense, error) {
	out, err := field.Map2(SunriseHourAngle, doy, latDeg)
	if err != nil {
		return nil, fmt.Errorf("sunrise hour angle: %w", err)
	}
	return out, nil
}

// DaylightHoursField applies DaylightHours to every element.
func DaylightHoursField(shaDeg mat.Matrix) *mat.Dense {
	return field.Map1(DaylightHours, shaDeg)
}

// SunriseHourField applies SunriseHour to every element.
func SunriseHourField(shaDeg mat.Matrix) *mat.Dense {
	return field.Map1(SunriseHour, shaDeg)
}

// ZenithAngleField applies ZenithAngle elementwise.
func ZenithAngleField(latDeg, decDeg, hour mat.Matrix) (*mat.Dense, error) {
	out, err := field.Map3(ZenithAngle, latDeg, decDeg, hour)
	if err != nil {
		return nil, fmt.Errorf("zenith angle: %w", err)
	}
	return out, nil
}

// ZenithAngleFromDOYField applies ZenithAngleFromDOY elementwise.
func ZenithAngleFromDOYField(latDeg, doy, hour mat.Matrix) (*mat.Dense, error) {
	out, err := field.Map3(ZenithAngleFromDOY, latDeg, doy, hour)
	if err != nil {
		return nil, fmt.Errorf("zenith angle: %w", err)
	}
	return out, nil
}

// AzimuthField applies Azimuth elementwise. Singular elements are NaN.
func AzimuthField(decDeg, szaDeg, hour mat.Matrix) (*mat.Dense, error) {
	out, err := field.Map3(Azimuth, decDeg, szaDeg, hour)
	if err != nil {
		return nil, fmt.Errorf("azimuth: %w", err)
	}
	return out, nil
}

// SolarTimeFields returns the solar day of year and hour for instant t at
// every longitude of lonDeg.
func SolarTimeFields(t time.Time, lonDeg mat.Matrix, clock SolarClock) (doy, hour *mat.Dense) {
	if clock == nil {
		clock = MeanSolarClock{}
	}
	doy = field.Map1(func(lon float64) float64 { return clock.DayOfYear(t, lon) }, lonDeg)
	hour = field.Map1(func(lon float64) float64 { return clock.HourOfDay(t, lon) }, lonDeg)
	return doy, hour
}
