package domain

// Geometry is the full set of sun angles for one location and solar time.
type Geometry struct {
	DOY              float64
	Hour             float64
	Declination      float64 // Degrees.
	SunriseHourAngle float64 // Degrees.
	DaylightHours    float64
	SunriseHour      float64
	SunsetHour       float64
	Zenith           float64 // Degrees.
	Elevation        float64 // Degrees.
	Azimuth          float64 // Degrees, NaN at the zenith.
	Polar            PolarState
}

// ComputeGeometry evaluates every quantity for a latitude, day of year and
// solar hour.
func ComputeGeometry(latDeg, doy, hour float64) Geometry {
	dec := DeclinationForDOY(doy)
	sha := SunriseHourAngle(doy, latDeg)
	sza := ZenithAngle(latDeg, dec, hour)

	return Geometry{
		DOY:              doy,
		Hour:             hour,
		Declination:      dec,
		SunriseHourAngle: sha,
		DaylightHours:    DaylightHours(sha),
		SunriseHour:      SunriseHour(sha),
		SunsetHour:       SunsetHour(sha),
		Zenith:           sza,
		Elevation:        ElevationAngle(sza),
		Azimuth:          Azimuth(dec, sza, hour),
		Polar:            ClassifyPolar(doy, latDeg),
	}
}
