// Package usecase orchestrates sun geometry requests over points, time
// series, calendars and rasters.
package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.ngs.io/sun-angles/internal/adapter/raster"
	"go.ngs.io/sun-angles/internal/adapter/solartime"
	"go.ngs.io/sun-angles/internal/domain"
)

const (
	// maxSamples bounds the number of instants in one series or comparison.
	maxSamples = 10000
	// outputPrecision is the number of decimals kept in JSON responses.
	outputPrecision = 6
)

// SunUseCase evaluates sun geometry with a fixed solar clock.
type SunUseCase struct {
	clock     domain.SolarClock
	clockName string
	sites     *SiteCatalog
}

// NewSunUseCase creates a use case for the named solar clock ("mean" or
// "apparent"). sites may be nil, which disables site lookups.
func NewSunUseCase(clockName string, sites *SiteCatalog) (*SunUseCase, error) {
	clock, err := solartime.ClockByName(clockName)
	if err != nil {
		return nil, err
	}
	if clockName == "" {
		clockName = solartime.ClockMean
	}
	return &SunUseCase{clock: clock, clockName: strings.ToLower(strings.TrimSpace(clockName)), sites: sites}, nil
}

// ClockName returns the configured solar clock name.
func (uc *SunUseCase) ClockName() string {
	return uc.clockName
}

// geometryAt converts a UTC instant to solar time at lon and evaluates the geometry.
func (uc *SunUseCase) geometryAt(t time.Time, latDeg, lonDeg float64) domain.Geometry {
	lon := raster.NormalizeLon180(lonDeg)
	doy := uc.clock.DayOfYear(t, lon)
	hour := uc.clock.HourOfDay(t, lon)
	return domain.ComputeGeometry(latDeg, doy, hour)
}

// GeometryResponse is the JSON form of domain.Geometry. Undefined values are null.
type GeometryResponse struct {
	DOY                 *float64 `json:"doy"`
	SolarHour           *float64 `json:"solar_hour"`
	DeclinationDeg      *float64 `json:"declination_deg"`
	SunriseHourAngleDeg *float64 `json:"sunrise_hour_angle_deg"`
	DaylightHours       *float64 `json:"daylight_hours"`
	SunriseHour         *float64 `json:"sunrise_hour"`
	SunsetHour          *float64 `json:"sunset_hour"`
	ZenithDeg           *float64 `json:"solar_zenith_deg"`
	ElevationDeg        *float64 `json:"solar_elevation_deg"`
	AzimuthDeg          *float64 `json:"solar_azimuth_deg"`
	Polar               string   `json:"polar"`
}

func newGeometryResponse(g domain.Geometry) GeometryResponse {
	return GeometryResponse{
		DOY:                 jsonFloat(g.DOY),
		SolarHour:           jsonFloat(g.Hour),
		DeclinationDeg:      jsonFloat(g.Declination),
		SunriseHourAngleDeg: jsonFloat(g.SunriseHourAngle),
		DaylightHours:       jsonFloat(g.DaylightHours),
		SunriseHour:         jsonFloat(g.SunriseHour),
		SunsetHour:          jsonFloat(g.SunsetHour),
		ZenithDeg:           jsonFloat(g.Zenith),
		ElevationDeg:        jsonFloat(g.Elevation),
		AzimuthDeg:          jsonFloat(g.Azimuth),
		Polar:               g.Polar.String(),
	}
}

// jsonFloat rounds v for output; NaN and infinities become nil (JSON null).
func jsonFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := roundToDecimal(v, outputPrecision)
	return &r
}

func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}

func validateLatLon(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// validateSolarTime checks an explicit solar day and hour. The negated
// range tests also reject NaN.
func validateSolarTime(doy, hour float64) error {
	if err := validateDOY(doy); err != nil {
		return err
	}
	return validateHour(hour)
}

func validateDOY(doy float64) error {
	if !(doy >= 1 && doy <= 366) {
		return fmt.Errorf("doy must be between 1 and 366")
	}
	return nil
}

func validateHour(hour float64) error {
	if !(hour >= 0 && hour <= 24) {
		return fmt.Errorf("hour must be between 0 and 24")
	}
	return nil
}

// TimeWindow is a sampled UTC time range shared by series and comparisons.
type TimeWindow struct {
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

// Validate checks ordering, interval bounds and sample count.
func (w TimeWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("start time must be before end time")
	}
	if w.Interval < time.Minute {
		return fmt.Errorf("interval must be at least 1 minute")
	}
	if w.Interval > 24*time.Hour {
		return fmt.Errorf("interval must be at most 24 hours")
	}

	duration := w.End.Sub(w.Start)
	if duration > 366*24*time.Hour {
		return fmt.Errorf("time range must be at most 366 days")
	}

	numPoints := int(duration/w.Interval) + 1
	if numPoints > maxSamples {
		return fmt.Errorf("too many samples (%d) - reduce time range or increase interval", numPoints)
	}
	return nil
}

// Times returns the sample instants from Start to End inclusive.
func (w TimeWindow) Times() []time.Time {
	times := make([]time.Time, 0, int(w.End.Sub(w.Start)/w.Interval)+1)
	for t := w.Start; !t.After(w.End); t = t.Add(w.Interval) {
		times = append(times, t.UTC())
	}
	return times
}
