package usecase

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// SeriesRequest asks for sun positions sampled over a time window.
type SeriesRequest struct {
	Lat float64
	Lon float64
	TimeWindow
}

// SeriesPoint is the sun position at one instant.
type SeriesPoint struct {
	Time         string   `json:"time"`
	ZenithDeg    *float64 `json:"solar_zenith_deg"`
	ElevationDeg *float64 `json:"solar_elevation_deg"`
	AzimuthDeg   *float64 `json:"solar_azimuth_deg"`
}

// SeriesResponse contains the sampled positions and the sample closest to the zenith.
type SeriesResponse struct {
	Lat              float64       `json:"lat"`
	Lon              float64       `json:"lon"`
	Clock            string        `json:"clock"`
	Points           []SeriesPoint `json:"points"`
	MinZenith        SeriesPoint   `json:"min_zenith"`
	DaylightFraction float64       `json:"daylight_fraction"`
}

// Validate checks if the request is valid.
func (r *SeriesRequest) Validate() error {
	if err := validateLatLon(r.Lat, r.Lon); err != nil {
		return err
	}
	return r.TimeWindow.Validate()
}

// Series samples the sun position over the requested window.
func (uc *SunUseCase) Series(req SeriesRequest) (*SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	times := req.Times()
	points := make([]SeriesPoint, len(times))
	zeniths := make([]float64, len(times))
	daylight := 0

	for i, t := range times {
		g := uc.geometryAt(t, req.Lat, req.Lon)
		zeniths[i] = g.Zenith
		if g.Elevation > 0 {
			daylight++
		}
		points[i] = SeriesPoint{
			Time:         t.Format(time.RFC3339),
			ZenithDeg:    jsonFloat(g.Zenith),
			ElevationDeg: jsonFloat(g.Elevation),
			AzimuthDeg:   jsonFloat(g.Azimuth),
		}
	}

	return &SeriesResponse{
		Lat:              req.Lat,
		Lon:              req.Lon,
		Clock:            uc.clockName,
		Points:           points,
		MinZenith:        points[floats.MinIdx(zeniths)],
		DaylightFraction: roundToDecimal(float64(daylight)/float64(len(times)), outputPrecision),
	}, nil
}
