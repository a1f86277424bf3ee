package usecase

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.ngs.io/sun-angles/internal/domain"
	"go.ngs.io/sun-angles/internal/field"
)

// DaylightRequest asks for the daylight calendar of a latitude.
type DaylightRequest struct {
	Lat      float64
	StartDOY int
	EndDOY   int
}

// DaylightDay is the daylight summary of one day of year.
type DaylightDay struct {
	DOY                 int      `json:"doy"`
	DeclinationDeg      *float64 `json:"declination_deg"`
	SunriseHourAngleDeg *float64 `json:"sunrise_hour_angle_deg"`
	DaylightHours       *float64 `json:"daylight_hours"`
	SunriseHour         *float64 `json:"sunrise_hour"`
	SunsetHour          *float64 `json:"sunset_hour"`
	Polar               string   `json:"polar"`
}

// DaylightResponse contains one entry per requested day.
type DaylightResponse struct {
	Lat              float64       `json:"lat"`
	Days             []DaylightDay `json:"days"`
	MinDaylightHours float64       `json:"min_daylight_hours"`
	MaxDaylightHours float64       `json:"max_daylight_hours"`
}

// Validate checks if the request is valid.
func (r *DaylightRequest) Validate() error {
	if err := validateLatLon(r.Lat, 0); err != nil {
		return err
	}
	if r.StartDOY < 1 || r.StartDOY > 366 || r.EndDOY < 1 || r.EndDOY > 366 {
		return fmt.Errorf("doy must be between 1 and 366")
	}
	if r.StartDOY > r.EndDOY {
		return fmt.Errorf("start_doy must not be after end_doy")
	}
	return nil
}

// Daylight evaluates the calendar as one row of days.
func (uc *SunUseCase) Daylight(req DaylightRequest) (*DaylightResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	n := req.EndDOY - req.StartDOY + 1
	doy := mat.NewDense(1, n, nil)
	for j := 0; j < n; j++ {
		doy.Set(0, j, float64(req.StartDOY+j))
	}

	dec := domain.DeclinationField(domain.DayAngleField(doy))
	sha, err := domain.SunriseHourAngleField(doy, field.Scalar(req.Lat))
	if err != nil {
		return nil, err
	}
	daylight := domain.DaylightHoursField(sha)
	sunrise := domain.SunriseHourField(sha)

	days := make([]DaylightDay, n)
	for j := 0; j < n; j++ {
		d := doy.At(0, j)
		days[j] = DaylightDay{
			DOY:                 req.StartDOY + j,
			DeclinationDeg:      jsonFloat(dec.At(0, j)),
			SunriseHourAngleDeg: jsonFloat(sha.At(0, j)),
			DaylightHours:       jsonFloat(daylight.At(0, j)),
			SunriseHour:         jsonFloat(sunrise.At(0, j)),
			SunsetHour:          jsonFloat(domain.SunsetHour(sha.At(0, j))),
			Polar:               domain.ClassifyPolar(d, req.Lat).String(),
		}
	}

	hours := daylight.RawRowView(0)
	return &DaylightResponse{
		Lat:              req.Lat,
		Days:             days,
		MinDaylightHours: roundToDecimal(floats.Min(hours), outputPrecision),
		MaxDaylightHours: roundToDecimal(floats.Max(hours), outputPrecision),
	}, nil
}
