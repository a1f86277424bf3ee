package usecase

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"go.ngs.io/sun-angles/internal/adapter/reference"
)

// CompareRequest asks for the agreement between the formulas and the
// reference implementation over a time window.
type CompareRequest struct {
	Lat float64
	Lon float64
	TimeWindow
}

// ComparePoint holds both zenith angles at one instant.
type ComparePoint struct {
	Time               string   `json:"time"`
	ZenithDeg          *float64 `json:"solar_zenith_deg"`
	ReferenceZenithDeg *float64 `json:"reference_zenith_deg"`
	DiffDeg            *float64 `json:"diff_deg"`
}

// CompareResponse summarizes the zenith differences (formula minus reference).
type CompareResponse struct {
	Lat       float64        `json:"lat"`
	Lon       float64        `json:"lon"`
	Clock     string         `json:"clock"`
	Reference string         `json:"reference"`
	Samples   int            `json:"samples"`
	BiasDeg   *float64       `json:"bias_deg"`
	StdDevDeg *float64       `json:"stddev_deg"`
	RMSEDeg   *float64       `json:"rmse_deg"`
	MaxAbsDeg *float64       `json:"max_abs_deg"`
	MaxAbsAt  string         `json:"max_abs_at"`
	Points    []ComparePoint `json:"points,omitempty"`
}

// Validate checks if the request is valid.
func (r *CompareRequest) Validate() error {
	if err := validateLatLon(r.Lat, r.Lon); err != nil {
		return err
	}
	return r.TimeWindow.Validate()
}

// Compare evaluates the solar zenith angle with the configured clock and
// with suncalc at every sample and returns difference statistics.
func (uc *SunUseCase) Compare(req CompareRequest, includePoints bool) (*CompareResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	times := req.Times()
	diffs := make([]float64, len(times))
	absDiffs := make([]float64, len(times))
	squares := make([]float64, len(times))
	var points []ComparePoint
	if includePoints {
		points = make([]ComparePoint, len(times))
	}

	for i, t := range times {
		ours := uc.geometryAt(t, req.Lat, req.Lon).Zenith
		ref := reference.SunPosition(t, req.Lat, req.Lon).Zenith
		d := ours - ref
		diffs[i] = d
		absDiffs[i] = math.Abs(d)
		squares[i] = d * d
		if includePoints {
			points[i] = ComparePoint{
				Time:               t.Format(time.RFC3339),
				ZenithDeg:          jsonFloat(ours),
				ReferenceZenithDeg: jsonFloat(ref),
				DiffDeg:            jsonFloat(d),
			}
		}
	}

	maxIdx := floats.MaxIdx(absDiffs)
	resp := &CompareResponse{
		Lat:       req.Lat,
		Lon:       req.Lon,
		Clock:     uc.clockName,
		Reference: "suncalc",
		Samples:   len(times),
		BiasDeg:   jsonFloat(stat.Mean(diffs, nil)),
		RMSEDeg:   jsonFloat(math.Sqrt(stat.Mean(squares, nil))),
		MaxAbsDeg: jsonFloat(absDiffs[maxIdx]),
		MaxAbsAt:  times[maxIdx].Format(time.RFC3339),
		Points:    points,
	}
	if len(diffs) > 1 {
		resp.StdDevDeg = jsonFloat(stat.StdDev(diffs, nil))
	}
	return resp, nil
}
