package usecase

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"go.ngs.io/sun-angles/internal/adapter/store"
	"go.ngs.io/sun-angles/internal/domain"
	"go.ngs.io/sun-angles/internal/field"
)

// Output layer names.
const (
	LayerDeclination      = "declination"
	LayerSunriseHourAngle = "sunrise_hour_angle"
	LayerDaylightHours    = "daylight_hours"
	LayerSunriseHour      = "sunrise_hour"
	LayerSolarZenith      = "solar_zenith"
	LayerSolarAzimuth     = "solar_azimuth"
)

// GridRequest asks for sun geometry on every cell of a raster. The solar
// time comes either from Time (converted per longitude with the solar clock)
// or from DOY/Hour, each given as a scalar or as a variable of Source.
type GridRequest struct {
	Source store.GridSource
	Sink   store.GridSink

	Time *time.Time

	DOY     *float64
	DOYVar  string
	Hour    *float64
	HourVar string
}

// GridResult summarizes a written grid.
type GridResult struct {
	Rows        int
	Cols        int
	Layers      []string
	ZenithMin   float64
	ZenithMax   float64
	ZenithMean  float64
	NaNAzimuths int
}

// Validate checks if the request is valid.
func (r *GridRequest) Validate() error {
	if r.Source == nil {
		return fmt.Errorf("grid source is required")
	}
	if r.Sink == nil {
		return fmt.Errorf("grid sink is required")
	}

	hasDOY := r.DOY != nil || r.DOYVar != ""
	hasHour := r.Hour != nil || r.HourVar != ""

	if r.Time != nil {
		if hasDOY || hasHour {
			return fmt.Errorf("time and doy/hour are mutually exclusive")
		}
		return nil
	}
	if !hasDOY || !hasHour {
		return fmt.Errorf("either time or both doy and hour must be provided")
	}
	if r.DOY != nil && r.DOYVar != "" {
		return fmt.Errorf("doy value and doy variable are mutually exclusive")
	}
	if r.Hour != nil && r.HourVar != "" {
		return fmt.Errorf("hour value and hour variable are mutually exclusive")
	}
	if r.DOY != nil {
		if err := validateDOY(*r.DOY); err != nil {
			return err
		}
	}
	if r.Hour != nil {
		return validateHour(*r.Hour)
	}
	return nil
}

// Grid computes every output layer on the source grid and writes them to the sink.
func (uc *SunUseCase) Grid(req GridRequest) (*GridResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	grid, err := req.Source.Grid()
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	lat, lon := grid.Mesh()
	rows, cols := grid.Dims()

	doy, hour, err := uc.solarTime(req, lon)
	if err != nil {
		return nil, err
	}

	dec := domain.DeclinationField(domain.DayAngleField(doy))
	sha, err := domain.SunriseHourAngleField(doy, lat)
	if err != nil {
		return nil, err
	}
	sza, err := domain.ZenithAngleField(lat, dec, hour)
	if err != nil {
		return nil, err
	}
	az, err := domain.AzimuthField(dec, sza, hour)
	if err != nil {
		return nil, err
	}
	decFull, err := expand(dec, rows, cols)
	if err != nil {
		return nil, err
	}

	layers := []store.Layer{
		{Name: LayerDeclination, Units: "degree", LongName: "solar declination", Values: decFull},
		{Name: LayerSunriseHourAngle, Units: "degree", LongName: "sunrise hour angle", Values: sha},
		{Name: LayerDaylightHours, Units: "hour", LongName: "daylight duration", Values: domain.DaylightHoursField(sha)},
		{Name: LayerSunriseHour, Units: "hour", LongName: "sunrise solar hour", Values: domain.SunriseHourField(sha)},
		{Name: LayerSolarZenith, Units: "degree", LongName: "solar zenith angle", Values: sza},
		{Name: LayerSolarAzimuth, Units: "degree", LongName: "solar azimuth angle", Values: az},
	}
	if err := req.Sink.WriteLayers(grid, layers); err != nil {
		return nil, fmt.Errorf("failed to write layers: %w", err)
	}

	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name
	}
	result := &GridResult{Rows: rows, Cols: cols, Layers: names}
	result.ZenithMin, result.ZenithMax, result.ZenithMean = finiteStats(sza)
	result.NaNAzimuths = countNaN(az)

	return result, nil
}

// solarTime resolves the day-of-year and hour fields for a grid request.
func (uc *SunUseCase) solarTime(req GridRequest, lon *mat.Dense) (doy, hour mat.Matrix, err error) {
	if req.Time != nil {
		d, h := domain.SolarTimeFields(req.Time.UTC(), lon, uc.clock)
		return d, h, nil
	}

	doy, err = scalarOrField(req.Source, req.DOY, req.DOYVar)
	if err != nil {
		return nil, nil, fmt.Errorf("doy: %w", err)
	}
	hour, err = scalarOrField(req.Source, req.Hour, req.HourVar)
	if err != nil {
		return nil, nil, fmt.Errorf("hour: %w", err)
	}
	return doy, hour, nil
}

func scalarOrField(src store.GridSource, v *float64, name string) (mat.Matrix, error) {
	if v != nil {
		return field.Scalar(*v), nil
	}
	return src.Field(name)
}

// expand broadcasts m to a rows×cols field.
func expand(m mat.Matrix, rows, cols int) (*mat.Dense, error) {
	return field.Map2(func(v, _ float64) float64 { return v }, m, field.Constant(rows, cols, 0))
}

// finiteStats returns min, max and mean over the finite elements of m.
// All three are NaN when m has none.
func finiteStats(m *mat.Dense) (minV, maxV, mean float64) {
	rows, cols := m.Dims()
	values := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for _, v := range m.RawRowView(i) {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return floats.Min(values), floats.Max(values), stat.Mean(values, nil)
}

func countNaN(m *mat.Dense) int {
	rows, _ := m.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for _, v := range m.RawRowView(i) {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}
