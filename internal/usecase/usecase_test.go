package usecase

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"go.ngs.io/sun-angles/internal/adapter/raster"
	"go.ngs.io/sun-angles/internal/adapter/store"
	"go.ngs.io/sun-angles/internal/domain"
)

func f64(v float64) *float64 { return &v }

func newUseCase(t *testing.T) *SunUseCase {
	t.Helper()
	uc, err := NewSunUseCase("", nil)
	require.NoError(t, err)
	return uc
}

func TestNewSunUseCase_Clock(t *testing.T) {
	uc := newUseCase(t)
	assert.Equal(t, "mean", uc.ClockName())

	uc, err := NewSunUseCase("Apparent", nil)
	require.NoError(t, err)
	assert.Equal(t, "apparent", uc.ClockName())

	_, err = NewSunUseCase("sidereal", nil)
	assert.Error(t, err)
}

func TestPositionRequest_Validate(t *testing.T) {
	now := time.Date(2024, 6, 21, 3, 0, 0, 0, time.UTC)
	site := "tokyo"
	tests := []struct {
		name    string
		req     PositionRequest
		wantErr bool
	}{
		{"time and lon", PositionRequest{Lat: f64(35), Lon: f64(139), Time: &now}, false},
		{"doy and hour", PositionRequest{Lat: f64(35), DOY: f64(172), Hour: f64(12)}, false},
		{"missing lat", PositionRequest{Lon: f64(139), Time: &now}, true},
		{"lat out of range", PositionRequest{Lat: f64(91), DOY: f64(1), Hour: f64(0)}, true},
		{"lon out of range", PositionRequest{Lat: f64(0), Lon: f64(181), Time: &now}, true},
		{"time without lon", PositionRequest{Lat: f64(35), Time: &now}, true},
		{"time and doy", PositionRequest{Lat: f64(35), Lon: f64(0), Time: &now, DOY: f64(1)}, true},
		{"doy without hour", PositionRequest{Lat: f64(35), DOY: f64(1)}, true},
		{"doy zero", PositionRequest{Lat: f64(35), DOY: f64(0), Hour: f64(1)}, true},
		{"hour too large", PositionRequest{Lat: f64(35), DOY: f64(10), Hour: f64(25)}, true},
		{"doy NaN", PositionRequest{Lat: f64(35), DOY: f64(math.NaN()), Hour: f64(12)}, true},
		{"hour NaN", PositionRequest{Lat: f64(35), DOY: f64(10), Hour: f64(math.NaN())}, true},
		{"doy infinite", PositionRequest{Lat: f64(35), DOY: f64(math.Inf(1)), Hour: f64(12)}, true},
		{"site and lat", PositionRequest{Site: &site, Lat: f64(35), DOY: f64(10), Hour: f64(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPosition_SolarTime(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Position(PositionRequest{Lat: f64(40), DOY: f64(172), Hour: f64(9)})
	require.NoError(t, err)

	want := domain.ComputeGeometry(40, 172, 9)
	g := resp.Geometry
	require.NotNil(t, g.ZenithDeg)
	assert.InDelta(t, want.Zenith, *g.ZenithDeg, 1e-6)
	assert.InDelta(t, want.Declination, *g.DeclinationDeg, 1e-6)
	assert.Equal(t, "none", g.Polar)
	assert.Empty(t, resp.Time)
}

func TestPosition_TimeMatchesClock(t *testing.T) {
	uc := newUseCase(t)
	instant := time.Date(2024, 6, 21, 3, 0, 0, 0, time.UTC)

	resp, err := uc.Position(PositionRequest{Lat: f64(35.68), Lon: f64(139.77), Time: &instant})
	require.NoError(t, err)

	want := domain.ZenithAngleAt(instant, 35.68, 139.77, domain.MeanSolarClock{})
	assert.InDelta(t, want, *resp.Geometry.ZenithDeg, 1e-6)
	assert.Equal(t, "2024-06-21T03:00:00Z", resp.Time)
	assert.Equal(t, "mean", resp.Clock)
}

func TestGeometryResponse_NaNIsNull(t *testing.T) {
	g := domain.ComputeGeometry(10, 100, 9)
	g.Azimuth = math.NaN()

	resp := newGeometryResponse(g)
	assert.Nil(t, resp.AzimuthDeg)
	require.NotNil(t, resp.ZenithDeg)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"solar_azimuth_deg":null`)
	assert.Nil(t, jsonFloat(math.Inf(1)))
	assert.Equal(t, -1.234568, *jsonFloat(-1.2345678))
}

func TestPosition_Sites(t *testing.T) {
	catalog, err := NewSiteCatalog([]Site{
		{Name: "Tokyo", Lat: 35.68, Lon: 139.77},
		{Name: "Longyearbyen", Lat: 78.22, Lon: 15.65},
	})
	require.NoError(t, err)
	uc, err := NewSunUseCase("mean", catalog)
	require.NoError(t, err)

	instant := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	name := "longyearbyen"
	resp, err := uc.Position(PositionRequest{Site: &name, Time: &instant})
	require.NoError(t, err)
	assert.Equal(t, "Longyearbyen", resp.Site)
	assert.Equal(t, 78.22, resp.Lat)
	assert.Equal(t, "polar_day", resp.Geometry.Polar)

	// Nearby coordinates report the site.
	resp, err = uc.Position(PositionRequest{Lat: f64(35.7), Lon: f64(139.7), Time: &instant})
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", resp.Site)

	unknown := "atlantis"
	_, err = uc.Position(PositionRequest{Site: &unknown, Time: &instant})
	assert.ErrorContains(t, err, "unknown site")

	_, err = newUseCase(t).Position(PositionRequest{Site: &name, Time: &instant})
	assert.ErrorContains(t, err, "not configured")
}

func TestSiteCatalog(t *testing.T) {
	_, err := NewSiteCatalog([]Site{{Name: "a", Lat: 1}, {Name: "A", Lat: 2}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewSiteCatalog([]Site{{Name: "bad", Lat: 100}})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "sites.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Quito","lat":-0.18,"lon":-78.47}]`), 0o600))
	c, err := LoadSiteCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	s, ok := c.Lookup(" QUITO ")
	require.True(t, ok)
	assert.Equal(t, -78.47, s.Lon)

	_, ok = c.Nearest(0, 0, nearestSiteRadiusKm)
	assert.False(t, ok)
}

func TestTimeWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := TimeWindow{Start: start, End: start.Add(time.Hour), Interval: 15 * time.Minute}
	require.NoError(t, w.Validate())
	assert.Len(t, w.Times(), 5)

	assert.Error(t, TimeWindow{Start: start, End: start, Interval: time.Hour}.Validate())
	assert.Error(t, TimeWindow{Start: start, End: start.Add(time.Hour), Interval: time.Second}.Validate())
	assert.Error(t, TimeWindow{Start: start, End: start.Add(300 * 24 * time.Hour), Interval: time.Minute}.Validate())
	assert.Error(t, TimeWindow{Start: start, End: start.Add(400 * 24 * time.Hour), Interval: 24 * time.Hour}.Validate())
}

func TestSeries_MinZenithNearSolarNoon(t *testing.T) {
	uc := newUseCase(t)
	start := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Series(SeriesRequest{
		Lat: 0, Lon: 90,
		TimeWindow: TimeWindow{Start: start, End: start.Add(24 * time.Hour), Interval: 10 * time.Minute},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Points, 145)

	// Mean solar noon at 90E is 06:00 UTC.
	assert.Equal(t, "2024-03-20T06:00:00Z", resp.MinZenith.Time)
	assert.Less(t, *resp.MinZenith.ZenithDeg, 1.0)
	assert.InDelta(t, 0.5, resp.DaylightFraction, 0.02)
}

func TestSeries_Invalid(t *testing.T) {
	uc := newUseCase(t)
	start := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	_, err := uc.Series(SeriesRequest{Lat: 95, TimeWindow: TimeWindow{Start: start, End: start.Add(time.Hour), Interval: time.Minute}})
	assert.ErrorContains(t, err, "invalid request")
}

func TestDaylight_Calendar(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Daylight(DaylightRequest{Lat: 70, StartDOY: 1, EndDOY: 365})
	require.NoError(t, err)
	require.Len(t, resp.Days, 365)

	assert.Equal(t, 0.0, resp.MinDaylightHours)
	assert.Equal(t, 24.0, resp.MaxDaylightHours)

	winter := resp.Days[354] // DOY 355
	assert.Equal(t, "polar_night", winter.Polar)
	assert.Equal(t, 0.0, *winter.DaylightHours)
	assert.Equal(t, 12.0, *winter.SunriseHour)

	summer := resp.Days[171] // DOY 172
	assert.Equal(t, "polar_day", summer.Polar)
	assert.Equal(t, 0.0, *summer.SunriseHour)
	assert.Equal(t, 24.0, *summer.SunsetHour)

	for _, d := range resp.Days {
		assert.InDelta(t, *d.DaylightHours, *d.SunsetHour-*d.SunriseHour, 1e-5)
	}
}

func TestDaylight_Invalid(t *testing.T) {
	uc := newUseCase(t)
	for _, req := range []DaylightRequest{
		{Lat: 0, StartDOY: 0, EndDOY: 10},
		{Lat: 0, StartDOY: 10, EndDOY: 367},
		{Lat: 0, StartDOY: 20, EndDOY: 10},
		{Lat: -91, StartDOY: 1, EndDOY: 1},
	} {
		_, err := uc.Daylight(req)
		assert.Error(t, err, "%+v", req)
	}
}

func TestCompare_AgreesWithReference(t *testing.T) {
	uc := newUseCase(t)
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Compare(CompareRequest{
		Lat: 35.68, Lon: 139.77,
		TimeWindow: TimeWindow{Start: start, End: start.Add(24 * time.Hour), Interval: time.Hour},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Samples)
	assert.Len(t, resp.Points, 25)
	assert.Equal(t, "suncalc", resp.Reference)
	require.NotNil(t, resp.RMSEDeg)
	assert.Less(t, *resp.RMSEDeg, 2.0)
	assert.GreaterOrEqual(t, *resp.MaxAbsDeg, math.Abs(*resp.BiasDeg))
	assert.NotNil(t, resp.StdDevDeg)
}

// memSource and memSink keep grids in memory.
type memSource struct {
	grid   *raster.Grid
	fields map[string]*mat.Dense
}

func (s *memSource) Grid() (*raster.Grid, error) { return s.grid, nil }

func (s *memSource) Field(name string) (*mat.Dense, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return f, nil
}

func (s *memSource) Close() error { return nil }

type memSink struct {
	layers map[string]store.Layer
}

func (s *memSink) WriteLayers(_ *raster.Grid, layers []store.Layer) error {
	s.layers = make(map[string]store.Layer, len(layers))
	for _, l := range layers {
		s.layers[l.Name] = l
	}
	return nil
}

func TestGrid_ScalarSolarTime(t *testing.T) {
	uc := newUseCase(t)
	grid := &raster.Grid{Lat: []float64{60, 0, -60}, Lon: []float64{-90, 0, 90, 180}}
	sink := &memSink{}

	res, err := uc.Grid(GridRequest{Source: &memSource{grid: grid}, Sink: sink, DOY: f64(172), Hour: f64(12)})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 4, res.Cols)
	assert.Len(t, res.Layers, 6)

	for _, name := range res.Layers {
		r, c := sink.layers[name].Values.Dims()
		assert.Equal(t, 3, r, name)
		assert.Equal(t, 4, c, name)
	}

	sza := sink.layers[LayerSolarZenith].Values
	for i, lat := range grid.Lat {
		for j := range grid.Lon {
			assert.InDelta(t, domain.ZenithAngleFromDOY(lat, 172, 12), sza.At(i, j), 1e-12)
		}
	}
	dec := sink.layers[LayerDeclination].Values
	assert.Equal(t, domain.DeclinationForDOY(172), dec.At(2, 3))
	// The equator row is closest to the June subsolar latitude.
	assert.InDelta(t, res.ZenithMin, sza.At(1, 0), 1e-12)
}

func TestGrid_FieldsAndTime(t *testing.T) {
	uc := newUseCase(t)
	grid := &raster.Grid{Lat: []float64{10, -10}, Lon: []float64{0, 90}}
	src := &memSource{grid: grid, fields: map[string]*mat.Dense{
		"doy":  mat.NewDense(2, 2, []float64{1, 100, math.NaN(), 300}),
		"hour": mat.NewDense(2, 2, []float64{6, 12, 18, 0}),
	}}
	sink := &memSink{}

	res, err := uc.Grid(GridRequest{Source: src, Sink: sink, DOYVar: "doy", HourVar: "hour"})
	require.NoError(t, err)

	sza := sink.layers[LayerSolarZenith].Values
	assert.InDelta(t, domain.ZenithAngleFromDOY(-10, 300, 0), sza.At(1, 1), 1e-12)
	assert.True(t, math.IsNaN(sza.At(1, 0)))
	assert.GreaterOrEqual(t, res.NaNAzimuths, 1)

	instant := time.Date(2024, 3, 20, 6, 0, 0, 0, time.UTC)
	_, err = uc.Grid(GridRequest{Source: src, Sink: sink, Time: &instant})
	require.NoError(t, err)
	sza = sink.layers[LayerSolarZenith].Values
	// 06:00 UTC is solar noon at 90E.
	assert.Less(t, sza.At(0, 1), 15.0)
	assert.Greater(t, sza.At(0, 0), 75.0)

	_, err = uc.Grid(GridRequest{Source: src, Sink: sink, DOYVar: "missing", Hour: f64(1)})
	assert.Error(t, err)
}

func TestGridRequest_Validate(t *testing.T) {
	src, sink := &memSource{}, &memSink{}
	now := time.Now()
	for _, req := range []GridRequest{
		{Sink: sink, DOY: f64(1), Hour: f64(1)},
		{Source: src, DOY: f64(1), Hour: f64(1)},
		{Source: src, Sink: sink},
		{Source: src, Sink: sink, Time: &now, DOY: f64(1)},
		{Source: src, Sink: sink, DOY: f64(1), DOYVar: "doy", Hour: f64(1)},
		{Source: src, Sink: sink, DOY: f64(400), Hour: f64(1)},
		{Source: src, Sink: sink, DOY: f64(1), Hour: f64(-1)},
		{Source: src, Sink: sink, DOY: f64(math.NaN()), Hour: f64(1)},
		{Source: src, Sink: sink, DOYVar: "doy", Hour: f64(math.NaN())},
	} {
		assert.Error(t, req.Validate())
	}
}

func TestBatch(t *testing.T) {
	uc := newUseCase(t)
	instant := time.Date(2024, 6, 21, 3, 0, 0, 0, time.UTC)

	results, err := uc.Batch([]store.Point{
		{Lat: 35.68, Lon: 139.77, Time: instant, DOY: math.NaN(), Hour: math.NaN()},
		{Lat: 0, Lon: 0, DOY: 81, Hour: 12},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.InDelta(t, domain.ZenithAngleAt(instant, 35.68, 139.77, nil), results[0].Geometry.Zenith, 1e-12)
	assert.Equal(t, domain.ComputeGeometry(0, 81, 12).Zenith, results[1].Geometry.Zenith)

}

func TestBatch_InvalidPoints(t *testing.T) {
	uc := newUseCase(t)
	valid := store.Point{Lat: 0, Lon: 0, DOY: 81, Hour: 12}

	tests := []struct {
		name    string
		point   store.Point
		wantErr string
	}{
		{"latitude out of range", store.Point{Lat: 100, DOY: 1, Hour: 1}, "latitude"},
		{"doy out of range", store.Point{Lat: 40, DOY: 9000, Hour: 12}, "doy"},
		{"hour negative", store.Point{Lat: 40, DOY: 10, Hour: -50}, "hour"},
		{"doy infinite", store.Point{Lat: 40, DOY: math.Inf(1), Hour: 12}, "doy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := uc.Batch([]store.Point{valid, tt.point})
			assert.Nil(t, results)
			assert.ErrorContains(t, err, "point 2")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
