// Package csv reads batch point files and writes computed sun geometry.
package csv

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"go.ngs.io/sun-angles/internal/adapter/store"
)

// pointRow is the input layout. doy and hour are optional columns.
type pointRow struct {
	Lat  string `csv:"lat"`
	Lon  string `csv:"lon"`
	Time string `csv:"time"`
	DOY  string `csv:"doy"`
	Hour string `csv:"hour"`
}

// resultRow is the output layout. NaN values are written as empty cells.
type resultRow struct {
	Lat              Float  `csv:"lat"`
	Lon              Float  `csv:"lon"`
	Time             string `csv:"time"`
	DOY              Float  `csv:"doy"`
	Hour             Float  `csv:"hour"`
	Declination      Float  `csv:"declination_deg"`
	SunriseHourAngle Float  `csv:"sunrise_hour_angle_deg"`
	DaylightHours    Float  `csv:"daylight_hours"`
	SunriseHour      Float  `csv:"sunrise_hour"`
	SunsetHour       Float  `csv:"sunset_hour"`
	Zenith           Float  `csv:"solar_zenith_deg"`
	Elevation        Float  `csv:"solar_elevation_deg"`
	Azimuth          Float  `csv:"solar_azimuth_deg"`
	Polar            string `csv:"polar"`
}

// Float is a float64 cell written as an empty string when NaN.
type Float float64

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Float) MarshalCSV() (string, error) {
	v := float64(f)
	if math.IsNaN(v) {
		return "", nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// LoadPoints reads a batch file from disk.
//
//nolint:gosec // G304: path comes from the command line.
func LoadPoints(path string) ([]store.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return ReadPoints(file)
}

// ReadPoints parses rows with header lat,lon and either time (RFC3339) or
// both doy and hour.
func ReadPoints(r io.Reader) ([]store.Point, error) {
	var rows []*pointRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	points := make([]store.Point, 0, len(rows))
	for i, row := range rows {
		p, err := row.point()
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func (r *pointRow) point() (store.Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return store.Point{}, fmt.Errorf("invalid lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return store.Point{}, fmt.Errorf("invalid lon %q: %w", r.Lon, err)
	}
	doy, err := parseOptional(r.DOY)
	if err != nil {
		return store.Point{}, fmt.Errorf("invalid doy %q: %w", r.DOY, err)
	}
	hour, err := parseOptional(r.Hour)
	if err != nil {
		return store.Point{}, fmt.Errorf("invalid hour %q: %w", r.Hour, err)
	}

	p := store.Point{Lat: lat, Lon: lon, DOY: doy, Hour: hour}
	if ts := strings.TrimSpace(r.Time); ts != "" {
		p.Time, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return store.Point{}, fmt.Errorf("invalid time %q: %w", r.Time, err)
		}
	}
	if p.Time.IsZero() && !p.HasSolarTime() {
		return store.Point{}, fmt.Errorf("either time or both doy and hour are required")
	}
	return p, nil
}

// parseOptional parses a float, treating an empty cell as NaN.
func parseOptional(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteResults writes one row per result with a header.
func WriteResults(w io.Writer, results []store.PointResult) error {
	rows := make([]*resultRow, len(results))
	for i, res := range results {
		g := res.Geometry
		row := &resultRow{
			Lat:              Float(res.Point.Lat),
			Lon:              Float(res.Point.Lon),
			DOY:              Float(g.DOY),
			Hour:             Float(g.Hour),
			Declination:      Float(g.Declination),
			SunriseHourAngle: Float(g.SunriseHourAngle),
			DaylightHours:    Float(g.DaylightHours),
			SunriseHour:      Float(g.SunriseHour),
			SunsetHour:       Float(g.SunsetHour),
			Zenith:           Float(g.Zenith),
			Elevation:        Float(g.Elevation),
			Azimuth:          Float(g.Azimuth),
			Polar:            g.Polar.String(),
		}
		if !res.Point.Time.IsZero() {
			row.Time = res.Point.Time.UTC().Format(time.RFC3339)
		}
		rows[i] = row
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
