// Package raster describes geo-referenced latitude/longitude grids.
package raster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid is a regular-or-irregular rectilinear grid. Row i of every field on
// the grid corresponds to Lat[i] and column j to Lon[j].
type Grid struct {
	Lat []float64 // Y coordinates in degrees.
	Lon []float64 // X coordinates in degrees.
}

// Region defines geographic bounds and a resolution for a generated grid.
type Region struct {
	LatMin     float64
	LatMax     float64
	LonMin     float64
	LonMax     float64
	Resolution float64 // Degrees.
}

// Regions are the named presets accepted by the grid tools.
var Regions = map[string]Region{
	"global": {LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 180, Resolution: 1.0},
	"arctic": {LatMin: 60, LatMax: 90, LonMin: -180, LonMax: 180, Resolution: 0.5},
	"japan":  {LatMin: 20, LatMax: 50, LonMin: 120, LonMax: 150, Resolution: 0.1},
	"conus":  {LatMin: 24, LatMax: 50, LonMin: -125, LonMax: -66, Resolution: 0.25},
}

// NewGrid builds the grid covering a region, north-up (latitude descending)
// as is usual for rasters. Cell centers start half a cell inside the bounds.
func NewGrid(r Region) (*Grid, error) {
	if r.Resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %v", r.Resolution)
	}
	if r.LatMax <= r.LatMin || r.LonMax <= r.LonMin {
		return nil, fmt.Errorf("invalid region bounds: lat [%v, %v], lon [%v, %v]", r.LatMin, r.LatMax, r.LonMin, r.LonMax)
	}

	nLat := int(math.Round((r.LatMax - r.LatMin) / r.Resolution))
	nLon := int(math.Round((r.LonMax - r.LonMin) / r.Resolution))
	if nLat < 1 || nLon < 1 {
		return nil, fmt.Errorf("region smaller than one cell at resolution %v", r.Resolution)
	}

	g := &Grid{
		Lat: make([]float64, nLat),
		Lon: make([]float64, nLon),
	}
	for i := range g.Lat {
		g.Lat[i] = r.LatMax - (float64(i)+0.5)*r.Resolution
	}
	for j := range g.Lon {
		g.Lon[j] = r.LonMin + (float64(j)+0.5)*r.Resolution
	}

	return g, nil
}

// Dims returns the number of rows (latitudes) and columns (longitudes).
func (g *Grid) Dims() (rows, cols int) {
	return len(g.Lat), len(g.Lon)
}

// Validate checks that both axes are non-empty, finite and strictly monotonic.
func (g *Grid) Validate() error {
	if len(g.Lat) == 0 {
		return fmt.Errorf("grid must have at least 1 latitude")
	}
	if len(g.Lon) == 0 {
		return fmt.Errorf("grid must have at least 1 longitude")
	}
	if err := checkAxis("latitude", g.Lat); err != nil {
		return err
	}
	if err := checkAxis("longitude", g.Lon); err != nil {
		return err
	}
	for _, lat := range g.Lat {
		if lat < -90 || lat > 90 {
			return fmt.Errorf("latitude %v outside [-90, 90]", lat)
		}
	}
	return nil
}

func checkAxis(name string, v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s axis contains non-finite value %v", name, x)
		}
	}
	if len(v) < 2 {
		return nil
	}
	increasing := v[1] > v[0]
	for i := 1; i < len(v); i++ {
		if (increasing && v[i] <= v[i-1]) || (!increasing && v[i] >= v[i-1]) {
			return fmt.Errorf("%s coordinates must be strictly monotonic (index %d)", name, i)
		}
	}
	return nil
}

// Mesh expands the axes into full rows×cols latitude and longitude fields.
// Longitudes are normalized to [-180, 180).
func (g *Grid) Mesh() (lat, lon *mat.Dense) {
	rows, cols := g.Dims()
	lat = mat.NewDense(rows, cols, nil)
	lon = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		latRow := lat.RawRowView(i)
		lonRow := lon.RawRowView(i)
		for j := 0; j < cols; j++ {
			latRow[j] = g.Lat[i]
			lonRow[j] = NormalizeLon180(g.Lon[j])
		}
	}
	return lat, lon
}

// NormalizeLon180 maps arbitrary degree longitudes into [-180, 180).
//
// Grids on a 0–360° axis must be wrapped before longitudes are turned into
// solar time offsets, otherwise 350°E would shift the clock by almost a day
// instead of 40 minutes backwards.
func NormalizeLon180(lon float64) float64 {
	lon = math.Mod(lon+180.0, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon - 180.0
}
