// Package store defines the ports the use cases read rasters and point
// batches through.
package store

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"go.ngs.io/sun-angles/internal/adapter/raster"
	"go.ngs.io/sun-angles/internal/domain"
)

// Layer is one named 2-D field on a grid.
type Layer struct {
	Name     string
	Units    string
	LongName string
	Values   *mat.Dense
}

// GridSource provides a grid and optional per-pixel input fields.
type GridSource interface {
	// Grid returns the latitude/longitude axes.
	Grid() (*raster.Grid, error)

	// Field reads a 2-D variable aligned with Grid (rows = latitudes).
	Field(name string) (*mat.Dense, error)

	// Close releases any resources held by the source.
	Close() error
}

// GridSink persists computed layers on a grid.
type GridSink interface {
	WriteLayers(grid *raster.Grid, layers []Layer) error
}

// Point is one batch input location. When DOY and Hour are both finite they
// are used as the solar day and hour directly; otherwise Time is converted
// with a solar clock.
type Point struct {
	Lat  float64
	Lon  float64
	Time time.Time
	DOY  float64
	Hour float64
}

// HasSolarTime reports whether the point carries its own solar day and hour.
func (p Point) HasSolarTime() bool {
	return !math.IsNaN(p.DOY) && !math.IsNaN(p.Hour)
}

// PointResult pairs an input point with its computed geometry.
type PointResult struct {
	Point    Point
	Geometry domain.Geometry
}
