// Package ncgrid reads and writes latitude/longitude rasters stored as NetCDF.
package ncgrid

import (
	"fmt"
	"math"

	"github.com/fhs/go-netcdf/netcdf"
	"gonum.org/v1/gonum/mat"

	"go.ngs.io/sun-angles/internal/adapter/raster"
)

var (
	latNames = []string{"lat", "latitude", "y"}
	lonNames = []string{"lon", "longitude", "x"}
)

// Reader gives access to the grid and variables of one NetCDF file.
type Reader struct {
	path string
	nc   netcdf.Dataset
	grid *raster.Grid
}

// Open opens a NetCDF file read-only.
//
//nolint:gosec // G304: path comes from operator configuration.
func Open(path string) (*Reader, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file %s: %w", path, err)
	}
	return &Reader{path: path, nc: nc}, nil
}

// Close closes the underlying dataset.
func (r *Reader) Close() error {
	return r.nc.Close()
}

// Grid reads the latitude and longitude axes, trying common variable names.
func (r *Reader) Grid() (*raster.Grid, error) {
	if r.grid != nil {
		return r.grid, nil
	}

	lat, err := r.readAxis(latNames)
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lon, err := r.readAxis(lonNames)
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}

	grid := &raster.Grid{Lat: lat, Lon: lon}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid in %s: %w", r.path, err)
	}
	r.grid = grid
	return grid, nil
}

func (r *Reader) readAxis(names []string) ([]float64, error) {
	for _, name := range names {
		v, err := r.nc.Var(name)
		if err != nil {
			continue
		}
		dims, err := v.Dims()
		if err != nil {
			return nil, fmt.Errorf("failed to get dimensions of %s: %w", name, err)
		}
		if len(dims) != 1 {
			return nil, fmt.Errorf("expected 1D variable %s, got %dD", name, len(dims))
		}
		n, err := dims[0].Len()
		if err != nil {
			return nil, err
		}
		return readValues(v, int(n))
	}
	return nil, fmt.Errorf("variable not found (tried: %v)", names)
}

// Field reads a 2-D variable as a rows×cols field matching Grid. Variables
// stored as (lon, lat) are transposed. Fill values become NaN and
// scale_factor/add_offset are applied.
func (r *Reader) Field(name string) (*mat.Dense, error) {
	grid, err := r.Grid()
	if err != nil {
		return nil, err
	}
	rows, cols := grid.Dims()

	v, err := r.nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found in %s: %w", name, r.path, err)
	}
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions of %s: %w", name, err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D variable %s, got %dD", name, len(dims))
	}
	dim0, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	dim1, err := dims[1].Len()
	if err != nil {
		return nil, err
	}

	data, err := readValues(v, int(dim0*dim1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	switch {
	case int(dim0) == rows && int(dim1) == cols:
		return mat.NewDense(rows, cols, data), nil
	case int(dim0) == cols && int(dim1) == rows:
		out := mat.NewDense(rows, cols, nil)
		out.Copy(mat.NewDense(cols, rows, data).T())
		return out, nil
	default:
		return nil, fmt.Errorf("variable %s is %dx%d, grid is %dx%d", name, dim0, dim1, rows, cols)
	}
}

// readValues reads n values of any numeric NetCDF type as float64.
// Supports float64, float32, int32, and int16 types, with optional
// scale_factor, add_offset and _FillValue.
func readValues(v netcdf.Var, n int) ([]float64, error) {
	varType, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable type: %w", err)
	}

	data := make([]float64, n)
	switch varType {
	case netcdf.DOUBLE:
		if err := v.ReadFloat64s(data); err != nil {
			return nil, fmt.Errorf("failed to read float64: %w", err)
		}
	case netcdf.FLOAT:
		buf := make([]float32, n)
		if err := v.ReadFloat32s(buf); err != nil {
			return nil, fmt.Errorf("failed to read float32: %w", err)
		}
		for i, x := range buf {
			data[i] = float64(x)
		}
	case netcdf.INT:
		buf := make([]int32, n)
		if err := v.ReadInt32s(buf); err != nil {
			return nil, fmt.Errorf("failed to read int32: %w", err)
		}
		for i, x := range buf {
			data[i] = float64(x)
		}
	case netcdf.SHORT:
		buf := make([]int16, n)
		if err := v.ReadInt16s(buf); err != nil {
			return nil, fmt.Errorf("failed to read int16: %w", err)
		}
		for i, x := range buf {
			data[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("unsupported data type: %v (expected DOUBLE, FLOAT, INT, or SHORT)", varType)
	}

	fill, hasFill := attrFloat(v, "_FillValue")
	if !hasFill {
		fill, hasFill = attrFloat(v, "missing_value")
	}
	scale, hasScale := attrFloat(v, "scale_factor")
	offset, hasOffset := attrFloat(v, "add_offset")

	for i, x := range data {
		if hasFill && (x == fill || (varType == netcdf.FLOAT && float32(x) == float32(fill))) {
			data[i] = math.NaN()
			continue
		}
		if hasScale && scale != 0 {
			x *= scale
		}
		if hasOffset {
			x += offset
		}
		data[i] = x
	}

	return data, nil
}

// attrFloat returns a numeric attribute as float64 if present.
func attrFloat(v netcdf.Var, name string) (float64, bool) {
	a := v.Attr(name)
	n, err := a.Len()
	if err != nil || n == 0 {
		return 0, false
	}
	buf64 := make([]float64, n)
	if err := a.ReadFloat64s(buf64); err == nil {
		return buf64[0], true
	}
	buf32 := make([]float32, n)
	if err := a.ReadFloat32s(buf32); err == nil {
		return float64(buf32[0]), true
	}
	bufi := make([]int32, n)
	if err := a.ReadInt32s(bufi); err == nil {
		return float64(bufi[0]), true
	}
	bufs := make([]int16, n)
	if err := a.ReadInt16s(bufs); err == nil {
		return float64(bufs[0]), true
	}
	return 0, false
}
