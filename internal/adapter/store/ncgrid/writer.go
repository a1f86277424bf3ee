package ncgrid

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/sun-angles/internal/adapter/raster"
	"go.ngs.io/sun-angles/internal/adapter/store"
)

// Writer writes layers to a NetCDF4 file, replacing it if it exists.
type Writer struct {
	Path string
}

// NewWriter creates a writer for path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// WriteLayers writes the lat/lon axes and one DOUBLE (lat, lon) variable per layer.
func (w *Writer) WriteLayers(grid *raster.Grid, layers []store.Layer) error {
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}
	rows, cols := grid.Dims()
	for _, l := range layers {
		r, c := l.Values.Dims()
		if r != rows || c != cols {
			return fmt.Errorf("layer %s is %dx%d, grid is %dx%d", l.Name, r, c, rows, cols)
		}
	}

	ds, err := netcdf.CreateFile(w.Path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", w.Path, err)
	}
	defer func() { _ = ds.Close() }()

	latDim, err := ds.AddDim("lat", uint64(rows))
	if err != nil {
		return err
	}
	lonDim, err := ds.AddDim("lon", uint64(cols))
	if err != nil {
		return err
	}

	latVar, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return err
	}
	lonVar, err := ds.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	if err != nil {
		return err
	}
	if err := writeText(latVar, "units", "degrees_north"); err != nil {
		return err
	}
	if err := writeText(lonVar, "units", "degrees_east"); err != nil {
		return err
	}

	vars := make([]netcdf.Var, len(layers))
	for i, l := range layers {
		v, err := ds.AddVar(l.Name, netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
		if err != nil {
			return fmt.Errorf("failed to add variable %s: %w", l.Name, err)
		}
		if l.Units != "" {
			if err := writeText(v, "units", l.Units); err != nil {
				return err
			}
		}
		if l.LongName != "" {
			if err := writeText(v, "long_name", l.LongName); err != nil {
				return err
			}
		}
		vars[i] = v
	}

	if err := ds.EndDef(); err != nil {
		return fmt.Errorf("enddef: %w", err)
	}

	if err := latVar.WriteFloat64s(grid.Lat); err != nil {
		return fmt.Errorf("write lat: %w", err)
	}
	if err := lonVar.WriteFloat64s(grid.Lon); err != nil {
		return fmt.Errorf("write lon: %w", err)
	}
	for i, l := range layers {
		if err := vars[i].WriteFloat64s(flatten(l.Values.RawMatrix().Data, rows, cols, l.Values.RawMatrix().Stride)); err != nil {
			return fmt.Errorf("write %s: %w", l.Name, err)
		}
	}

	return nil
}

// flatten returns row-major data without stride padding.
func flatten(data []float64, rows, cols, stride int) []float64 {
	if stride == cols {
		return data[:rows*cols]
	}
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		out = append(out, data[i*stride:i*stride+cols]...)
	}
	return out
}

func writeText(v netcdf.Var, name, value string) error {
	if err := v.Attr(name).WriteBytes([]byte(value)); err != nil {
		return fmt.Errorf("failed to write attribute %s: %w", name, err)
	}
	return nil
}
