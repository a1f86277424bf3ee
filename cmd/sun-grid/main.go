// Command sun-grid computes sun geometry layers on a latitude/longitude grid
// and writes them to a NetCDF4 file. The grid comes from an input NetCDF file
// or from a region preset.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"go.ngs.io/sun-angles/internal/adapter/raster"
	"go.ngs.io/sun-angles/internal/adapter/store"
	"go.ngs.io/sun-angles/internal/adapter/store/ncgrid"
	"go.ngs.io/sun-angles/internal/log"
	"go.ngs.io/sun-angles/internal/usecase"
)

func main() {
	inPath := flag.String("in", "", "Input NetCDF file with lat/lon axes (optional, overrides -region)")
	outPath := flag.String("out", "./sun_grid.nc", "Output NetCDF file")
	region := flag.String("region", "japan", "Region: "+strings.Join(regionNames(), ", ")+", or custom")
	latMin := flag.Float64("lat-min", 20.0, "Minimum latitude (custom region)")
	latMax := flag.Float64("lat-max", 50.0, "Maximum latitude (custom region)")
	lonMin := flag.Float64("lon-min", 120.0, "Minimum longitude (custom region)")
	lonMax := flag.Float64("lon-max", 150.0, "Maximum longitude (custom region)")
	resolution := flag.Float64("resolution", 0, "Grid resolution in degrees (default: region preset)")
	timeStr := flag.String("time", "", "UTC instant (RFC3339); converted to solar time per longitude")
	doy := flag.Float64("doy", math.NaN(), "Day of year for every cell")
	hour := flag.Float64("hour", math.NaN(), "Solar hour for every cell")
	doyVar := flag.String("doy-var", "", "Input variable holding day of year per cell")
	hourVar := flag.String("hour-var", "", "Input variable holding solar hour per cell")
	clock := flag.String("clock", "mean", "Solar clock for -time: mean or apparent")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		inPath:     *inPath,
		outPath:    *outPath,
		region:     *region,
		latMin:     *latMin,
		latMax:     *latMax,
		lonMin:     *lonMin,
		lonMax:     *lonMax,
		resolution: *resolution,
		timeStr:    *timeStr,
		doy:        *doy,
		hour:       *hour,
		doyVar:     *doyVar,
		hourVar:    *hourVar,
		clock:      *clock,
	}
	err := run(opts)
	if err != nil {
		log.Errorf("%v", err)
	}
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// options holds the parsed command line. NaN doy or hour means unset.
type options struct {
	inPath, outPath        string
	region                 string
	latMin, latMax         float64
	lonMin, lonMax         float64
	resolution             float64
	timeStr                string
	doy, hour              float64
	doyVar, hourVar, clock string
}

// run builds the grid source, computes every layer and writes the output.
// The source is closed before run returns.
func run(opts options) (err error) {
	source, err := openSource(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close input: %w", cerr)
		}
	}()

	req := usecase.GridRequest{
		Source:  source,
		Sink:    ncgrid.NewWriter(opts.outPath),
		DOYVar:  opts.doyVar,
		HourVar: opts.hourVar,
	}
	if opts.timeStr != "" {
		t, err := time.Parse(time.RFC3339, opts.timeStr)
		if err != nil {
			return fmt.Errorf("invalid -time (expected RFC3339): %w", err)
		}
		req.Time = &t
	}
	if !math.IsNaN(opts.doy) {
		req.DOY = &opts.doy
	}
	if !math.IsNaN(opts.hour) {
		req.Hour = &opts.hour
	}

	sunUC, err := usecase.NewSunUseCase(opts.clock, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := sunUC.Grid(req)
	if err != nil {
		return fmt.Errorf("failed to compute grid: %w", err)
	}

	log.Infow("grid written",
		"out", opts.outPath,
		"rows", res.Rows,
		"cols", res.Cols,
		"layers", res.Layers,
		"zenith_min", res.ZenithMin,
		"zenith_max", res.ZenithMax,
		"zenith_mean", res.ZenithMean,
		"nan_azimuths", res.NaNAzimuths,
		"elapsed", time.Since(start),
	)

	bytesPerLayer := res.Rows * res.Cols * 8
	totalMB := float64(bytesPerLayer*len(res.Layers)) / 1024 / 1024
	log.Infof("Total size: ~%.1f MB (%d layers)", totalMB, len(res.Layers))
	return nil
}

// openSource opens the input NetCDF file, or builds an in-memory grid from
// the region flags when no input is given.
func openSource(opts options) (store.GridSource, error) {
	if opts.inPath != "" {
		r, err := ncgrid.Open(opts.inPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		log.Infow("using input grid", "path", opts.inPath)
		return r, nil
	}

	r, err := resolveRegion(opts.region, opts.latMin, opts.latMax, opts.lonMin, opts.lonMax, opts.resolution)
	if err != nil {
		return nil, err
	}
	grid, err := raster.NewGrid(r)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	log.Infof("Grid: %.2f°-%.2f°N, %.2f°-%.2f°E, resolution: %.3f°",
		r.LatMin, r.LatMax, r.LonMin, r.LonMax, r.Resolution)
	return raster.NewMemorySource(grid), nil
}

// resolveRegion returns a preset region or the custom bounds; a positive
// resolution overrides the preset's.
func resolveRegion(name string, latMin, latMax, lonMin, lonMax, resolution float64) (raster.Region, error) {
	var r raster.Region
	if name == "custom" {
		r = raster.Region{LatMin: latMin, LatMax: latMax, LonMin: lonMin, LonMax: lonMax, Resolution: 0.1}
	} else {
		preset, ok := raster.Regions[name]
		if !ok {
			return raster.Region{}, fmt.Errorf("unknown region: %s (use %s, or custom)", name, strings.Join(regionNames(), ", "))
		}
		r = preset
	}
	if resolution > 0 {
		r.Resolution = resolution
	}
	return r, nil
}

func regionNames() []string {
	return []string{"global", "arctic", "japan", "conus"}
}
