package usecase

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.ngs.io/sun-angles/internal/adapter/store"
	"go.ngs.io/sun-angles/internal/domain"
)

// Batch computes the geometry of every point. Points carrying their own
// solar day and hour bypass the clock. Points are evaluated concurrently;
// when several are invalid, the first failure observed is reported.
func (uc *SunUseCase) Batch(points []store.Point) ([]store.PointResult, error) {
	results := make([]store.PointResult, len(points))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			if err := validateLatLon(p.Lat, p.Lon); err != nil {
				return fmt.Errorf("point %d: %w", i+1, err)
			}

			var geo domain.Geometry
			if p.HasSolarTime() {
				if err := validateSolarTime(p.DOY, p.Hour); err != nil {
					return fmt.Errorf("point %d: %w", i+1, err)
				}
				geo = domain.ComputeGeometry(p.Lat, p.DOY, p.Hour)
			} else {
				geo = uc.geometryAt(p.Time, p.Lat, p.Lon)
			}
			results[i] = store.PointResult{Point: p, Geometry: geo}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
