package usecase

import (
	"fmt"
	"time"

	"go.ngs.io/sun-angles/internal/domain"
)

// PositionRequest asks for the geometry at one location, either at a UTC
// instant (Time with Lon) or at a given solar day and hour (DOY with Hour).
// Site is an alternative to Lat/Lon.
type PositionRequest struct {
	Site *string
	Lat  *float64
	Lon  *float64
	Time *time.Time
	DOY  *float64
	Hour *float64
}

// PositionResponse contains the geometry for one location.
type PositionResponse struct {
	Site     string           `json:"site,omitempty"`
	Lat      float64          `json:"lat"`
	Lon      *float64         `json:"lon,omitempty"`
	Time     string           `json:"time,omitempty"`
	Clock    string           `json:"clock,omitempty"`
	Geometry GeometryResponse `json:"geometry"`
}

// Validate checks if the request is valid.
func (r *PositionRequest) Validate() error {
	if r.Site != nil && (r.Lat != nil || r.Lon != nil) {
		return fmt.Errorf("lat/lon and site are mutually exclusive")
	}
	if r.Site != nil {
		return fmt.Errorf("site %q was not resolved", *r.Site)
	}
	if r.Lat == nil {
		return fmt.Errorf("lat is required")
	}
	lon := 0.0
	if r.Lon != nil {
		lon = *r.Lon
	}
	if err := validateLatLon(*r.Lat, lon); err != nil {
		return err
	}

	hasSolarTime := r.DOY != nil || r.Hour != nil
	if r.Time != nil && hasSolarTime {
		return fmt.Errorf("time and doy/hour are mutually exclusive")
	}

	if r.Time != nil {
		if r.Lon == nil {
			return fmt.Errorf("lon is required with time")
		}
		return nil
	}

	if r.DOY == nil || r.Hour == nil {
		return fmt.Errorf("either time or both doy and hour must be provided")
	}
	return validateSolarTime(*r.DOY, *r.Hour)
}

// Position computes the geometry for a single location.
func (uc *SunUseCase) Position(req PositionRequest) (*PositionResponse, error) {
	siteName := ""
	if req.Site != nil && req.Lat == nil && req.Lon == nil {
		site, err := uc.resolveSite(*req.Site)
		if err != nil {
			return nil, fmt.Errorf("invalid request: %w", err)
		}
		siteName = site.Name
		req.Site, req.Lat, req.Lon = nil, &site.Lat, &site.Lon
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if siteName == "" && uc.sites != nil && req.Lon != nil {
		if site, ok := uc.sites.Nearest(*req.Lat, *req.Lon, nearestSiteRadiusKm); ok {
			siteName = site.Name
		}
	}

	resp := &PositionResponse{Site: siteName, Lat: *req.Lat, Lon: req.Lon}

	var g domain.Geometry
	if req.Time != nil {
		t := req.Time.UTC()
		g = uc.geometryAt(t, *req.Lat, *req.Lon)
		resp.Time = t.Format(time.RFC3339)
		resp.Clock = uc.clockName
	} else {
		g = domain.ComputeGeometry(*req.Lat, *req.DOY, *req.Hour)
	}
	resp.Geometry = newGeometryResponse(g)

	return resp, nil
}

func (uc *SunUseCase) resolveSite(name string) (Site, error) {
	if uc.sites == nil {
		return Site{}, fmt.Errorf("site lookup is not configured")
	}
	site, ok := uc.sites.Lookup(name)
	if !ok {
		return Site{}, fmt.Errorf("unknown site %q", name)
	}
	return site, nil
}
