package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// nearestSiteRadiusKm is how far a coordinate may be from a site to be
// reported as near it.
const nearestSiteRadiusKm = 50.0

// Site is a named location.
type Site struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// SiteCatalog resolves site names to coordinates.
type SiteCatalog struct {
	sites []Site
	index map[string]int
}

// NewSiteCatalog builds a catalog, rejecting duplicate names and invalid coordinates.
func NewSiteCatalog(sites []Site) (*SiteCatalog, error) {
	c := &SiteCatalog{sites: sites, index: make(map[string]int, len(sites))}
	for i, s := range sites {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" {
			return nil, fmt.Errorf("site %d has no name", i)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate site %q", s.Name)
		}
		if err := validateLatLon(s.Lat, s.Lon); err != nil {
			return nil, fmt.Errorf("site %q: %w", s.Name, err)
		}
		c.index[key] = i
	}
	return c, nil
}

// LoadSiteCatalog reads a JSON array of sites.
//
//nolint:gosec // G304: path comes from server configuration.
func LoadSiteCatalog(path string) (*SiteCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file %s: %w", path, err)
	}
	var sites []Site
	if err := json.Unmarshal(b, &sites); err != nil {
		return nil, fmt.Errorf("failed to parse sites file %s: %w", path, err)
	}
	return NewSiteCatalog(sites)
}

// Len returns the number of sites.
func (c *SiteCatalog) Len() int {
	return len(c.sites)
}

// Lookup finds a site by case-insensitive name.
func (c *SiteCatalog) Lookup(name string) (Site, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Site{}, false
	}
	return c.sites[i], true
}

// Nearest returns the closest site within radiusKm.
func (c *SiteCatalog) Nearest(lat, lon, radiusKm float64) (Site, bool) {
	bestDist := math.MaxFloat64
	best := -1
	for i, s := range c.sites {
		d := haversineKm(lat, lon, s.Lat, s.Lon)
		if d <= radiusKm && d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return Site{}, false
	}
	return c.sites[best], true
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	toRad := func(x float64) float64 { return x * math.Pi / 180.0 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
