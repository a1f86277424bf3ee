// Package http exposes the sun geometry use cases over a JSON API.
package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/sun-angles/internal/usecase"
)

// Handler handles HTTP requests for sun geometry.
type Handler struct {
	sunUC *usecase.SunUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(sunUC *usecase.SunUseCase) *Handler {
	return &Handler{
		sunUC: sunUC,
	}
}

// GetPosition handles GET /v1/sun/position.
func (h *Handler) GetPosition(c *gin.Context) {
	var req usecase.PositionRequest
	var err error

	if site := c.Query("site"); site != "" {
		req.Site = &site
	}
	if req.Lat, err = optionalFloat(c, "lat"); err != nil {
		badRequest(c, err)
		return
	}
	if req.Lon, err = optionalFloat(c, "lon"); err != nil {
		badRequest(c, err)
		return
	}
	if req.DOY, err = optionalFloat(c, "doy"); err != nil {
		badRequest(c, err)
		return
	}
	if req.Hour, err = optionalFloat(c, "hour"); err != nil {
		badRequest(c, err)
		return
	}
	if timeStr := c.Query("time"); timeStr != "" {
		t, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid time (expected RFC3339): %w", err))
			return
		}
		req.Time = &t
	}

	response, err := h.sunUC.Position(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSeries handles GET /v1/sun/series.
func (h *Handler) GetSeries(c *gin.Context) {
	lat, lon, ok := requiredLatLon(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c, "10m")
	if !ok {
		return
	}

	response, err := h.sunUC.Series(usecase.SeriesRequest{Lat: lat, Lon: lon, TimeWindow: window})
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDaylight handles GET /v1/sun/daylight.
func (h *Handler) GetDaylight(c *gin.Context) {
	lat, err := requiredFloat(c, "lat")
	if err != nil {
		badRequest(c, err)
		return
	}
	startDOY, err := strconv.Atoi(c.DefaultQuery("start_doy", "1"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid start_doy: %w", err))
		return
	}
	endDOY, err := strconv.Atoi(c.DefaultQuery("end_doy", "365"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid end_doy: %w", err))
		return
	}

	response, err := h.sunUC.Daylight(usecase.DaylightRequest{Lat: lat, StartDOY: startDOY, EndDOY: endDOY})
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCompare handles GET /v1/sun/compare.
func (h *Handler) GetCompare(c *gin.Context) {
	lat, lon, ok := requiredLatLon(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c, "1h")
	if !ok {
		return
	}
	includePoints, err := strconv.ParseBool(c.DefaultQuery("points", "false"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid points: %w", err))
		return
	}

	response, err := h.sunUC.Compare(usecase.CompareRequest{Lat: lat, Lon: lon, TimeWindow: window}, includePoints)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"clock":  h.sunUC.ClockName(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &v, nil
}

func requiredFloat(c *gin.Context, name string) (float64, error) {
	v, err := optionalFloat(c, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("%s parameter is required", name)
	}
	return *v, nil
}

func requiredLatLon(c *gin.Context) (lat, lon float64, ok bool) {
	lat, err := requiredFloat(c, "lat")
	if err != nil {
		badRequest(c, err)
		return 0, 0, false
	}
	lon, err = requiredFloat(c, "lon")
	if err != nil {
		badRequest(c, err)
		return 0, 0, false
	}
	return lat, lon, true
}

// parseWindow reads start, end and interval, writing a 400 response on error.
func parseWindow(c *gin.Context, defaultInterval string) (usecase.TimeWindow, bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" {
		badRequest(c, fmt.Errorf("start parameter is required"))
		return usecase.TimeWindow{}, false
	}
	if endStr == "" {
		badRequest(c, fmt.Errorf("end parameter is required"))
		return usecase.TimeWindow{}, false
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		badRequest(c, fmt.Errorf("invalid start time (expected RFC3339): %w", err))
		return usecase.TimeWindow{}, false
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		badRequest(c, fmt.Errorf("invalid end time (expected RFC3339): %w", err))
		return usecase.TimeWindow{}, false
	}

	interval, err := time.ParseDuration(c.DefaultQuery("interval", defaultInterval))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid interval: %w", err))
		return usecase.TimeWindow{}, false
	}

	return usecase.TimeWindow{Start: start.UTC(), End: end.UTC(), Interval: interval}, true
}
