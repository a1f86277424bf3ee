package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go.ngs.io/sun-angles/internal/usecase"
)

func newTestRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sites, err := usecase.NewSiteCatalog([]usecase.Site{{Name: "Tokyo", Lat: 35.68, Lon: 139.77}})
	require.NoError(t, err)
	uc, err := usecase.NewSunUseCase("mean", sites)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	return SetupRouter(uc, zap.New(core)), logs
}

func get(t *testing.T, router *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestHealthCheck(t *testing.T) {
	router, logs := newTestRouter(t)

	w, body := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "mean", body["clock"])

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, int64(200), entry.ContextMap()["status"])
	assert.Equal(t, "/health", entry.ContextMap()["path"])
}

func TestGetPosition(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := get(t, router, "/v1/sun/position?lat=40&doy=172&hour=12")
	require.Equal(t, http.StatusOK, w.Code)
	geom := body["geometry"].(map[string]any)
	assert.InDelta(t, 16.55, geom["solar_zenith_deg"].(float64), 0.1)
	assert.Equal(t, "none", geom["polar"])

	w, body = get(t, router, "/v1/sun/position?site=tokyo&time=2024-06-21T03:00:00Z")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tokyo", body["site"])
	assert.Equal(t, "mean", body["clock"])
}

func TestGetPosition_BadRequests(t *testing.T) {
	router, logs := newTestRouter(t)

	for _, url := range []string{
		"/v1/sun/position?lat=abc&doy=1&hour=1",
		"/v1/sun/position?lat=91&doy=1&hour=1",
		"/v1/sun/position?lat=10&lon=10&time=yesterday",
		"/v1/sun/position?lat=10&doy=1",
		"/v1/sun/position?lat=40&doy=NaN&hour=NaN",
		"/v1/sun/position?lat=40&doy=172&hour=Inf",
		"/v1/sun/position?site=atlantis&time=2024-06-21T03:00:00Z",
	} {
		w, body := get(t, router, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.NotEmpty(t, body["error"], url)
	}

	for _, e := range logs.All() {
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
}

func TestGetSeries(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := get(t, router, "/v1/sun/series?lat=0&lon=90&start=2024-03-20T00:00:00Z&end=2024-03-21T00:00:00Z&interval=1h")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["points"], 25)
	minZenith := body["min_zenith"].(map[string]any)
	assert.Equal(t, "2024-03-20T06:00:00Z", minZenith["time"])

	w, _ = get(t, router, "/v1/sun/series?lat=0&lon=90&start=2024-03-20T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, router, "/v1/sun/series?lat=0&start=2024-03-20T00:00:00Z&end=2024-03-21T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, router, "/v1/sun/series?lat=0&lon=0&start=2024-03-20T00:00:00Z&end=2024-03-21T00:00:00Z&interval=fast")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDaylight(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := get(t, router, "/v1/sun/daylight?lat=80&start_doy=170&end_doy=175")
	require.Equal(t, http.StatusOK, w.Code)
	days := body["days"].([]any)
	require.Len(t, days, 6)
	first := days[0].(map[string]any)
	assert.Equal(t, float64(170), first["doy"])
	assert.Equal(t, "polar_day", first["polar"])
	assert.Equal(t, 24.0, first["daylight_hours"])

	w, _ = get(t, router, "/v1/sun/daylight?lat=0&start_doy=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = get(t, router, "/v1/sun/daylight")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCompare(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := get(t, router, "/v1/sun/compare?lat=51.48&lon=0&start=2024-06-21T00:00:00Z&end=2024-06-22T00:00:00Z&points=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(25), body["samples"])
	assert.Equal(t, "suncalc", body["reference"])
	assert.Len(t, body["points"], 25)
	assert.Less(t, body["rmse_deg"].(float64), 2.0)

	w, _ = get(t, router, "/v1/sun/compare?lat=51.48&lon=0&start=2024-06-21T00:00:00Z&end=2024-06-22T00:00:00Z&points=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
