package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepulse/internal/services"
)

func newHealthHandler(t *testing.T, sourceExists bool) *HealthHandler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.txt")
	if sourceExists {
		require.NoError(t, os.WriteFile(path, []byte("Date,Close\n"), 0o644))
	}
	return NewHealthHandler(services.NewHealthService("1.0.0", path, testLogger()), testLogger())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthCheckEndpoint(t *testing.T) {
	h := newHealthHandler(t, true)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthCheckDegraded(t *testing.T) {
	h := newHealthHandler(t, false)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
}

func TestReadinessEndpoint(t *testing.T) {
	h := newHealthHandler(t, true)

	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "ready", body["status"])
}

func TestLivenessEndpoint(t *testing.T) {
	h := newHealthHandler(t, false)

	rec := httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "alive", body["status"])
}

func TestVersionEndpoint(t *testing.T) {
	h := newHealthHandler(t, true)

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "1.0.0", body["version"])
}

func TestIndexListsEndpoints(t *testing.T) {
	rec := httptest.NewRecorder()
	Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/api/tables/json")
	assert.Contains(t, rec.Body.String(), "/api/charts/macd")
}
