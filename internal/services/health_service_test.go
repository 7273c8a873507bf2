package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckWithSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.txt")
	require.NoError(t, os.WriteFile(path, []byte("Date,Close\n"), 0o644))

	svc := NewHealthService("1.0.0", path, nil)
	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	source := status.Checks["source"].(map[string]interface{})
	assert.Equal(t, "ok", source["status"])
}

func TestHealthCheckDegradedWhenSourceMissing(t *testing.T) {
	svc := NewHealthService("1.0.0", filepath.Join(t.TempDir(), "absent.txt"), nil)
	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "degraded", status.Status)
}

func TestReadinessCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.txt")
	require.NoError(t, os.WriteFile(path, []byte("Date,Close\n"), 0o644))

	ready := NewHealthService("1.0.0", path, nil).ReadinessCheck(context.Background())
	assert.Equal(t, "ready", ready.Status)

	notReady := NewHealthService("1.0.0", filepath.Join(t.TempDir(), "absent.txt"), nil).
		ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", notReady.Status)
}

func TestLivenessCheck(t *testing.T) {
	status := NewHealthService("1.0.0", "unused", nil).LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
}

func TestVersion(t *testing.T) {
	info := NewHealthService("1.2.3", "unused", nil).Version()
	assert.Equal(t, "1.2.3", info["version"])
	assert.NotEmpty(t, info["go_version"])
}
