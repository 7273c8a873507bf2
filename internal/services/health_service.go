package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version    string
	sourcePath string
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Checks    map[string]interface{} `json:"checks,omitempty"`
}

// NewHealthService creates a new health service.
func NewHealthService(version, sourcePath string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:    version,
		sourcePath: sourcePath,
		startTime:  time.Now(),
		logger:     logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns the overall service health including a source file
// reachability check.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Checks: map[string]interface{}{
			"source": s.sourceCheck(ctx),
		},
	}
	if status.Checks["source"].(map[string]interface{})["status"] != "ok" {
		status.Status = "degraded"
	}
	return status
}

// ReadinessCheck reports whether the service can serve data requests.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	check := s.sourceCheck(ctx)
	status := "ready"
	if check["status"] != "ok" {
		status = "not_ready"
	}
	return HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Checks:    map[string]interface{}{"source": check},
	}
}

// LivenessCheck reports process liveness only.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
	}
}

// Version returns build information.
func (s *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    s.version,
		"go_version": runtime.Version(),
	}
}

// sourceCheck stats the backing source file without parsing it.
func (s *HealthService) sourceCheck(ctx context.Context) map[string]interface{} {
	info, err := os.Stat(s.sourcePath)
	if err != nil {
		s.logger.WarnContext(ctx, "source check failed",
			slog.String("path", s.sourcePath),
			slog.String("error", err.Error()))
		return map[string]interface{}{
			"status": "missing",
			"path":   s.sourcePath,
		}
	}
	return map[string]interface{}{
		"status":     "ok",
		"path":       s.sourcePath,
		"size_bytes": info.Size(),
		"modified":   info.ModTime().UTC(),
	}
}
