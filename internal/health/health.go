package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/googleauth"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker performs health checks on service dependencies.
type Checker struct {
	credential *googleauth.Credential
	version    string
}

// NewChecker creates a new health checker with the given dependencies.
func NewChecker(credential *googleauth.Credential, version string) *Checker {
	return &Checker{
		credential: credential,
		version:    version,
	}
}

// Check reports whether the service holds everything it needs to dispatch.
func (c *Checker) Check(_ context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.credential == nil {
		status.Status = StatusUnhealthy
		status.Checks["credential"] = CheckResult{
			Status: StatusUnhealthy,
			Error:  "service account credential not loaded",
		}
	} else {
		status.Checks["credential"] = CheckResult{
			Status: StatusHealthy,
		}
	}

	return status
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
