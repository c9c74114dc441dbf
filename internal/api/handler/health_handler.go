package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	liveMessage  = "Cinemind API is live"
	probeTimeout = 3 * time.Second
)

// Check pings one dependency.
type Check func(ctx context.Context) error

// Dependency is a named readiness check. Optional dependencies that are not
// configured are simply not registered.
type Dependency struct {
	Name  string
	Check Check
}

// HealthHandler serves GET /api/health and GET /api/health/ready.
type HealthHandler struct {
	store Check
	deps  []Dependency
	now   func() time.Time
}

// NewHealthHandler creates a HealthHandler. store is the relational store
// ping; deps are checked in addition to it by the readiness probe.
func NewHealthHandler(store Check, deps ...Dependency) *HealthHandler {
	sorted := append([]Dependency(nil), deps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &HealthHandler{store: store, deps: sorted, now: time.Now}
}

type livenessResponse struct {
	Status    string `json:"status"`
	DB        string `json:"db"`
	Timestamp string `json:"timestamp"`
}

// Liveness always answers 200 and reports whether the store responds.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	db := "connected"
	if h.store == nil || h.store(ctx) != nil {
		db = "unavailable"
	}

	return c.JSON(http.StatusOK, livenessResponse{
		Status:    liveMessage,
		DB:        db,
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness checks the store and every configured dependency.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := append([]Dependency{{Name: "database", Check: h.store}}, h.deps...)
	deps := make(map[string]dependencyStatus, len(checks))
	healthy := true

	for _, d := range checks {
		if d.Check == nil {
			deps[d.Name] = dependencyStatus{Status: "unhealthy", Error: "not configured"}
			healthy = false
			continue
		}
		if err := d.Check(ctx); err != nil {
			// The probe is internal; the raw error helps operators.
			deps[d.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[d.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
