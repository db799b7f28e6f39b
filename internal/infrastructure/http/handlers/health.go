// Package handlers serves the probes used by orchestrators.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler answers GET /health, the liveness probe. It never touches a
// dependency.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// VersionSource reports the current entity store version.
type VersionSource interface {
	Version() uint64
}

// probe checks one optional backend. A nil probe means the backend is not
// configured.
type probe func(ctx context.Context) error

// HealthDependenciesHandler answers GET /health/ready. The store is in
// process and always ready; the Mongo mirror and the Redis sink are probed
// when configured and reported as "disabled" otherwise.
type HealthDependenciesHandler struct {
	store  VersionSource
	probes map[string]probe
}

func NewHealthDependenciesHandler(store VersionSource, db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	probes := map[string]probe{"mongodb": nil, "redis": nil}
	if db != nil {
		probes["mongodb"] = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
	}
	if rdb != nil {
		probes["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return &HealthDependenciesHandler{store: store, probes: probes}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	StoreVersion uint64                      `json:"store_version"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	resp := readinessResponse{
		Status:       "ok",
		StoreVersion: h.store.Version(),
		Dependencies: map[string]dependencyStatus{"store": {Status: "ok"}},
	}
	for name, check := range h.probes {
		if check == nil {
			resp.Dependencies[name] = dependencyStatus{Status: "disabled"}
			continue
		}
		if err := check(ctx); err != nil {
			resp.Dependencies[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[name] = dependencyStatus{Status: "ok"}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
