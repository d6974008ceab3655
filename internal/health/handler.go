// Package health exposes the liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"

	httputil "gigbook/pkg/http"
	"gigbook/pkg/logger"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}

type ReadyResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthHandler answers the probes. Liveness never touches dependencies;
// readiness pings Mongo so a broken database takes the instance out of
// rotation instead of failing every request.
type HealthHandler struct {
	mongoClient *mongo.Client
	startedAt   time.Time
	log         *logger.Logger
}

func NewHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		startedAt:   time.Now(),
		log:         log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	deps := map[string]string{"mongodb": "ok"}
	status := http.StatusOK
	overall := "ready"

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		h.log.Error("Readiness check failed", "dependency", "mongodb", "error", err)
		deps["mongodb"] = "error"
		status = http.StatusServiceUnavailable
		overall = "unavailable"
	}

	if err := httputil.WriteJSON(w, status, ReadyResponse{
		Status:       overall,
		Dependencies: deps,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
