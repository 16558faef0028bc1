package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"conquest-server/internal/game"
	"conquest-server/internal/shared/response"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	Simulation   string            `json:"simulation"`
	CurrentTick  uint64            `json:"current_tick"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type Runner interface {
	Do(ctx context.Context, fn func(*game.Engine)) error
}

// Check probes one backing service. Returning nil means connected.
type Check func(ctx context.Context) error

type HealthHandler struct {
	runner Runner
	checks map[string]Check
	logger *slog.Logger
}

func NewHealthHandler(runner Runner, checks map[string]Check, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{runner: runner, checks: checks, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "health")
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().Format(time.RFC3339),
		Simulation: "running",
	}
	status := http.StatusOK

	var tick uint64
	if err := h.runner.Do(ctx, func(e *game.Engine) { tick = e.Statistics().CurrentTick }); err != nil {
		logger.Warn("Simulation did not answer", "error", err)
		resp.Status = "unhealthy"
		resp.Simulation = "stopped"
		status = http.StatusServiceUnavailable
	} else {
		resp.CurrentTick = tick
	}

	if len(h.checks) > 0 {
		resp.Dependencies = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Warn("Dependency check failed", "dependency", name, "error", err)
			resp.Dependencies[name] = "disconnected"
			if resp.Status == "healthy" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Dependencies[name] = "connected"
	}

	response.Success(w, status, resp)
}
