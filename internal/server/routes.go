package server

import (
	"log/slog"
	"net/http"

	"conquest-server/internal/auth"
	gameHandlers "conquest-server/internal/game/handlers"
	"conquest-server/internal/hub"
	"conquest-server/internal/middleware"
	planetHandlers "conquest-server/internal/planet/handlers"
	serverHandlers "conquest-server/internal/server/handlers"
	"conquest-server/internal/shared/config"
)

// Runner is the simulation gateway every handler goes through.
type Runner interface {
	gameHandlers.Runner
}

type Routes struct {
	cfg      *config.Config
	runner   Runner
	sessions *auth.Sessions
	hub      *hub.Hub
	checks   map[string]serverHandlers.Check
	logger   *slog.Logger
}

func NewRoutes(cfg *config.Config, runner Runner, sessions *auth.Sessions, h *hub.Hub, checks map[string]serverHandlers.Check, logger *slog.Logger) *Routes {
	return &Routes{
		cfg:      cfg,
		runner:   runner,
		sessions: sessions,
		hub:      h,
		checks:   checks,
		logger:   logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.runner, r.checks, r.logger)
	sessionHandler := serverHandlers.NewSessionHandler(r.sessions, r.cfg, r.logger)
	gameHandler := gameHandlers.NewGameHandler(r.runner, r.logger)
	planetHandler := planetHandlers.NewPlanetHandler(r.runner, r.logger)

	protected := middleware.RequireSession(r.sessions, r.logger)
	command := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protected(h))
	}

	// Public queries
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/stats", gameHandler.GetStats)
	mux.HandleFunc("GET /api/galaxy", gameHandler.GetGalaxy)
	mux.HandleFunc("GET /api/systems/{id}", gameHandler.GetSystem)
	mux.HandleFunc("GET /api/planets", planetHandler.ListOwned)
	mux.HandleFunc("GET /api/planets/{id}", planetHandler.Get)
	mux.HandleFunc("GET /api/planets/{id}/conquest-cost", planetHandler.ConquestCost)
	mux.HandleFunc("GET /api/production/order", gameHandler.GetProductionOrder)
	mux.HandleFunc("GET /api/production/{product}/cost", gameHandler.GetProductionCost)
	mux.HandleFunc("GET /api/prestige", gameHandler.GetPrestige)
	mux.HandleFunc("GET /api/transport", gameHandler.GetTransport)
	mux.HandleFunc("GET /api/ws", r.hub.ServeWs)

	// Sessions
	mux.HandleFunc("POST /api/session", sessionHandler.Create)
	mux.HandleFunc("DELETE /api/session", sessionHandler.Delete)

	// Commands
	command("POST /api/planets/{id}/conquer", planetHandler.Conquer)
	command("POST /api/planets/{id}/terraform", planetHandler.Terraform)
	command("POST /api/planets/{id}/buildings", planetHandler.AddBuilding)
	command("POST /api/planets/{id}/buildings/{buildingID}/orders", planetHandler.AddOrder)
	command("POST /api/planets/{id}/buildings/{buildingID}/upgrade", planetHandler.Upgrade)
	command("POST /api/planets/{id}/buildings/{buildingID}/toggle", planetHandler.Toggle)
	command("POST /api/transports", gameHandler.StartTransport)
	command("POST /api/routes", gameHandler.CreateRoute)
	command("POST /api/prestige", gameHandler.PerformPrestige)
	command("PUT /api/speed", gameHandler.SetSpeed)
	command("POST /api/pause", gameHandler.TogglePause)
	command("POST /api/save", gameHandler.Save)

	logger.Info("Routes configured successfully")
	return mux
}

// Handler wraps the routes with rate limiting and CORS.
func (r *Routes) Handler(limiter *middleware.RateLimiter) http.Handler {
	cors := middleware.NewCORS(r.cfg.Frontend, r.logger)
	return cors(limiter.Middleware(r.Setup()))
}
