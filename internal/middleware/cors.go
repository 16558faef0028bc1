package middleware

import (
	"log/slog"
	"net/http"

	"conquest-server/internal/shared/config"

	"github.com/rs/cors"
)

var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}

func NewCORS(cfg config.FrontendConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	allowedOrigins := []string{cfg.URL}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		Debug:            cfg.CORSDebug,
	})

	logger.With("component", "cors", "operation", "setup").Info("CORS middleware configured",
		"allowed_origins", allowedOrigins,
		"allowed_methods", corsMethods,
		"debug_mode", cfg.CORSDebug,
	)
	return c.Handler
}
