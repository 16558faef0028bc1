package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"conquest-server/internal/auth"
	"conquest-server/internal/shared/cookies"
	"conquest-server/internal/shared/errors"
	"conquest-server/internal/shared/response"
)

type contextKey string

const claimsContextKey contextKey = "claims"

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// RequireSession rejects requests without a valid session token. The token
// is read from the auth cookie first, then from a Bearer header.
func RequireSession(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
			)

			token := cookies.AuthToken(r)
			if token == "" {
				token = bearerToken(r)
			}
			if token == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			logger.Debug("Session authenticated", "player", claims.Player)
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}
