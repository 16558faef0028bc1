package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"conquest-server/internal/auth"
	"conquest-server/internal/shared/config"
	"conquest-server/internal/shared/cookies"
	"conquest-server/internal/shared/errors"
	"conquest-server/internal/shared/response"
)

type sessionRequest struct {
	Player    string `json:"player"`
	AccessKey string `json:"access_key"`
}

type sessionResponse struct {
	Player    string    `json:"player"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionHandler trades the server access key for a command session.
type SessionHandler struct {
	sessions *auth.Sessions
	cfg      *config.Config
	logger   *slog.Logger
}

func NewSessionHandler(sessions *auth.Sessions, cfg *config.Config, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, cfg: cfg, logger: logger}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_session")

	var req sessionRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !h.sessions.CheckAccessKey(req.AccessKey) {
		response.Error(w, r, logger, errors.Unauthorized("invalid access key"))
		return
	}

	player := strings.TrimSpace(req.Player)
	token, expires, err := h.sessions.GenerateToken(player)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("cannot create session", err))
		return
	}

	cookies.SetAuthCookie(w, h.cfg, token)
	logger.Info("Session created", "player", player)
	response.Success(w, http.StatusCreated, sessionResponse{Player: player, Token: token, ExpiresAt: expires})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cookies.ClearAuthCookie(w, h.cfg)
	response.Success(w, http.StatusNoContent, nil)
}
