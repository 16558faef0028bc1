package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conquest-server/internal/game"
)

type stoppedRunner struct{}

func (stoppedRunner) Do(context.Context, func(*game.Engine)) error { return game.ErrRunnerStopped }
func (stoppedRunner) SaveNow(context.Context) error { return game.ErrRunnerStopped }

func TestStoppedRunnerIsUnavailable(t *testing.T) {
	h := NewGameHandler(stoppedRunner{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"stats", h.GetStats},
		{"galaxy", h.GetGalaxy},
		{"pause", h.TogglePause},
		{"prestige", h.PerformPrestige},
		{"save", h.Save},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodPost, "/", nil))
			if w.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want 503", w.Code)
			}
		})
	}
}
