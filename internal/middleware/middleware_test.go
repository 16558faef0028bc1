package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conquest-server/internal/auth"
	"conquest-server/internal/shared/config"
	"conquest-server/internal/shared/cookies"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequireSession(t *testing.T) {
	sessions, err := auth.NewSessions("0123456789abcdef0123456789abcdef", "key", time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	token, _, err := sessions.GenerateToken("Vega")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var seen string
	h := RequireSession(sessions, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClaimsFromContext(r.Context()).Player
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		setup    func(*http.Request)
		want     int
		wantSeen string
	}{
		{"missing", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: token})
		}, http.StatusNoContent, "Vega"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusNoContent, "Vega"},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, http.StatusUnauthorized, ""},
		{"invalid", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			r := httptest.NewRequest(http.MethodPost, "/api/pause", nil)
			tt.setup(r)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if seen != tt.wantSeen {
				t.Errorf("player = %q, want %q", seen, tt.wantSeen)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2}, discardLogger())
	h := rl.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 4)
	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.1:1001", "10.0.0.1:1002", "10.0.0.2:1000"} {
		r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests, http.StatusNoContent}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestRateLimiterCleanupKeepsBusyClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 1}, discardLogger())
	rl.getLimiter("10.0.0.1").Allow()
	rl.getLimiter("10.0.0.2")

	rl.cleanup(time.Now())

	if _, ok := rl.clients["10.0.0.1"]; !ok {
		t.Error("drained bucket was dropped")
	}
	if _, ok := rl.clients["10.0.0.2"]; ok {
		t.Error("full bucket was kept")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.1:12345"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := getClientIP(r, false); got != "192.168.1.1" {
		t.Errorf("untrusted = %q", got)
	}
	if got := getClientIP(r, true); got != "203.0.113.7" {
		t.Errorf("trusted = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"}, discardLogger())(http.HandlerFunc(okHandler))

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		r := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
		r.Header.Set("Origin", "http://localhost:3000")
		r.Header.Set("Access-Control-Request-Method", method)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("%s preflight: allow origin = %q", method, got)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	r.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}
