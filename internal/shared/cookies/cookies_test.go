package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conquest-server/internal/shared/config"
)

func testConfig(frontend string) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			TokenExpiration: time.Hour,
			CookieSecure:    true,
			CookieSameSite:  "strict",
		},
		Frontend: config.FrontendConfig{URL: frontend},
	}
}

func TestSetAuthCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetAuthCookie(w, testConfig("https://conquest.example.com:8443"), "token-value")

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies", len(cookies))
	}
	c := cookies[0]
	if c.Name != AuthCookieName || c.Value != "token-value" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if c.Domain != "conquest.example.com" || !c.Secure || !c.HttpOnly || c.MaxAge != 3600 {
		t.Errorf("cookie attributes = %+v", c)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v", c.SameSite)
	}
}

func TestAuthToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/pause", nil)
	if got := AuthToken(r); got != "" {
		t.Errorf("AuthToken without cookie = %q", got)
	}
	r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "abc"})
	if got := AuthToken(r); got != "abc" {
		t.Errorf("AuthToken = %q, want abc", got)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := map[string]string{
		"http://localhost:3000":    "",
		"http://127.0.0.1:5173":    "",
		"https://play.example.org": "play.example.org",
		"not a url":                "",
	}
	for in, want := range tests {
		if got := extractDomain(in); got != want {
			t.Errorf("extractDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
