package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestSessions(t *testing.T) *Sessions {
	t.Helper()
	s, err := NewSessions(testSecret, "open-sesame", time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	return s
}

func TestNewSessionsRejectsWeakConfig(t *testing.T) {
	if _, err := NewSessions("short", "key", time.Hour); err == nil {
		t.Error("short secret accepted")
	}
	if _, err := NewSessions(testSecret, "", time.Hour); err == nil {
		t.Error("empty access key accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestSessions(t)

	token, expires, err := s.GenerateToken("  Vega  ")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v is in the past", expires)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Player != "Vega" || claims.Subject != "Vega" || claims.Issuer != issuer {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestSessions(t)
	token, _, err := s.GenerateToken("Vega")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewSessions(strings.Repeat("x", 32), "open-sesame", time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}

	expired := newTestSessions(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.GenerateToken("Vega")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name      string
		validator *Sessions
		token     string
	}{
		{"garbage", s, "not-a-token"},
		{"tampered", s, token[:len(token)-2] + "xx"},
		{"other secret", other, token},
		{"expired", s, stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.validator.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken accepted a bad token")
			}
		})
	}
}

func TestCheckAccessKey(t *testing.T) {
	s := newTestSessions(t)
	if !s.CheckAccessKey("open-sesame") {
		t.Error("correct key refused")
	}
	if s.CheckAccessKey("open") || s.CheckAccessKey("") {
		t.Error("wrong key accepted")
	}
}

func TestGenerateTokenRequiresPlayer(t *testing.T) {
	if _, _, err := newTestSessions(t).GenerateToken("   "); err == nil {
		t.Error("blank player accepted")
	}
}
