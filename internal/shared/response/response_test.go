package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"conquest-server/internal/shared/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not found", errors.NotFoundf("planet %d not found", 9), http.StatusNotFound, "planet 9 not found"},
		{"conflict", errors.Conflictf("insufficient resources"), http.StatusConflict, "insufficient resources"},
		{"rate limited", errors.RateLimited(), http.StatusTooManyRequests, "rate limit exceeded"},
		{"unavailable", errors.WrapUnavailable("simulation stopped", io.EOF), http.StatusServiceUnavailable, "simulation stopped: EOF"},
		{"internal hides detail", io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)

			Error(w, r, discardLogger(), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Message != tt.wantMessage || body.Code != tt.wantStatus {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	type speedRequest struct {
		Speed uint32 `json:"speed"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"speed": 10}`, false},
		{"unknown field", `{"speed": 10, "turbo": true}`, true},
		{"malformed", `{"speed":`, true},
		{"oversized", `{"speed": 1, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPut, "/api/speed", strings.NewReader(tt.body))

			var req speedRequest
			err := Decode(w, r, &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetType(err) != errors.ErrorTypeValidation {
				t.Errorf("error type = %s", errors.GetType(err))
			}
		})
	}
}
