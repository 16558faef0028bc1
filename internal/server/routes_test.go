package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conquest-server/internal/auth"
	"conquest-server/internal/game"
	"conquest-server/internal/hub"
	"conquest-server/internal/save"
	serverHandlers "conquest-server/internal/server/handlers"
	"conquest-server/internal/shared/config"
)

const accessKey = "open-sesame"

type testServer struct {
	server *httptest.Server
	store  *save.MemoryStore
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			TokenExpiration: time.Hour,
			AccessKey:       accessKey,
		},
		Frontend: config.FrontendConfig{URL: "http://localhost:3000"},
	}
	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.AccessKey, cfg.Auth.TokenExpiration)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}

	store := save.NewMemoryStore()
	engine := game.New(game.DefaultBalance(), game.WithSeed(42), game.WithLogger(logger))
	// a long interval keeps the tick at zero for the whole test
	runner := game.NewRunner(engine, game.RunnerConfig{TickInterval: time.Hour, Slot: "test"}, store, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx)
	}()

	checks := map[string]serverHandlers.Check{
		"store": func(context.Context) error { return nil },
	}
	routes := NewRoutes(cfg, runner, sessions, hub.New("*", logger), checks, logger)
	srv := httptest.NewServer(routes.Setup())

	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return &testServer{server: srv, store: store}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	res, err := ts.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func (ts *testServer) login(t *testing.T) {
	t.Helper()
	res, data := ts.do(t, http.MethodPost, "/api/session", map[string]string{"player": "Vega", "access_key": accessKey})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("session status = %d: %s", res.StatusCode, data)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Token == "" {
		t.Fatalf("session body %s: %v", data, err)
	}
	ts.token = body.Token
}

func (ts *testServer) homePlanet(t *testing.T) uint64 {
	t.Helper()
	res, data := ts.do(t, http.MethodGet, "/api/planets", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list planets status = %d", res.StatusCode)
	}
	var ids []uint64
	if err := json.Unmarshal(data, &ids); err != nil || len(ids) != 1 {
		t.Fatalf("owned planets = %s (%v)", data, err)
	}
	return ids[0]
}

func TestPublicQueries(t *testing.T) {
	ts := newTestServer(t)
	home := ts.homePlanet(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/server/health", http.StatusOK},
		{"/api/stats", http.StatusOK},
		{"/api/galaxy", http.StatusOK},
		{"/api/prestige", http.StatusOK},
		{"/api/transport", http.StatusOK},
		{"/api/production/order", http.StatusOK},
		{"/api/production/alloys/cost", http.StatusOK},
		{"/api/production/unobtainium/cost", http.StatusNotFound},
		{fmt.Sprintf("/api/planets/%d", home), http.StatusOK},
		{fmt.Sprintf("/api/planets/%d/conquest-cost", home), http.StatusOK},
		{"/api/planets/999999", http.StatusNotFound},
		{"/api/planets/abc", http.StatusBadRequest},
		{"/api/systems/999999", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, data := ts.do(t, http.MethodGet, tt.path, nil)
			if res.StatusCode != tt.want {
				t.Errorf("status = %d, want %d: %s", res.StatusCode, tt.want, data)
			}
		})
	}
}

func TestProductionCostBody(t *testing.T) {
	ts := newTestServer(t)

	_, data := ts.do(t, http.MethodGet, "/api/production/alloys/cost", nil)
	var body struct {
		Cost map[string]uint64 `json:"cost"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Cost["minerals"] != 100 || body.Cost["energy"] != 50 {
		t.Errorf("alloys cost = %v", body.Cost)
	}
}

func TestCommandsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	res, _ := ts.do(t, http.MethodPost, "/api/pause", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous pause status = %d", res.StatusCode)
	}

	res, _ = ts.do(t, http.MethodPost, "/api/session", map[string]string{"player": "Vega", "access_key": "wrong"})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d", res.StatusCode)
	}
}

func TestCommands(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)
	home := ts.homePlanet(t)

	res, data := ts.do(t, http.MethodPost, "/api/pause", nil)
	if res.StatusCode != http.StatusOK || !bytes.Contains(data, []byte(`"paused":true`)) {
		t.Errorf("pause = %d %s", res.StatusCode, data)
	}

	res, _ = ts.do(t, http.MethodPut, "/api/speed", map[string]int{"speed": 7})
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid speed status = %d", res.StatusCode)
	}
	res, _ = ts.do(t, http.MethodPut, "/api/speed", map[string]int{"speed": 100})
	if res.StatusCode != http.StatusOK {
		t.Errorf("speed status = %d", res.StatusCode)
	}

	_, data = ts.do(t, http.MethodGet, "/api/stats", nil)
	var stats game.GameStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if !stats.IsPaused || stats.Speed != 100 || stats.ConqueredPlanets != 1 {
		t.Errorf("stats = %+v", stats)
	}

	res, data = ts.do(t, http.MethodPost, fmt.Sprintf("/api/planets/%d/conquer", home), nil)
	if res.StatusCode != http.StatusConflict || !bytes.Contains(data, []byte("already_conquered")) {
		t.Errorf("re-conquer = %d %s", res.StatusCode, data)
	}

	res, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/api/planets/%d/buildings", home), map[string]string{"type": "moonbase"})
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown building status = %d", res.StatusCode)
	}

	res, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/api/planets/%d/buildings/424242/toggle", home), nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("missing building toggle status = %d", res.StatusCode)
	}

	res, _ = ts.do(t, http.MethodPost, "/api/transports", map[string]any{"from": home, "to": 999999, "resource": "energy", "amount": 10})
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("transport to nowhere status = %d", res.StatusCode)
	}

	res, _ = ts.do(t, http.MethodPost, "/api/prestige", nil)
	if res.StatusCode != http.StatusConflict {
		t.Errorf("early prestige status = %d", res.StatusCode)
	}
}

func TestSaveWritesStore(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	res, data := ts.do(t, http.MethodPost, "/api/save", nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("save status = %d: %s", res.StatusCode, data)
	}

	blob, err := ts.store.Load(context.Background(), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	restored := game.New(game.DefaultBalance(), game.WithSeed(1))
	if err := restored.Load(blob); err != nil {
		t.Fatalf("restore saved blob: %v", err)
	}
	if restored.PlanetCount() == 0 {
		t.Error("restored game has no planets")
	}
}

func TestMethodMismatch(t *testing.T) {
	ts := newTestServer(t)

	res, _ := ts.do(t, http.MethodDelete, "/api/stats", nil)
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /api/stats status = %d", res.StatusCode)
	}
}
