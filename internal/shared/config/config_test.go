package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{Driver: "sqlite", SQLitePath: "conquest.db", Slot: "default"},
		Auth: AuthConfig{
			JWTSecret: strings.Repeat("s", 32),
			AccessKey: "key",
		},
		Game: GameConfig{TickInterval: 100 * time.Millisecond},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "JWT_SECRET"},
		{"missing access key", func(c *Config) { c.Auth.AccessKey = "" }, "ACCESS_KEY"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, "STORE_DRIVER"},
		{"postgres without host", func(c *Config) { c.Store.Driver = "postgres" }, "DB_HOST"},
		{"zero tick", func(c *Config) { c.Game.TickInterval = 0 }, "GAME_TICK_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("validate() = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadGameConfig(t *testing.T) {
	t.Setenv("GAME_SEED", "1234")
	t.Setenv("GAME_TICK_INTERVAL", "250ms")
	t.Setenv("GAME_AUTOSAVE_TICKS", "0")

	cfg, err := loadGameConfig()
	if err != nil {
		t.Fatalf("loadGameConfig: %v", err)
	}
	if cfg.Seed != 1234 || cfg.TickInterval != 250*time.Millisecond || cfg.AutosaveTicks != 0 {
		t.Errorf("game config = %+v", cfg)
	}

	t.Setenv("GAME_SEED", "-1")
	if _, err := loadGameConfig(); err == nil {
		t.Error("negative seed accepted")
	}
}
