package config

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"conquest-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Game      GameConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
	Slot       string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	AccessKey       string
	CookieSecure    bool
	CookieSameSite  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type GameConfig struct {
	TickInterval time.Duration
	// AutosaveTicks counts runner ticks between autosaves. Zero disables it.
	AutosaveTicks uint64
	Seed          uint64
	BalanceFile   string
}

var storeDrivers = []string{"sqlite", "postgres", "memory"}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	game, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:    loadServerConfig(),
		Store:     loadStoreConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Auth:      loadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Game:      game,
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout := utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)
	writeTimeout := utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	idleTimeout := utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Driver:     utils.GetEnv("STORE_DRIVER", "sqlite"),
		SQLitePath: utils.GetEnv("STORE_SQLITE_PATH", "conquest.db"),
		Slot:       utils.GetEnv("STORE_SLOT", "default"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	connMaxLifetime := utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "conquest"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

func loadAuthConfig() AuthConfig {
	tokenExpiration := utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)

	environment := utils.GetEnv("ENVIRONMENT", "development")
	cookieSecure := environment == "production"

	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
		AccessKey:       utils.GetEnv("ACCESS_KEY", ""),
		CookieSecure:    cookieSecure,
		CookieSameSite:  utils.GetEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)

	return RateLimitConfig{
		Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadGameConfig() (GameConfig, error) {
	seed, err := strconv.ParseUint(utils.GetEnv("GAME_SEED", "0"), 10, 64)
	if err != nil {
		return GameConfig{}, fmt.Errorf("GAME_SEED must be an unsigned integer: %w", err)
	}
	autosave := utils.GetEnvInt("GAME_AUTOSAVE_TICKS", 60)
	if autosave < 0 {
		return GameConfig{}, fmt.Errorf("GAME_AUTOSAVE_TICKS must not be negative")
	}

	return GameConfig{
		TickInterval:  utils.GetEnvDuration("GAME_TICK_INTERVAL", 100*time.Millisecond),
		AutosaveTicks: uint64(autosave),
		Seed:          seed,
		BalanceFile:   utils.GetEnv("GAME_BALANCE_FILE", "balance.yaml"),
	}, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Auth.AccessKey == "" {
		return fmt.Errorf("ACCESS_KEY is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if !slices.Contains(storeDrivers, c.Store.Driver) {
		return fmt.Errorf("STORE_DRIVER must be one of %v", storeDrivers)
	}

	if c.Store.Driver == "postgres" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres store")
	}

	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("GAME_TICK_INTERVAL must be positive")
	}

	return nil
}
