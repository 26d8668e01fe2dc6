package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort         string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration

	DBDriver       string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxLife  time.Duration
	SeedFile       string
	DBDebug        bool

	JWTSecret           string
	AccessTokenTTL      time.Duration
	ConfirmationCodeTTL time.Duration

	RedisURL    string
	RabbitMQURL string
	GeminiKey   string
	GeminiModel string

	LogLevel  string
	LogFormat string

	CompaniesCacheTTL  time.Duration
	ThrottleLimit      int
	ThrottleWindow     time.Duration
	AuthThrottleLimit  int
	AuthThrottleWindow time.Duration

	SweepInterval        time.Duration
	StaleRegistrationAge time.Duration
}

// Load reads the optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		ShutdownTimeout:  getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		SeedFile:       getEnv("SEED_FILE", ""),
		DBDebug:        getBool("DB_DEBUG", false),

		JWTSecret:           getEnv("JWT_SECRET", ""),
		AccessTokenTTL:      getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		ConfirmationCodeTTL: getDuration("CONFIRMATION_CODE_TTL", time.Hour),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		GeminiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		CompaniesCacheTTL:  getDuration("COMPANIES_CACHE_TTL", 10*time.Second),
		ThrottleLimit:      getInt("THROTTLE_LIMIT", 1000),
		ThrottleWindow:     getDuration("THROTTLE_WINDOW", 24*time.Hour),
		AuthThrottleLimit:  getInt("AUTH_THROTTLE_LIMIT", 20),
		AuthThrottleWindow: getDuration("AUTH_THROTTLE_WINDOW", time.Minute),

		SweepInterval:        getDuration("SWEEP_INTERVAL", 15*time.Minute),
		StaleRegistrationAge: getDuration("STALE_REGISTRATION_AGE", 7*24*time.Hour),
	}

	if cfg.DBDriver == "postgresql" || cfg.DBDriver == "pgx" {
		cfg.DBDriver = "postgres"
	}

	missing := make([]string, 0, 2)
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.ThrottleLimit <= 0 || cfg.AuthThrottleLimit <= 0 {
		return nil, fmt.Errorf("throttle limits must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", value, fallback)
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration %q, using %s", value, fallback)
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
