package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	LogDir      string
	APIKey      string // API key for authentication

	// Comma-separated list of proxy IPs allowed to set X-Forwarded-For
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	// Worker pool sizing for async event consumers
	WorkerCount int
	QueueSize   int

	// Minutes between scheduled leaderboard refreshes; zero disables them
	TournamentRefreshMin int

	// Locale and currency for user-facing notification text
	NotifyLocale   string
	NotifyCurrency string

	// Guess bounds enforced at submission time; zero max disables the check
	GuessMin float64
	GuessMax float64

	// Rolling win-rate limits per context
	HuntWinLimitMax       int
	HuntWinLimitPeriod    string
	TournamentWinLimitMax int
	TournamentWinLimitPer string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:           getEnv("ENVIRONMENT", "dev"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
		LogDir:                getEnv("LOG_DIR", "logs"),
		APIKey:                getEnv("API_KEY", ""),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBName:                getEnv("DB_NAME", "bonushunt"),
		HuntWinLimitPeriod:    getEnv("HUNT_WIN_LIMIT_PERIOD", "none"),
		TournamentWinLimitPer: getEnv("TOURNAMENT_WIN_LIMIT_PERIOD", "none"),
		NotifyLocale:          getEnv("NOTIFY_LOCALE", "en"),
		NotifyCurrency:        getEnv("NOTIFY_CURRENCY", "EUR"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.HuntWinLimitMax, err = getEnvInt("HUNT_WIN_LIMIT_MAX", 0); err != nil {
		return nil, err
	}
	if cfg.TournamentWinLimitMax, err = getEnvInt("TOURNAMENT_WIN_LIMIT_MAX", 0); err != nil {
		return nil, err
	}
	if cfg.GuessMin, err = getEnvFloat("GUESS_MIN", 0); err != nil {
		return nil, err
	}
	if cfg.GuessMax, err = getEnvFloat("GUESS_MAX", 0); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", 64); err != nil {
		return nil, err
	}
	if cfg.TournamentRefreshMin, err = getEnvInt("TOURNAMENT_REFRESH_MINUTES", 0); err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// SettlementConfig builds the explicit settlement configuration passed into
// the engine, so it never reads ambient settings itself.
func (c *Config) SettlementConfig() domain.SettlementConfig {
	return domain.SettlementConfig{
		HuntWinLimit: domain.WinLimit{
			MaxCount: c.HuntWinLimitMax,
			Period:   domain.LimitPeriod(c.HuntWinLimitPeriod),
		},
		TournamentWinLimit: domain.WinLimit{
			MaxCount: c.TournamentWinLimitMax,
			Period:   domain.LimitPeriod(c.TournamentWinLimitPer),
		},
	}
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
