package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        int
	Environment string

	// Database
	ConnString string

	// Auth
	JWTSecret     string
	AdminPassword string

	// Yahoo
	YahooClientID          string
	YahooClientSecret      string
	YahooRefreshToken      string
	OAuthRedirectURL       string
	YahooPreviousLeagueKey string

	// Keeper records of this season feed the keeper cost recomputation.
	KeeperSeason int

	MLBStatsURL string

	// Batches
	ExternalRequestDelay time.Duration
	WriteDelay           time.Duration

	RateLimitPerMinute int
	AllowedOrigins     []string
	// Only behind a proxy that sets X-Forwarded-For can the header be trusted
	// to name the client.
	TrustProxy bool
}

func Load() *Config {
	return &Config{
		Port:                   getEnvInt("PORT", 3000),
		Environment:            getEnv("ENVIRONMENT", "development"),
		ConnString:             getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		AdminPassword:          getEnv("ADMIN_PASSWORD", ""),
		YahooClientID:          getEnv("YAHOO_CLIENT_ID", ""),
		YahooClientSecret:      getEnv("YAHOO_CLIENT_SECRET", ""),
		YahooRefreshToken:      getEnv("YAHOO_REFRESH_TOKEN", ""),
		OAuthRedirectURL:       getEnv("OAUTH_REDIRECT_URL", ""),
		YahooPreviousLeagueKey: getEnv("YAHOO_PREVIOUS_LEAGUE_KEY", ""),
		KeeperSeason:           getEnvInt("KEEPER_SEASON", 2025),
		MLBStatsURL:            getEnv("MLB_STATS_URL", "https://statsapi.mlb.com"),
		ExternalRequestDelay:   time.Duration(getEnvInt("EXTERNAL_REQUEST_DELAY_MS", 250)) * time.Millisecond,
		WriteDelay:             time.Duration(getEnvInt("WRITE_DELAY_MS", 0)) * time.Millisecond,
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:         getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustProxy:             getEnvBool("TRUST_PROXY", false),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// YahooConfigured reports whether there is enough to build a Yahoo OAuth client.
func (c *Config) YahooConfigured() bool {
	return c.YahooClientID != "" && c.YahooClientSecret != ""
}

// ValidateServer checks the settings only the web server needs.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD environment variable is required")
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ConnString == "" {
		return errors.New("POSTGRES_CONN_STR environment variable is required")
	}
	if c.RateLimitPerMinute < 1 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	result := make([]string, 0, 4)
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
