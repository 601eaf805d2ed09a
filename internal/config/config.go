package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Market data
	QuoteBaseURL  string
	QuoteCacheTTL time.Duration

	// News: comma-separated RSS feed URLs. Empty means synthesized headlines.
	NewsFeedURLs []string

	// Screener cache warming, cron spec. Empty disables the job.
	ScreenerWarmCron string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		QuoteBaseURL:     getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
		ScreenerWarmCron: getEnv("SCREENER_WARM_CRON", ""),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	ttlStr := getEnv("QUOTE_CACHE_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid QUOTE_CACHE_TTL value '%s', falling back to 5m\n", ttlStr)
		ttl = 5 * time.Minute
	}
	config.QuoteCacheTTL = ttl

	if feeds := getEnv("NEWS_FEED_URLS", ""); feeds != "" {
		for _, u := range strings.Split(feeds, ",") {
			if u = strings.TrimSpace(u); u != "" {
				config.NewsFeedURLs = append(config.NewsFeedURLs, u)
			}
		}
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
