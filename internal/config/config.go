package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Retail  RetailConfig
	OAuth   OAuthConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type RetailConfig struct {
	ProjectId                   string
	Location                    string
	CatalogId                   string
	Branch                      string
	SearchServingConfig         string
	RecommendationServingConfig string
	Endpoint                    string
}

type OAuthConfig struct {
	GoogleClientId     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/storefront.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			// Empty means in-memory sessions; set to enable Redis.
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Retail: RetailConfig{
			ProjectId:                   getEnv("RETAIL_PROJECT_ID", ""),
			Location:                    getEnv("RETAIL_LOCATION", "global"),
			CatalogId:                   getEnv("RETAIL_CATALOG_ID", "default_catalog"),
			Branch:                      getEnv("RETAIL_BRANCH", "default_branch"),
			SearchServingConfig:         getEnv("RETAIL_SEARCH_SERVING_CONFIG", ""),
			RecommendationServingConfig: getEnv("RETAIL_RECOMMENDATION_SERVING_CONFIG", ""),
			Endpoint:                    getEnv("RETAIL_ENDPOINT", "https://retail.googleapis.com"),
		},
		OAuth: OAuthConfig{
			GoogleClientId:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", ""),
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),
		},
	}

	if cfg.OAuth.GoogleRedirectURL == "" {
		cfg.OAuth.GoogleRedirectURL = cfg.App.BaseURL + "/auth/google/callback"
	}
	return cfg
}

// Validate lists every required key that is missing. The storefront cannot
// reach the catalog service without them, so startup must stop.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	require("RETAIL_PROJECT_ID", c.Retail.ProjectId)
	require("RETAIL_LOCATION", c.Retail.Location)
	require("RETAIL_CATALOG_ID", c.Retail.CatalogId)
	require("RETAIL_SEARCH_SERVING_CONFIG", c.Retail.SearchServingConfig)
	require("RETAIL_RECOMMENDATION_SERVING_CONFIG", c.Retail.RecommendationServingConfig)
	require("GOOGLE_CLIENT_ID", c.OAuth.GoogleClientId)
	require("GOOGLE_CLIENT_SECRET", c.OAuth.GoogleClientSecret)
	require("SESSION_SECRET", c.Session.Secret)

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
