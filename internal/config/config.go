package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Redis       RedisConfig
	Credentials CredentialsConfig
	Dashboard   DashboardConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreConfig struct {
	// URI overrides the URI carried in the service-account key when set.
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CredentialsConfig struct {
	// SecretJSON is the inline service-account key managed as a deployment
	// secret; when empty the filesystem providers are tried.
	SecretJSON  string
	SearchDirs  []string
	FilePattern string
}

type DashboardConfig struct {
	CacheTTL        time.Duration
	TopModels       int
	TopRoutes       int
	ChartWindowDays int
	AdminEmails     []string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORE_DATABASE", "railpick")
	viper.SetDefault("STORE_TIMEOUT", 10)
	viper.SetDefault("DASHBOARD_CACHE_TTL", 300)
	viper.SetDefault("DASHBOARD_TOP_MODELS", 15)
	viper.SetDefault("DASHBOARD_TOP_ROUTES", 10)
	viper.SetDefault("DASHBOARD_CHART_WINDOW_DAYS", 30)
	viper.SetDefault("CREDENTIAL_FILE_PATTERN", "railpick-adminsdk-*.json")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			URI:      viper.GetString("STORE_URI"),
			Database: viper.GetString("STORE_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("STORE_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		Credentials: CredentialsConfig{
			SecretJSON:  viper.GetString("RAILPICK_SERVICE_ACCOUNT_KEY"),
			SearchDirs:  []string{".", ".."},
			FilePattern: viper.GetString("CREDENTIAL_FILE_PATTERN"),
		},
		Dashboard: DashboardConfig{
			CacheTTL:        time.Duration(viper.GetInt("DASHBOARD_CACHE_TTL")) * time.Second,
			TopModels:       viper.GetInt("DASHBOARD_TOP_MODELS"),
			TopRoutes:       viper.GetInt("DASHBOARD_TOP_ROUTES"),
			ChartWindowDays: viper.GetInt("DASHBOARD_CHART_WINDOW_DAYS"),
			AdminEmails:     viper.GetStringSlice("DASHBOARD_ADMIN_EMAILS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Store.Database == "" {
		return nil, fmt.Errorf("STORE_DATABASE must not be empty")
	}
	if cfg.Dashboard.CacheTTL <= 0 {
		return nil, fmt.Errorf("DASHBOARD_CACHE_TTL must be positive")
	}

	return cfg, nil
}
