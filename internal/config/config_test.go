package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("STORE_URI", "mongodb://localhost:27017")
	os.Setenv("STORE_DATABASE", "railpick_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("DASHBOARD_ADMIN_EMAILS", "admin@railpick.app ops@railpick.app")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Store.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Dashboard.CacheTTL.Seconds() != 300 {
		t.Fatalf("expected default 300s cache TTL, got %v", cfg.Dashboard.CacheTTL)
	}
	if cfg.Dashboard.TopModels != 15 || cfg.Dashboard.TopRoutes != 10 {
		t.Fatalf("unexpected top-N defaults: %+v", cfg.Dashboard)
	}
	if len(cfg.Dashboard.AdminEmails) != 2 {
		t.Fatalf("expected 2 admin emails, got %v", cfg.Dashboard.AdminEmails)
	}
	if cfg.Credentials.FilePattern != "railpick-adminsdk-*.json" {
		t.Fatalf("unexpected credential pattern: %s", cfg.Credentials.FilePattern)
	}
}
