package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigReadsNestedKeys(t *testing.T) {
	dir := t.TempDir()
	raw := `server:
  port: "8080"
  mode: debug
database:
  host: localhost
  port: 3306
  user: quiz
  password: secret
  dbname: quiz_ai
  charset: utf8mb4
  parsetime: true
jwt:
  secret: test-secret
  expire_hours: 24
gemini:
  base_url: https://generativelanguage.googleapis.com/v1beta
  api_key: test-key
  model: gemini-2.0-flash
  max_retries: 2
rate_limit:
  max_requests: 100
  window_minutes: 1
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// 带下划线的键依赖 mapstructure 标签
	if cfg.Gemini.BaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Errorf("gemini base_url = %q", cfg.Gemini.BaseURL)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("gemini api_key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.MaxRetries != 2 {
		t.Errorf("gemini max_retries = %d", cfg.Gemini.MaxRetries)
	}
	if cfg.JWT.ExpireTime != 24*time.Hour {
		t.Errorf("jwt expire = %v", cfg.JWT.ExpireTime)
	}
	if cfg.RateLimit.MaxRequests != 100 {
		t.Errorf("rate_limit max_requests = %d", cfg.RateLimit.MaxRequests)
	}
}

func TestRunMigrations(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug defaults on", "debug", false, true},
		{"release defaults off", "release", false, false},
		{"release with force", "release", true, true},
	}

	for _, tc := range cases {
		cfg := &Config{ForceMigrate: tc.force}
		cfg.Server.Mode = tc.mode
		if got := cfg.RunMigrations(); got != tc.want {
			t.Errorf("%s: RunMigrations() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
