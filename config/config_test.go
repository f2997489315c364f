package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp switches into a fresh temp directory for the duration of the test
func chdirTemp(t *testing.T) string {
	t.Helper()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	tempDir := t.TempDir()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	return tempDir
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Server.ReadTimeout != 15*time.Second {
			t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
		}
		if cfg.YouTube.BaseURL != "https://www.googleapis.com/youtube/v3" {
			t.Errorf("YouTube.BaseURL = %s", cfg.YouTube.BaseURL)
		}
		if cfg.VideoSearchEnabled() {
			t.Error("VideoSearchEnabled() = true, want false without API key")
		}
		if cfg.Videos.MaxResults != 3 {
			t.Errorf("Videos.MaxResults = %d, want 3", cfg.Videos.MaxResults)
		}
		if cfg.Videos.QuerySuffix != "레시피" {
			t.Errorf("Videos.QuerySuffix = %s, want 레시피", cfg.Videos.QuerySuffix)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Journal.Type != "memory" {
			t.Errorf("Journal.Type = %s, want memory", cfg.Journal.Type)
		}
		if cfg.Nutrition.TablePath != "" {
			t.Errorf("Nutrition.TablePath = %s, want empty", cfg.Nutrition.TablePath)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("FRIDGECHEF_SERVER_PORT", "9090")
		t.Setenv("FRIDGECHEF_SERVER_ENVIRONMENT", "production")
		t.Setenv("FRIDGECHEF_YOUTUBE_API_KEY", "yt-key")
		t.Setenv("FRIDGECHEF_YOUTUBE_REQUESTS_PER_SECOND", "2.5")
		t.Setenv("FRIDGECHEF_VIDEOS_MAX_RESULTS", "5")
		t.Setenv("FRIDGECHEF_CACHE_TYPE", "redis")
		t.Setenv("FRIDGECHEF_CACHE_REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("FRIDGECHEF_CACHE_TTL", "1h")
		t.Setenv("FRIDGECHEF_RATELIMIT_PER_IP", "200")
		t.Setenv("FRIDGECHEF_JOURNAL_TYPE", "mongo")
		t.Setenv("FRIDGECHEF_JOURNAL_MONGO_URI", "mongodb://localhost:27017")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if !cfg.VideoSearchEnabled() || cfg.YouTube.APIKey != "yt-key" {
			t.Errorf("YouTube.APIKey = %s, want yt-key", cfg.YouTube.APIKey)
		}
		if cfg.YouTube.RequestsPerSecond != 2.5 {
			t.Errorf("YouTube.RequestsPerSecond = %v, want 2.5", cfg.YouTube.RequestsPerSecond)
		}
		if cfg.Videos.MaxResults != 5 {
			t.Errorf("Videos.MaxResults = %d, want 5", cfg.Videos.MaxResults)
		}
		if cfg.Cache.Type != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/0" {
			t.Errorf("Cache = %+v, want redis at localhost", cfg.Cache)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Journal.Type != "mongo" || cfg.Journal.MongoURI != "mongodb://localhost:27017" {
			t.Errorf("Journal = %+v, want mongo", cfg.Journal)
		}
	})

	t.Run("reads config.yaml from the working directory", func(t *testing.T) {
		dir := chdirTemp(t)
		content := "server:\n  port: \"7070\"\nvideos:\n  query_suffix: recipe\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Videos.QuerySuffix != "recipe" {
			t.Errorf("Videos.QuerySuffix = %s, want recipe", cfg.Videos.QuerySuffix)
		}
	})

	t.Run("reads .env before environment lookup", func(t *testing.T) {
		dir := chdirTemp(t)
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FRIDGECHEF_LOG_LEVEL=debug\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		// Registered so the variable loaded from .env is removed afterwards
		t.Setenv("FRIDGECHEF_LOG_LEVEL", "")
		os.Unsetenv("FRIDGECHEF_LOG_LEVEL")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("FRIDGECHEF_CACHE_TYPE", "invalid")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("FRIDGECHEF_CACHE_TYPE", "redis")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fridgechef.yaml")
	content := "log:\n  level: warn\nnutrition:\n  table_path: /srv/foods.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
	if cfg.Nutrition.TablePath != "/srv/foods.yaml" {
		t.Errorf("Nutrition.TablePath = %s", cfg.Nutrition.TablePath)
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFromFile() error = nil, want error for missing file")
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("skips comments and doesn't override existing environment variables", func(t *testing.T) {
		dir := chdirTemp(t)
		envContent := `
# This is a comment
TEST_SKIP_1=value1
TEST_OVERRIDE=new-value
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0o644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		t.Setenv("TEST_OVERRIDE", "existing-value")
		t.Setenv("TEST_SKIP_1", "")
		os.Unsetenv("TEST_SKIP_1")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_SKIP_1") != "value1" {
			t.Errorf("TEST_SKIP_1 = %s, want value1", os.Getenv("TEST_SKIP_1"))
		}
		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:       LogConfig{Level: "info"},
			Videos:    VideosConfig{MaxResults: 3},
			Cache:     CacheConfig{Type: "memory"},
			RateLimit: RateLimitConfig{PerIP: 100},
			Journal:   JournalConfig{Type: "memory"},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "redis with URL", mutate: func(c *Config) { c.Cache.Type = "redis"; c.Cache.RedisURL = "redis://localhost:6379" }, wantErr: false},
		{name: "redis without URL", mutate: func(c *Config) { c.Cache.Type = "redis" }, wantErr: true},
		{name: "invalid cache type", mutate: func(c *Config) { c.Cache.Type = "memcached" }, wantErr: true},
		{name: "mongo without URI", mutate: func(c *Config) { c.Journal.Type = "mongo" }, wantErr: true},
		{name: "invalid journal type", mutate: func(c *Config) { c.Journal.Type = "postgres" }, wantErr: true},
		{name: "zero max results", mutate: func(c *Config) { c.Videos.MaxResults = 0 }, wantErr: true},
		{name: "too many max results", mutate: func(c *Config) { c.Videos.MaxResults = 11 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
