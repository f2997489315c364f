package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	YouTube   YouTubeConfig   `mapstructure:"youtube"`
	Videos    VideosConfig    `mapstructure:"videos"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Journal   JournalConfig   `mapstructure:"journal"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// YouTubeConfig holds YouTube Data API configuration
type YouTubeConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	RegionCode        string        `mapstructure:"region_code"`
	RelevanceLanguage string        `mapstructure:"relevance_language"`
	SearchResults     int           `mapstructure:"search_results"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RetryCount        int           `mapstructure:"retry_count"`
}

// VideosConfig holds video search defaults
type VideosConfig struct {
	MaxResults  int    `mapstructure:"max_results"`
	QuerySuffix string `mapstructure:"query_suffix"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL        string        `mapstructure:"redis_url"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP      int `mapstructure:"per_ip"` // requests per minute
	PerIPBurst int `mapstructure:"per_ip_burst"`
}

// NutritionConfig holds the food reference table location
type NutritionConfig struct {
	TablePath string `mapstructure:"table_path"` // empty uses the bundled table
}

// JournalConfig holds journal storage configuration
type JournalConfig struct {
	Type     string `mapstructure:"type"` // "memory" or "mongo"
	MongoURI string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"database"`
}

// VideoSearchEnabled reports whether a YouTube API key is configured
func (c *Config) VideoSearchEnabled() bool {
	return strings.TrimSpace(c.YouTube.APIKey) != ""
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fridgechef/")

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile loads configuration from an explicit file plus environment variables
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// newViper creates a viper instance bound to FRIDGECHEF_* environment variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FRIDGECHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env without overriding the environment
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "chrome-extension://*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	// Log defaults
	v.SetDefault("log.level", "info")

	// YouTube defaults
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.region_code", "KR")
	v.SetDefault("youtube.relevance_language", "ko")
	v.SetDefault("youtube.search_results", 15)
	v.SetDefault("youtube.requests_per_second", 5)
	v.SetDefault("youtube.burst", 5)
	v.SetDefault("youtube.timeout", "10s")
	v.SetDefault("youtube.retry_count", 2)

	// Video search defaults
	v.SetDefault("videos.max_results", 3)
	v.SetDefault("videos.query_suffix", "레시피")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.per_ip_burst", 20)

	// Nutrition defaults
	v.SetDefault("nutrition.table_path", "")

	// Journal defaults
	v.SetDefault("journal.type", "memory")
	v.SetDefault("journal.mongo_uri", "")
	v.SetDefault("journal.database", "fridgechef")
}

// validate validates the configuration
func validate(config *Config) error {
	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log level %q is not valid", config.Log.Level)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.Journal.Type != "memory" && config.Journal.Type != "mongo" {
		return fmt.Errorf("journal type must be 'memory' or 'mongo', got: %s", config.Journal.Type)
	}

	if config.Journal.Type == "mongo" && config.Journal.MongoURI == "" {
		return fmt.Errorf("mongo URI is required when journal type is 'mongo'")
	}

	if config.Videos.MaxResults < 1 || config.Videos.MaxResults > 10 {
		return fmt.Errorf("videos max results must be between 1 and 10, got: %d", config.Videos.MaxResults)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
