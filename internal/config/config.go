package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-only-secret-change-me"

type Config struct {
	Port             string
	Environment      string
	LogLevel         string
	SupabaseURL      string
	SupabaseAnonKey  string
	DataFile         string
	RequestTimeout   time.Duration
	BreakerFailures  uint32
	BreakerCooldown  time.Duration
	JWTSecret        string
	TokenTTL         time.Duration
	AdminEmail       string
	AdminPassword    string
	CORSOrigins      []string
	MongoDBURI       string
	MongoDBPassword  string
	MongoDBDatabase  string
	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:  os.Getenv("SUPABASE_URL_ANON_KEY"),
		DataFile:         getEnvWithDefault("DATA_FILE", "data/db.json"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:      splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBPassword:  os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase:  getEnvWithDefault("MONGODB_DATABASE", "eventrentals"),
		CloudinaryName:   os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.BreakerCooldown, err = getDuration("BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	failures, err := getInt("BREAKER_FAILURES", 3)
	if err != nil {
		return nil, err
	}
	if failures <= 0 {
		return nil, fmt.Errorf("BREAKER_FAILURES must be positive")
	}
	cfg.BreakerFailures = uint32(failures)

	// Validate required fields
	if (cfg.SupabaseURL == "") != (cfg.SupabaseAnonKey == "") {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_URL_ANON_KEY must be set together")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("DATA_FILE is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// HasRemoteStore reports whether Supabase is configured. Without it the
// service runs on the local store alone.
func (c *Config) HasRemoteStore() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func (c *Config) HasMongoDB() bool {
	return c.MongoDBURI != ""
}

func (c *Config) HasCloudinary() bool {
	return c.CloudinaryName != "" && c.CloudinaryKey != "" && c.CloudinarySecret != ""
}
