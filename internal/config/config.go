// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Geo         GeoConfig
	Scoring     ScoringConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
}

type RedisConfig struct {
	Enabled          bool
	Addr             string
	Password         string
	DB               int
	HighlightsTTLSec int
}

type GeoConfig struct {
	DefaultRadiusKm           float64
	MaxRadiusKm               float64
	ParallelDistanceThreshold int
	MapLinkTimeoutSec         int
}

type ScoringConfig struct {
	WindowHours           int
	Workers               int
	CronSpec              string
	SelloutHorizonHours   int
	RecommendationHistory int
	RecommendationLimit   int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func (s ScoringConfig) Window() time.Duration {
	return time.Duration(s.WindowHours) * time.Hour
}

func (s ScoringConfig) SelloutHorizon() time.Duration {
	return time.Duration(s.SelloutHorizonHours) * time.Hour
}

func (r RedisConfig) HighlightsTTL() time.Duration {
	return time.Duration(r.HighlightsTTLSec) * time.Second
}

func (g GeoConfig) MapLinkTimeout() time.Duration {
	return time.Duration(g.MapLinkTimeoutSec) * time.Second
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "deliciae"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:    getEnv("JWT_ISSUER", "deliciae"),
		},
		Redis: RedisConfig{
			Enabled:          getEnvAsBool("REDIS_ENABLED", false),
			Addr:             getEnv("REDIS_ADDR", "localhost:6379"),
			Password:         getEnv("REDIS_PASSWORD", ""),
			DB:               getEnvAsInt("REDIS_DB", 0),
			HighlightsTTLSec: getEnvAsInt("HIGHLIGHTS_CACHE_TTL_SECONDS", 60),
		},
		Geo: GeoConfig{
			DefaultRadiusKm:           getEnvAsFloat("DEFAULT_RADIUS_KM", 20.0),
			MaxRadiusKm:               getEnvAsFloat("MAX_RADIUS_KM", 500.0),
			ParallelDistanceThreshold: getEnvAsInt("PARALLEL_DISTANCE_THRESHOLD", 512),
			MapLinkTimeoutSec:         getEnvAsInt("MAPLINK_RESOLVE_TIMEOUT_SECONDS", 5),
		},
		Scoring: ScoringConfig{
			WindowHours:           getEnvAsInt("SCORING_WINDOW_HOURS", 24),
			Workers:               getEnvAsInt("SCORING_WORKERS", 8),
			CronSpec:              getEnv("SCORING_CRON", "*/15 * * * *"),
			SelloutHorizonHours:   getEnvAsInt("SELLOUT_HORIZON_HOURS", 24),
			RecommendationHistory: getEnvAsInt("RECOMMENDATION_HISTORY", 10),
			RecommendationLimit:   getEnvAsInt("RECOMMENDATION_LIMIT", 5),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Geo.DefaultRadiusKm <= 0 || c.Geo.MaxRadiusKm < c.Geo.DefaultRadiusKm {
		return fmt.Errorf("invalid radius settings: default %.2f, max %.2f", c.Geo.DefaultRadiusKm, c.Geo.MaxRadiusKm)
	}

	if c.Scoring.WindowHours <= 0 {
		return fmt.Errorf("scoring window must be positive, got %d hours", c.Scoring.WindowHours)
	}

	if c.Scoring.Workers <= 0 {
		return fmt.Errorf("scoring workers must be positive, got %d", c.Scoring.Workers)
	}

	if c.Scoring.RecommendationHistory <= 0 || c.Scoring.RecommendationLimit <= 0 {
		return fmt.Errorf("recommendation history and limit must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
