package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Neo4j     Neo4jConfig
	Redis     RedisConfig
	App       AppConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port   string
	APIKey string
}

type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type AnalyticsConfig struct {
	// AlgorithmTimeout bounds every GDS dispatch; an expired call surfaces
	// as a timeout error instead of holding a worker slot indefinitely.
	AlgorithmTimeout time.Duration
	WorkerPoolSize   int
	CacheTTL         time.Duration
	RefreshCronSpec  string
	RateLimitPerSec  float64
	RateLimitBurst   int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:   getEnv("PORT", "8080"),
			APIKey: getEnv("API_KEY", ""),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "neo4j://localhost:7687"),
			Username: getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", "neo4j"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Analytics: AnalyticsConfig{
			AlgorithmTimeout: getEnvAsDuration("ALGO_TIMEOUT", 60*time.Second),
			WorkerPoolSize:   getEnvAsInt("ANALYTICS_WORKERS", 4),
			CacheTTL:         getEnvAsDuration("CENTRALITY_CACHE_TTL", 10*time.Minute),
			RefreshCronSpec:  getEnv("REFRESH_CRON", "0 0 0 * * *"),
			RateLimitPerSec:  getEnvAsFloat("ALGO_RATE_LIMIT", 2.0),
			RateLimitBurst:   getEnvAsInt("ALGO_RATE_BURST", 4),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Neo4j.URI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}

	if c.Analytics.WorkerPoolSize <= 0 {
		return fmt.Errorf("ANALYTICS_WORKERS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %f", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
