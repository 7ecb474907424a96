package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBPath     string
	AppPort    string
	AppEnv     string
	CORSOrigin string

	RateLimitRPS   float64
	RateLimitBurst int
	SessionTTL     time.Duration
}

// LoadConfig reads .env (if any) and the process environment.
// It exits the process when the selected driver is missing required settings.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

// Load is LoadConfig without the fatal exit.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "culinary.db"),
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "30m")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected database driver has what it needs.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" {
			return errors.New("DB_HOST is required for the postgres driver")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit settings must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
