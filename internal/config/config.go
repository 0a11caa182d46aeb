package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// Config is the process configuration, read from the environment with an
// optional .env file.
type Config struct {
	LogLevel string
	Store    StoreConfig
	Pipeline PipelineConfig
}

// StoreConfig selects and configures the deduplication store backend.
type StoreConfig struct {
	// Backend is "memory" or "postgres".
	Backend  string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the Postgres connection string.
func (c StoreConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// PipelineConfig holds ingestion policy knobs.
type PipelineConfig struct {
	// SignlessDirection classifies a positive single-amount value without
	// any sign information. "debit" unless a bank is known to print
	// positive values for income.
	SignlessDirection domain.Direction
}

// Load reads configuration from the environment. A .env file in the current
// directory or a parent is honored but optional, so containerized runs can
// pass plain environment variables.
func Load() (*Config, error) {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	signless := domain.Debit
	switch getEnv("AMOUNT_SIGNLESS_DIRECTION", "debit") {
	case "debit":
	case "credit":
		signless = domain.Credit
	default:
		return nil, fmt.Errorf("config: AMOUNT_SIGNLESS_DIRECTION must be \"debit\" or \"credit\"")
	}

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Store: StoreConfig{
			Backend:  getEnv("STORE_BACKEND", "memory"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cashflow"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Pipeline: PipelineConfig{
			SignlessDirection: signless,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
