package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application runtime configuration.
type Config struct {
	Env             string
	HTTPPort        string
	StorageDriver   string
	DataDir         string
	DatabaseURL     string
	CurrencyCode    string
	RefreshInterval time.Duration
	VATRate         float64
	ParallelPrep    int
	DefaultPrepMin  float64
	SeedData        bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads environment variables and .env (if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "file"),
		DataDir:         getEnv("DATA_DIR", "data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CurrencyCode:    getEnv("CURRENCY_CODE", "MUR"),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 5*time.Second),
		VATRate:         getFloat("VAT_RATE", 15),
		ParallelPrep:    getInt("PARALLEL_PREP", 2),
		DefaultPrepMin:  getFloat("DEFAULT_PREP_MINUTES", 10),
		SeedData:        getBool("SEED_DATA", true),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.StorageDriver == "postgres" && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required for the postgres storage driver")
	}
	if cfg.RefreshInterval < time.Second {
		return cfg, errors.New("REFRESH_INTERVAL must be at least 1s")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Support seconds as integer without suffix.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
