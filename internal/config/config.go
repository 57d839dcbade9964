package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr  = ":8080"
	DefaultRate  = 5.0
	DefaultBurst = 10
)

// Config is the server configuration read from the environment.
type Config struct {
	Addr          string
	DatabaseURL   string
	TokenKey      string
	Rate          float64
	Burst         int
	MaterialsFile string
	TLSCert       string
	TLSKey        string
	StaticDir     string
}

// Load reads a .env file when one exists and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: reading env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:          getenv("ORTHOS_ADDR", DefaultAddr),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		TokenKey:      os.Getenv("TOKEN_KEY"),
		Rate:          DefaultRate,
		Burst:         DefaultBurst,
		MaterialsFile: os.Getenv("ORTHOS_MATERIALS"),
		TLSCert:       os.Getenv("TLS_CERT"),
		TLSKey:        os.Getenv("TLS_KEY"),
		StaticDir:     os.Getenv("ORTHOS_STATIC"),
	}
	if v := os.Getenv("ORTHOS_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return nil, fmt.Errorf("config: ORTHOS_RATE must be a positive number, got %q", v)
		}
		cfg.Rate = r
	}
	if v := os.Getenv("ORTHOS_BURST"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b <= 0 {
			return nil, fmt.Errorf("config: ORTHOS_BURST must be a positive integer, got %q", v)
		}
		cfg.Burst = b
	}
	if cfg.DatabaseURL != "" && cfg.TokenKey == "" {
		return nil, fmt.Errorf("config: TOKEN_KEY must be set when DATABASE_URL is set")
	}
	return cfg, nil
}

// Accounts reports whether user accounts and history are enabled. Without
// DATABASE_URL they are kept in memory.
func (c *Config) Accounts() bool {
	return c.TokenKey != ""
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
