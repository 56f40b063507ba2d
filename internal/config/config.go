package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	// EnvLogPath names the environment variable holding the attendance log path.
	EnvLogPath = "KINTAI_LOG"
	// EnvRate names the environment variable holding the hourly rate.
	EnvRate = "KINTAI_RATE"
)

// Config carries the resolved runtime settings. The zero value means
// read from stdin and price hours at zero.
type Config struct {
	LogPath string
	Rate    decimal.Decimal
}

// Load resolves configuration from a .env file in the working directory
// (if one exists) and the process environment. Variables already set in
// the environment win over .env entries. A missing .env is fine; one that
// exists but cannot be parsed is reported on stderr and skipped.
func Load() (Config, error) {
	return load(os.Stderr)
}

func load(stderr io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "warning: load .env: %v\n", err)
	}

	var cfg Config

	if raw, ok := os.LookupEnv(EnvLogPath); ok {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			path, err := normalizePath(raw)
			if err != nil {
				return Config{}, err
			}
			cfg.LogPath = path
		}
	}

	if raw, ok := os.LookupEnv(EnvRate); ok {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", EnvRate, err)
			}
			cfg.Rate = rate
		}
	}

	return cfg, nil
}

func normalizePath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
