// Package config loads the Casita client configuration from
// ~/.config/casita/config.toml, with optional overrides from a .env
// file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Casita needs to reach the marketplace
// API.
type Config struct {
	APIBase     string
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/casita/config.toml"
	defaultAPIBase     = "127.0.0.1:3000"
	defaultPollSeconds = 30
)

// Load locates and parses the config, falling back to defaults when
// the file is missing. Environment variables (optionally sourced from
// a .env in the working directory) override the file:
// CASITA_API_BASE and CASITA_POLL_SECONDS.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, PollSeconds: defaultPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase     string `toml:"api_base"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return applyEnv(cfg), nil
}

// applyEnv layers .env and process environment overrides on top of
// the file values. A missing .env is not an error.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load()

	if base := strings.TrimSpace(os.Getenv("CASITA_API_BASE")); base != "" {
		cfg.APIBase = base
	}
	if raw := strings.TrimSpace(os.Getenv("CASITA_POLL_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.PollSeconds = secs
		}
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
