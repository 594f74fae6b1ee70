// Package config builds the run configuration once at startup. A Config is
// read-only after Load returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/registry"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "config.json"

// Config is the runtime configuration for one run.
type Config struct {
	APIKey      string
	BaseURL     string
	DetailDelay time.Duration
	Timeout     time.Duration
	OutputDir   string
}

// Overrides carries values set explicitly on the command line. Nil fields are unset.
type Overrides struct {
	BaseURL     *string
	DetailDelay *time.Duration
	OutputDir   *string
}

// fileConfig is the on-disk shape. JSON documents parse as YAML, so both
// {"API_KEY": "..."} and "API_KEY: ..." are accepted.
type fileConfig struct {
	APIKey      string `yaml:"API_KEY"`
	BaseURL     string `yaml:"base_url"`
	DetailDelay string `yaml:"detail_delay"`
	Timeout     string `yaml:"timeout"`
	OutputDir   string `yaml:"output_dir"`
}

// LoadDotEnv loads .env from the working directory when present.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// Load reads the configuration file at path, then applies environment variables and
// overrides, in that order of increasing precedence.
//
// Environment:
//   - REGISTRY_API_KEY (replaces API_KEY from the file; the file may then be absent)
//   - REGISTRY_BASE_URL
//   - REGISTRY_DETAIL_DELAY (duration such as 200ms, or seconds such as 0.2)
//   - REGISTRY_TIMEOUT
//   - REGISTRY_OUTPUT_DIR
func Load(path string, ov Overrides) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	fc, err := readFile(path)
	envKey := strings.TrimSpace(os.Getenv("REGISTRY_API_KEY"))
	if err != nil && !(errors.Is(err, fs.ErrNotExist) && envKey != "") {
		return Config{}, err
	}

	cfg := Config{
		APIKey:      strings.TrimSpace(fc.APIKey),
		BaseURL:     strings.TrimSpace(fc.BaseURL),
		DetailDelay: enrich.DefaultDetailDelay,
		OutputDir:   strings.TrimSpace(fc.OutputDir),
	}
	if fc.DetailDelay != "" {
		if cfg.DetailDelay, err = parseDelay(fc.DetailDelay); err != nil {
			return Config{}, fmt.Errorf("config detail_delay: %w", err)
		}
	}
	if fc.Timeout != "" {
		if cfg.Timeout, err = parseDelay(fc.Timeout); err != nil {
			return Config{}, fmt.Errorf("config timeout: %w", err)
		}
	}

	if envKey != "" {
		cfg.APIKey = envKey
	}
	cfg.BaseURL = envString("REGISTRY_BASE_URL", cfg.BaseURL)
	cfg.OutputDir = envString("REGISTRY_OUTPUT_DIR", cfg.OutputDir)
	if cfg.DetailDelay, err = envDuration("REGISTRY_DETAIL_DELAY", cfg.DetailDelay); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = envDuration("REGISTRY_TIMEOUT", cfg.Timeout); err != nil {
		return Config{}, err
	}

	if ov.BaseURL != nil {
		cfg.BaseURL = strings.TrimSpace(*ov.BaseURL)
	}
	if ov.DetailDelay != nil {
		cfg.DetailDelay = *ov.DetailDelay
	}
	if ov.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*ov.OutputDir)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = registry.DefaultBaseURL
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.DetailDelay < 0 {
		return Config{}, fmt.Errorf("detail delay must not be negative (got %s)", cfg.DetailDelay)
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required (set it in %s or REGISTRY_API_KEY)", path)
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// parseDelay accepts Go durations ("200ms") and bare seconds ("0.2").
func parseDelay(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}

func envString(varName, fallback string) string {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := parseDelay(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
