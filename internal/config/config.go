// Package config loads runtime settings from an optional YAML file, an
// optional .env file and the process environment, in that order of
// increasing precedence. Command-line flags are applied on top by main.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAddr      = "MPESA_ADDR"
	EnvStaticDir = "MPESA_STATIC_DIR"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvTopN      = "MPESA_TOP_N"
	EnvPassword  = "STATEMENT_PASSWORD"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`

	// Password opens encrypted statements. Only taken from the environment.
	Password string `yaml:"-"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	StaticDir   string `yaml:"static_dir"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AnalysisConfig struct {
	TopN int `yaml:"top_n"`
}

type OutputConfig struct {
	IncludeHeader bool `yaml:"include_header"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			BodyLimitMB: 32,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Analysis: AnalysisConfig{TopN: 10},
		Output:   OutputConfig{IncludeHeader: true},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the YAML file at path (skipped when path is empty), then a
// .env file in the working directory if there is one, then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvAddr, &c.Server.Addr)
	str(EnvStaticDir, &c.Server.StaticDir)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)

	if v, ok := lookup(EnvPassword); ok {
		c.Password = v
	}

	if v, ok := lookup(EnvTopN); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalid, EnvTopN, v)
		}
		c.Analysis.TopN = n
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Analysis.TopN < 0 {
		return fmt.Errorf("%w: analysis.top_n must not be negative, got %d", ErrInvalid, c.Analysis.TopN)
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("%w: server.body_limit_mb must be positive, got %d", ErrInvalid, c.Server.BodyLimitMB)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
