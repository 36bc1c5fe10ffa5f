// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package config loads the YAML configuration shared by edl2scenelist and
// edlserve. Environment variables override values from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	applog "github.com/mrjoshuak/cmx3600/internal/log"
	"github.com/mrjoshuak/cmx3600/internal/scenelist"
)

// CurrentVersion is the config_version this package reads.
const CurrentVersion = 1

type ParseConfig struct {
	// Tolerant enables the regular expression fallback for event lines
	// that do not fit the fixed columns.
	Tolerant bool `yaml:"tolerant"`
}

type ScenesConfig struct {
	Pattern string `yaml:"pattern"`
	Format  string `yaml:"format"` // cmx | cols | yaml
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxBodyBytes caps the size of an uploaded edit list.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type CatalogConfig struct {
	// Path of the SQLite database. Empty disables the catalog.
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Parse         ParseConfig   `yaml:"parse"`
	Scenes        ScenesConfig  `yaml:"scenes"`
	Server        ServerConfig  `yaml:"server"`
	Catalog       CatalogConfig `yaml:"catalog"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Env var names used as overrides.
const (
	EnvTolerant     = "CMX_TOLERANT"
	EnvScenePattern = "CMX_SCENE_PATTERN"
	EnvSceneFormat  = "CMX_SCENE_FORMAT"
	EnvAddr         = "CMX_ADDR"
	EnvCatalogPath  = "CMX_CATALOG_PATH"
	EnvLogLevel     = applog.EnvLevel
	EnvLogFormat    = applog.EnvFormat
	EnvLogSource    = applog.EnvSource
	EnvLogFile      = applog.EnvFile
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ConfigVersion: CurrentVersion,
		Parse:         ParseConfig{Tolerant: false},
		Scenes:        ScenesConfig{Pattern: scenelist.DefaultPattern, Format: string(scenelist.FormatCMX)},
		Server:        ServerConfig{Addr: "127.0.0.1:8600", MaxBodyBytes: 10 << 20},
		Catalog:       CatalogConfig{Path: "cmx3600.db"},
		Logging:       LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path or a missing file yields the defaults. The
// result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnvOverrides(&cfg)
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvTolerant)); v != "" {
		cfg.Parse.Tolerant = applog.ParseBool(v)
	}
	if v := os.Getenv(EnvScenePattern); v != "" {
		cfg.Scenes.Pattern = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSceneFormat)); v != "" {
		cfg.Scenes.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvCatalogPath); ok {
		cfg.Catalog.Path = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = applog.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func normalize(cfg *Config) {
	cfg.Scenes.Format = strings.ToLower(strings.TrimSpace(cfg.Scenes.Format))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Scenes.Pattern == "" {
		cfg.Scenes.Pattern = scenelist.DefaultPattern
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ConfigVersion != CurrentVersion {
		return fmt.Errorf("unsupported config_version %d", c.ConfigVersion)
	}
	if _, err := scenelist.ParseFormat(c.Scenes.Format); err != nil {
		return fmt.Errorf("scenes.format: %w", err)
	}
	if _, err := scenelist.NewExtractor(c.Scenes.Pattern); err != nil {
		return fmt.Errorf("scenes.pattern: %w", err)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// LogOptions converts the logging section for log.Init.
func (c LoggingConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Level,
		Format:    c.Format,
		AddSource: c.Source,
		File:      c.File,
	}
}
