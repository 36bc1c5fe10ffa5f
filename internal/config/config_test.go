// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmx.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
parse:
  tolerant: true
scenes:
  pattern: "SC([0-9]+)"
  format: COLS
catalog:
  path: ""
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Parse.Tolerant {
		t.Error("Parse.Tolerant = false, want true")
	}
	if cfg.Scenes.Pattern != "SC([0-9]+)" || cfg.Scenes.Format != "cols" {
		t.Errorf("Scenes = %+v", cfg.Scenes)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want empty", cfg.Catalog.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Server.Addr != Defaults().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvTolerant, "1")
	t.Setenv(EnvScenePattern, "([0-9]+)")
	t.Setenv(EnvSceneFormat, "yaml")
	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvCatalogPath, "/var/lib/cmx.db")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogSource, "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Parse.Tolerant || cfg.Scenes.Pattern != "([0-9]+)" || cfg.Scenes.Format != "yaml" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Server.Addr != ":9000" || cfg.Catalog.Path != "/var/lib/cmx.db" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Logging.Format != "json" || !cfg.Logging.Source {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "version", body: "config_version: 2\n", want: "config_version"},
		{name: "scene format", body: "scenes:\n  format: pdf\n", want: "scenes.format"},
		{name: "pattern", body: "scenes:\n  pattern: \"V(\"\n", want: "scenes.pattern"},
		{name: "log format", body: "logging:\n  format: xml\n", want: "logging.format"},
		{name: "addr", body: "server:\n  addr: \"\"\n", want: "server.addr"},
		{name: "yaml", body: "scenes: [\n", want: "parse config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoggingConfig_LogOptions(t *testing.T) {
	opts := LoggingConfig{Level: "warn", Format: "json", Source: true, File: "x.log"}.LogOptions()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "x.log" {
		t.Errorf("LogOptions() = %+v", opts)
	}
}
