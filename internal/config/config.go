// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-questbank configuration from an optional YAML
// file with environment overrides. Missing configuration is never fatal:
// every field has a workable default so the tool runs out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ContentFile names one static question document. Order in the config is
// load order: the merged question list preserves it.
type ContentFile struct {
	Subject string `yaml:"subject"`
	Path    string `yaml:"path"`
}

// Remote holds the connection settings for the remote annotation tables.
// An empty URL means remote persistence is disabled.
type Remote struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
}

// Config is the resolved arc-questbank configuration.
type Config struct {
	Content     []ContentFile `yaml:"content"`
	Remote      Remote        `yaml:"remote"`
	DBPath      string        `yaml:"db_path"`
	SessionFile string        `yaml:"session_file"`
	PageSize    int           `yaml:"page_size"`
}

// PageSizeOptions are the page sizes the browse surfaces offer.
var PageSizeOptions = []int{5, 10, 25, 50, 100}

// ValidPageSize reports whether n is one of the offered page sizes.
func ValidPageSize(n int) bool {
	for _, opt := range PageSizeOptions {
		if n == opt {
			return true
		}
	}
	return false
}

// DefaultPageSize is used when the config does not set one.
const DefaultPageSize = 10

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "arc-questbank", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "arc-questbank")
}

// Load reads the config file at path (ARC_QUESTBANK_CONFIG or the default
// location when empty), applies env overrides, and fills defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ARC_QUESTBANK_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv("ARC_QUESTBANK_REMOTE_URL"); v != "" {
		cfg.Remote.URL = v
	}
	if v := os.Getenv("ARC_QUESTBANK_ANON_KEY"); v != "" {
		cfg.Remote.AnonKey = v
	}
	if v := os.Getenv("ARC_QUESTBANK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ARC_QUESTBANK_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}

	if len(cfg.Content) == 0 {
		cfg.Content = []ContentFile{
			{Subject: "math", Path: "data/questions_math.json"},
			{Subject: "english", Path: "data/questions_english.json"},
		}
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(defaultDataDir(), "questbank.db")
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(filepath.Dir(DefaultPath()), "session.json")
	}
	if !ValidPageSize(cfg.PageSize) {
		cfg.PageSize = DefaultPageSize
	}

	return cfg, nil
}
