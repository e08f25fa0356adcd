// Package config loads bot settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTemplateSubdir = "Templates"
	DefaultDailySubdir    = "Daily"
	DefaultOffsetHours    = 3 // Moscow time
	DefaultDayStartHour   = 7
	DefaultSyncInterval   = 5 * time.Minute
)

type Config struct {
	Token          string        `yaml:"token"`
	RootID         int64         `yaml:"root_id"`
	NotesDir       string        `yaml:"notes_dir"`
	TemplateSubdir string        `yaml:"template_subdir"`
	OffsetHours    int           `yaml:"offset_hours"`
	DayStartHour   int           `yaml:"day_start_hour"`
	IndexPath      string        `yaml:"index_path"`
	SyncInterval   time.Duration `yaml:"sync_interval"`
	OllamaURL      string        `yaml:"ollama_url"`
	OllamaModel    string        `yaml:"ollama_model"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{
		TemplateSubdir: DefaultTemplateSubdir,
		OffsetHours:    DefaultOffsetHours,
		DayStartHour:   DefaultDayStartHour,
		SyncInterval:   DefaultSyncInterval,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("ROOT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RootID = id
		}
	}
	if v := os.Getenv("NOTES_DIR"); v != "" {
		cfg.NotesDir = v
	}
	if v := os.Getenv("TEMPLATE_SUBDIR"); v != "" {
		cfg.TemplateSubdir = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
}

func (c *Config) validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes_dir (or NOTES_DIR) must be set")
	}
	info, err := os.Stat(c.NotesDir)
	if err != nil {
		return fmt.Errorf("notes dir %s: %w", c.NotesDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("notes dir %s is not a directory", c.NotesDir)
	}
	if c.RootID == 0 {
		return fmt.Errorf("root_id (or ROOT_ID) must be set")
	}

	// The daily subdirectory is created on demand; the index lives next
	// to the notes unless relocated.
	if err := os.MkdirAll(c.DailyDir(), 0o755); err != nil {
		return fmt.Errorf("create daily dir: %w", err)
	}
	if c.IndexPath == "" {
		c.IndexPath = filepath.Join(c.NotesDir, ".dailybot.db")
	}
	if c.SyncInterval <= 0 {
		c.SyncInterval = DefaultSyncInterval
	}
	return nil
}

// DailyDir is where the per-day notes live.
func (c *Config) DailyDir() string {
	return filepath.Join(c.NotesDir, DefaultDailySubdir)
}

// TemplatePath points at the daily note template. The file may not exist;
// callers fall back to a built-in template.
func (c *Config) TemplatePath() string {
	return filepath.Join(c.NotesDir, c.TemplateSubdir, "Daily.md")
}

// AIEnabled reports whether the optional Ollama integration is configured.
func (c *Config) AIEnabled() bool {
	return c.OllamaURL != ""
}
