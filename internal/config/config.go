// Package config loads cursorhist's layered configuration:
// defaults, then the config file in the data directory, then
// environment variables. Command flags are applied on top by the
// cli package.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the effective tool configuration.
type Config struct {
	ProjectsDir string // Cursor Agent CLI projects tree
	TrackingDB  string // Cursor's AI code tracking database
	DataDir     string // cursorhist's own state directory
	CachePath   string // session index location
	Editor      string // command used by `open`
}

// Default returns the configuration before any overrides.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("determining home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".cursorhist")
	return Config{
		ProjectsDir: filepath.Join(home, ".cursor", "projects"),
		TrackingDB: filepath.Join(
			home, ".cursor", "ai-tracking", "ai-code-tracking.db",
		),
		DataDir:   dataDir,
		CachePath: filepath.Join(dataDir, "sessions.json"),
	}, nil
}

// Load builds the configuration by layering defaults, the config
// file, and environment variables, in that order.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	// The data dir decides where config.json lives, so its
	// override applies before the file is read.
	if v := os.Getenv("CURSORHIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if err := cfg.loadFile(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	cfg.loadEnv()

	cfg.CachePath = filepath.Join(cfg.DataDir, "sessions.json")
	if v := os.Getenv("CURSORHIST_CACHE"); v != "" {
		cfg.CachePath = v
	}
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.DataDir, "config.json")
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.configPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var file struct {
		Editor      string `json:"editor"`
		ProjectsDir string `json:"projects_dir"`
		TrackingDB  string `json:"tracking_db"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if file.Editor != "" {
		c.Editor = file.Editor
	}
	if file.ProjectsDir != "" {
		c.ProjectsDir = file.ProjectsDir
	}
	if file.TrackingDB != "" {
		c.TrackingDB = file.TrackingDB
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("CURSOR_PROJECTS_DIR"); v != "" {
		c.ProjectsDir = v
	}
	if v := os.Getenv("CURSOR_TRACKING_DB"); v != "" {
		c.TrackingDB = v
	}
	// VISUAL and EDITOR are general-purpose fallbacks, weaker than an
	// editor named in config.json. VISUAL wins between the two.
	if c.Editor == "" {
		if v := os.Getenv("VISUAL"); v != "" {
			c.Editor = v
		} else if v := os.Getenv("EDITOR"); v != "" {
			c.Editor = v
		}
	}
}
