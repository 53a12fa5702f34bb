package config

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration after parsing and validation.
type Config struct {
	BackendURL     string
	TokenFile      string
	DBPath         string
	WorkspaceID    string
	SweepInterval  time.Duration
	ActivityWindow time.Duration
	SettleDelay    time.Duration
}

// YAMLRepository loads application configuration from YAML files.
type YAMLRepository struct {
	fs fs.FS
}

// NewYAMLRepository creates a new YAML config repository.
func NewYAMLRepository(filesystem fs.FS) *YAMLRepository {
	return &YAMLRepository{fs: filesystem}
}

// GetConfig loads the application configuration from a YAML file and returns
// a validated config. A missing file is not an error, everything has a flag
// or a sane default.
func (r *YAMLRepository) GetConfig(ctx context.Context, path string) (Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return Config{}, ctx.Err()
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toConfig()
}

// fileConfig represents the YAML structure of the configuration file.
type fileConfig struct {
	Backend   backendConfig   `yaml:"backend"`
	Storage   storageConfig   `yaml:"storage"`
	Workspace string          `yaml:"workspace"`
	Reconcile reconcileConfig `yaml:"reconcile"`
}

type backendConfig struct {
	URL       string `yaml:"url"`
	TokenFile string `yaml:"token_file"`
}

type storageConfig struct {
	DBPath string `yaml:"db_path"`
}

type reconcileConfig struct {
	SweepInterval  string `yaml:"sweep_interval"`
	ActivityWindow string `yaml:"activity_window"`
	SettleDelay    string `yaml:"settle_delay"`
}

func (c fileConfig) validate() error {
	if c.Backend.URL != "" && c.Backend.TokenFile == "" {
		return fmt.Errorf("backend token_file is required when backend url is set")
	}
	return nil
}

func (c fileConfig) toConfig() (Config, error) {
	cfg := Config{
		BackendURL:  c.Backend.URL,
		TokenFile:   c.Backend.TokenFile,
		DBPath:      c.Storage.DBPath,
		WorkspaceID: c.Workspace,
	}

	var err error
	cfg.SweepInterval, err = parseDuration("reconcile.sweep_interval", c.Reconcile.SweepInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.ActivityWindow, err = parseDuration("reconcile.activity_window", c.Reconcile.ActivityWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.SettleDelay, err = parseDuration("reconcile.settle_delay", c.Reconcile.SettleDelay)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must not be negative, got: %s", field, d)
	}

	return d, nil
}
