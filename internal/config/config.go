package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the scanner and the API server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Scan    ScanConfig    `yaml:"scan"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// HistoryConfig configures the in-memory scan history.
type HistoryConfig struct {
	Capacity  int           `yaml:"capacity"`
	Window    time.Duration `yaml:"window"`
	ListLimit int           `yaml:"list_limit"`
}

// ScanConfig configures batch scans from the CLI.
type ScanConfig struct {
	Threads int `yaml:"threads"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":5000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		History: HistoryConfig{
			Capacity:  100,
			Window:    24 * time.Hour,
			ListLimit: 10,
		},
		Scan: ScanConfig{Threads: 10},
	}
}

// Load reads an optional YAML file on top of the defaults, then applies
// environment overrides. A .env file in the working directory is loaded
// first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if port := getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := getenv("PHISHGUARD_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if v := getenv("PHISHGUARD_HISTORY_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHISHGUARD_HISTORY_CAPACITY: %w", err)
		}
		c.History.Capacity = n
	}
	if v := getenv("PHISHGUARD_HISTORY_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PHISHGUARD_HISTORY_WINDOW: %w", err)
		}
		c.History.Window = d
	}
	if v := getenv("PHISHGUARD_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHISHGUARD_THREADS: %w", err)
		}
		c.Scan.Threads = n
	}
	return nil
}

// Validate rejects values the server and runner cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be >= 0"))
	}
	if c.History.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("history.capacity must be > 0 (got %d)", c.History.Capacity))
	}
	if c.History.Window < 0 {
		errs = append(errs, fmt.Errorf("history.window must be >= 0 (got %s)", c.History.Window))
	}
	if c.History.ListLimit <= 0 {
		errs = append(errs, fmt.Errorf("history.list_limit must be > 0 (got %d)", c.History.ListLimit))
	}
	if c.Scan.Threads <= 0 {
		errs = append(errs, fmt.Errorf("scan.threads must be > 0 (got %d)", c.Scan.Threads))
	}
	return errors.Join(errs...)
}
