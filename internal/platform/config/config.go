package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vlx/internal/platform/logging"
)

const (
	FileName = "vlx.yaml"

	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	DataDir string `yaml:"-"`
	DBPath  string `yaml:"db_path"`
	// Store selects the kv driver: sqlite (default) or memory.
	Store string `yaml:"store"`
	// CatalogPath points at a YAML lab catalog; empty uses the built-in one.
	CatalogPath string `yaml:"catalog_path"`
	// CatalogPlugin is the path of a catalog provider plugin binary. When set
	// it takes precedence over CatalogPath.
	CatalogPlugin string `yaml:"catalog_plugin"`
	LogLevel      string `yaml:"log_level"`
	HTTPAddr      string `yaml:"http_addr"`
}

// New builds the configuration for a data directory. It reads
// <dataDir>/vlx.yaml when present, then applies environment overrides:
//
//	VLX_STORE, VLX_DB_PATH, VLX_CATALOG, VLX_CATALOG_PLUGIN,
//	VLX_LOG_LEVEL, VLX_HTTP_ADDR
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		Store:    StoreSQLite,
		LogLevel: "info",
		HTTPAddr: "127.0.0.1:8420",
	}
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg.DataDir = dataDir

	applyEnvOverrides(&cfg)

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, ".vlx", "vlx.db")
	}
	cfg.CatalogPath = resolve(dataDir, cfg.CatalogPath)
	cfg.CatalogPlugin = resolve(dataDir, cfg.CatalogPlugin)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VLX_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("VLX_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("VLX_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("VLX_CATALOG_PLUGIN"); v != "" {
		cfg.CatalogPlugin = v
	}
	if v := os.Getenv("VLX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("VLX_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
}

func (c Config) validate() error {
	switch c.Store {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreSQLite, StoreMemory, c.Store)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("http_addr is required")
	}
	return nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(base, path))
}
