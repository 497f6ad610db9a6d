package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"vlx/internal/platform/config"
)

func TestNewDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != config.StoreSQLite {
		t.Fatalf("expected sqlite store, got %q", cfg.Store)
	}
	if cfg.DBPath != filepath.Join(dir, ".vlx", "vlx.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.CatalogPath != "" || cfg.CatalogPlugin != "" {
		t.Fatalf("catalog should default to built-in, got %+v", cfg)
	}
}

func TestNewReadsFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	body := "store: memory\ncatalog_path: labs.yaml\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VLX_HTTP_ADDR", "127.0.0.1:9999")
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != config.StoreMemory || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.CatalogPath != filepath.Join(dir, "labs.yaml") {
		t.Fatalf("catalog path should resolve against data dir, got %q", cfg.CatalogPath)
	}
	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Fatalf("env override not applied: %q", cfg.HTTPAddr)
	}
}

func TestNewRejectsInvalidValues(t *testing.T) {
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir must fail")
	}
	dir := t.TempDir()
	t.Setenv("VLX_STORE", "redis")
	if _, err := config.New(dir); err == nil {
		t.Fatalf("unknown store must fail")
	}
	t.Setenv("VLX_STORE", "")
	t.Setenv("VLX_LOG_LEVEL", "loud")
	if _, err := config.New(dir); err == nil {
		t.Fatalf("unknown log level must fail")
	}
}
