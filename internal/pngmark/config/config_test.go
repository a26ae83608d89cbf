package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":8080\"\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %s, want :8080", cfg.Addr)
	}

	def := Default()
	if cfg.IndexPath != def.IndexPath {
		t.Errorf("indexPath = %s, want default %s", cfg.IndexPath, def.IndexPath)
	}
	if cfg.MaxUploadBytes != def.MaxUploadBytes {
		t.Errorf("maxUploadBytes = %d, want default %d", cfg.MaxUploadBytes, def.MaxUploadBytes)
	}
	if cfg.LogLevel != def.LogLevel {
		t.Errorf("logLevel = %s, want default %s", cfg.LogLevel, def.LogLevel)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":9999\"\nindexPath: /tmp/scans.db\nmaxUploadBytes: 1024\nlogLevel: debug\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.IndexPath != "/tmp/scans.db" ||
		cfg.MaxUploadBytes != 1024 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [not: valid"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
