package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Snapshot.Path != "registry.json" {
		t.Errorf("snapshot path: got %q", cfg.Snapshot.Path)
	}
	if cfg.Serve.Port != 7474 || cfg.Serve.Host != "localhost" {
		t.Errorf("serve defaults: got %s:%d", cfg.Serve.Host, cfg.Serve.Port)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("output format: got %q", cfg.Output.Format)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	yml := []byte("snapshot:\n  path: build/registry.json\nserve:\n  port: 9000\noutput:\n  format: json\n")
	if err := os.WriteFile(filepath.Join(dir, "hostbind.yml"), yml, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Snapshot.Path != "build/registry.json" {
		t.Errorf("snapshot path: got %q", cfg.Snapshot.Path)
	}
	if cfg.Serve.Port != 9000 {
		t.Errorf("serve port: got %d", cfg.Serve.Port)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output format: got %q", cfg.Output.Format)
	}
	// Unset fields keep their defaults.
	if cfg.Serve.Host != "localhost" {
		t.Errorf("serve host: got %q", cfg.Serve.Host)
	}
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	dir := chdirTemp(t)

	yml := []byte("output:\n  format: xml\n")
	if err := os.WriteFile(filepath.Join(dir, "hostbind.yml"), yml, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestLoad_RejectsBadPort(t *testing.T) {
	dir := chdirTemp(t)

	yml := []byte("serve:\n  port: -1\n")
	if err := os.WriteFile(filepath.Join(dir, "hostbind.yml"), yml, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid port")
	}
}
