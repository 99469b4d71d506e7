package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenFileAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTimeoutSeconds != 120 {
		t.Fatalf("DefaultTimeoutSeconds = %d, want 120", cfg.DefaultTimeoutSeconds)
	}
	if cfg.DenoPath != "deno" || cfg.UvPath != "uv" {
		t.Fatalf("unexpected binary paths: %+v", cfg)
	}
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "default_timeout_seconds = 30\ndeno_path = \"/opt/bin/deno\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTimeoutSeconds != 30 {
		t.Fatalf("DefaultTimeoutSeconds = %d, want 30", cfg.DefaultTimeoutSeconds)
	}
	if cfg.DenoPath != "/opt/bin/deno" {
		t.Fatalf("DenoPath = %q, want override", cfg.DenoPath)
	}
	if cfg.UvPath != "uv" {
		t.Fatalf("UvPath = %q, want default preserved", cfg.UvPath)
	}
	if len(cfg.WarmupPython) == 0 {
		t.Fatalf("expected warm-up defaults to survive an unrelated override")
	}
}

func TestLoadReturnsErrorForMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for malformed TOML")
	}
}
