package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WindowDays != 90 || cfg.PastHorizonDays != 270 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "data_dir: /tmp/artlinks\nwindow_days: 30\ndisabled:\n  - mothbelly\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/artlinks" || cfg.WindowDays != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.PastHorizonDays != 270 {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
	if cfg.SourceEnabled("mothbelly") {
		t.Error("disabled source should not be enabled")
	}
	if !cfg.SourceEnabled("syzygy") {
		t.Error("unlisted source should be enabled")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
