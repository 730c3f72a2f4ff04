package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("version %d, want 1", cfg.Version)
	}
	if cfg.Mesh.Dimension != 4 {
		t.Errorf("dimension %d, want 4", cfg.Mesh.Dimension)
	}
	if cfg.Database.Path == "" {
		t.Error("database path not defaulted")
	}
	if cfg.Heartbeat.Pattern == "" {
		t.Error("heartbeat pattern not defaulted")
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Run("loads values and fills defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `version: 1
mesh:
  dimension: 6
metadata:
  path: ./nodes.yaml
  watch_debounce: 250ms
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		cfg, loadedPath, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loadedPath != path {
			t.Errorf("loaded path %q, want %q", loadedPath, path)
		}
		if cfg.Mesh.Dimension != 6 {
			t.Errorf("dimension %d, want 6", cfg.Mesh.Dimension)
		}
		if cfg.Metadata.Path != "./nodes.yaml" {
			t.Errorf("metadata path %q", cfg.Metadata.Path)
		}
		if cfg.Metadata.WatchDebounce.Duration() != 250*time.Millisecond {
			t.Errorf("debounce %v, want 250ms", cfg.Metadata.WatchDebounce.Duration())
		}
		// Unspecified fields get defaults
		if cfg.Database.Path == "" || cfg.Heartbeat.Pattern == "" {
			t.Error("defaults not applied to missing fields")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("mesh: [broken"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		_, _, err := LoadFromPath(path)
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Mesh.Dimension = 7
	cfg.Heartbeat.Pattern = "1100"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Mesh.Dimension != 7 || loaded.Heartbeat.Pattern != "1100" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		in   Duration
		want time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"", 0},
		{"garbage", 0},
	}

	for _, tc := range cases {
		if got := tc.in.Duration(); got != tc.want {
			t.Errorf("Duration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	t.Setenv(EnvConfigPath, path)
	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}

	t.Setenv(EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	if got := FindConfigPath(); got == filepath.Join(dir, "missing.yaml") {
		t.Error("FindConfigPath returned a non-existent explicit path")
	}
}
