package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/vox-go/internal/domain"
)

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("first run should write the config file: %v", err)
	}

	if len(cfg.Backends) != 4 {
		t.Fatalf("expected 4 default backends, got %d", len(cfg.Backends))
	}
	for _, name := range []string{"chatterbox", "kokoro", "openai", "elevenlabs"} {
		if !cfg.HasBackend(name) {
			t.Fatalf("default config missing backend %s", name)
		}
	}
	if !cfg.Preferences.AutoSave || cfg.Preferences.Format != "mp3" {
		t.Fatalf("unexpected default preferences: %+v", cfg.Preferences)
	}
	if cfg.History.Storage != "json" {
		t.Fatalf("default history storage should be json, got %s", cfg.History.Storage)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Preferences.DefaultBackend = "kokoro"
	cfg.History.Storage = "sqlite"
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Preferences.DefaultBackend != "kokoro" || reloaded.History.Storage != "sqlite" {
		t.Fatalf("round trip lost changes: %+v", reloaded)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "preferences:\n  default_backend: chatterbox\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.Format != domain.DefaultAudioFormat {
		t.Fatalf("format not hydrated, got %q", cfg.Preferences.Format)
	}
	if cfg.Preferences.TimeoutSeconds != 60 {
		t.Fatalf("timeout not hydrated, got %d", cfg.Preferences.TimeoutSeconds)
	}
	if len(cfg.Backends) == 0 {
		t.Fatal("backends not hydrated")
	}
	if cfg.Preferences.DefaultBackend != "chatterbox" {
		t.Fatalf("explicit value overwritten: %+v", cfg.Preferences)
	}
}

func TestPathHonorsEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "vox.yaml")
	t.Setenv("VOX_CONFIG", custom)

	loader := NewFileLoader("")
	if got := loader.Path(); got != custom {
		t.Fatalf("Path = %s, want %s", got, custom)
	}
}
