package domain_test

import (
	"testing"

	"github.com/doeshing/vox-go/internal/domain"
)

// TestConfig_GetDefaultBackend tests retrieving the default backend
func TestConfig_GetDefaultBackend(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
		wantName  string
	}{
		{
			name: "returns preferred backend",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultBackend: "openai"},
				Backends: []domain.BackendDefinition{
					{Name: "chatterbox"},
					{Name: "openai"},
				},
			},
			wantName: "openai",
		},
		{
			name: "falls back to first backend without preference",
			config: domain.Config{
				Backends: []domain.BackendDefinition{
					{Name: "chatterbox"},
					{Name: "kokoro"},
				},
			},
			wantName: "chatterbox",
		},
		{
			name: "errors when preference is not configured",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultBackend: "nonexistent"},
				Backends:    []domain.BackendDefinition{{Name: "chatterbox"}},
			},
			wantError: true,
		},
		{
			name:      "errors with no backends at all",
			config:    domain.Config{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := tt.config.GetDefaultBackend()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if backend.Name != tt.wantName {
				t.Errorf("got backend %s, want %s", backend.Name, tt.wantName)
			}
		})
	}
}

// TestConfig_AddBackend tests adding a new backend
func TestConfig_AddBackend(t *testing.T) {
	config := domain.Config{
		Backends: []domain.BackendDefinition{{Name: "chatterbox"}},
	}

	if err := config.AddBackend(domain.BackendDefinition{Name: "kokoro"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !config.HasBackend("kokoro") {
		t.Error("kokoro should be configured after AddBackend")
	}

	if err := config.AddBackend(domain.BackendDefinition{Name: "chatterbox"}); err == nil {
		t.Error("duplicate backend should error")
	}
}

// TestConfig_RemoveBackend tests removing a backend
func TestConfig_RemoveBackend(t *testing.T) {
	config := domain.Config{
		Preferences: domain.Preferences{DefaultBackend: "openai"},
		Backends: []domain.BackendDefinition{
			{Name: "chatterbox"},
			{Name: "openai"},
		},
	}

	if err := config.RemoveBackend("openai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.HasBackend("openai") {
		t.Error("openai should be gone")
	}
	if config.Preferences.DefaultBackend != "" {
		t.Errorf("default preference should be cleared, got %s", config.Preferences.DefaultBackend)
	}

	if err := config.RemoveBackend("never-existed"); err == nil {
		t.Error("removing unknown backend should error")
	}
}

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{
			name: "valid config",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultBackend: "chatterbox", TimeoutSeconds: 60},
				Backends:    []domain.BackendDefinition{{Name: "chatterbox"}},
				History:     domain.HistorySettings{Storage: "json"},
			},
		},
		{
			name: "duplicate backend names",
			config: domain.Config{
				Backends: []domain.BackendDefinition{{Name: "a"}, {Name: "a"}},
			},
			wantError: true,
		},
		{
			name: "empty backend name",
			config: domain.Config{
				Backends: []domain.BackendDefinition{{Name: ""}},
			},
			wantError: true,
		},
		{
			name: "default backend missing",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultBackend: "ghost"},
				Backends:    []domain.BackendDefinition{{Name: "chatterbox"}},
			},
			wantError: true,
		},
		{
			name: "negative timeout",
			config: domain.Config{
				Preferences: domain.Preferences{TimeoutSeconds: -1},
			},
			wantError: true,
		},
		{
			name: "unknown history storage",
			config: domain.Config{
				History: domain.HistorySettings{Storage: "redis"},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
