package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.vox/config.yaml (overridable via VOX_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Save persists the configuration back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("VOX_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.DataDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			AutoSave:       true,
			Format:         domain.DefaultAudioFormat,
			TimeoutSeconds: 60,
		},
		History: domain.HistorySettings{
			Storage: "json",
		},
		Playback: domain.PlaybackSettings{
			AutoPlay: true,
		},
		Backends: []domain.BackendDefinition{
			{
				Name:     string(domain.BackendChatterbox),
				Endpoint: "http://localhost:8004",
				Local:    true,
			},
			{
				Name:     string(domain.BackendKokoro),
				Endpoint: "http://localhost:8880",
				Local:    true,
			},
			{
				Name:       string(domain.BackendOpenAI),
				Endpoint:   "https://api.openai.com",
				AuthEnvVar: "OPENAI_API_KEY",
			},
			{
				Name:       string(domain.BackendElevenLabs),
				Endpoint:   "https://api.elevenlabs.io",
				AuthEnvVar: "ELEVENLABS_API_KEY",
			},
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.Format == "" {
		cfg.Preferences.Format = domain.DefaultAudioFormat
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = 60
	}
	if cfg.History.Storage == "" {
		cfg.History.Storage = "json"
	}
	if len(cfg.Backends) == 0 {
		cfg.Backends = defaultConfig().Backends
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.Home(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
