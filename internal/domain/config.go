package domain

// Config mirrors ~/.vox/config.yaml.
type Config struct {
	ConfigFormatVersion string              `yaml:"config_format_version"`
	Preferences         Preferences         `yaml:"preferences"`
	Backends            []BackendDefinition `yaml:"backends"`
	History             HistorySettings     `yaml:"history"`
	Playback            PlaybackSettings    `yaml:"playback"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultBackend string `yaml:"default_backend"`
	AutoSave       bool   `yaml:"auto_save"`
	Format         string `yaml:"format"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// BackendDefinition describes one synthesis backend declared in the config
// file: where it lives and how it authenticates. Capability metadata (models,
// voices, parameters) comes from the backend schema, not the config.
type BackendDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var,omitempty"`
	Local      bool   `yaml:"local,omitempty"`
}

// Kind maps the definition onto a known backend kind.
func (b BackendDefinition) Kind() BackendKind {
	return BackendKind(b.Name)
}

// HistorySettings controls generation history persistence.
type HistorySettings struct {
	Storage       string `yaml:"storage"` // "json" (default) or "sqlite"
	RetentionDays int    `yaml:"retention_days,omitempty"`
}

// PlaybackSettings controls local audio playback after generation.
type PlaybackSettings struct {
	Player   string `yaml:"player,omitempty"` // binary name, auto-detected when empty
	AutoPlay bool   `yaml:"auto_play"`
}
