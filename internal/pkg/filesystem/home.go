// Package filesystem resolves the per-user data directories.
package filesystem

import (
	"os"
	"path/filepath"
)

// Home returns the user home directory, or "." when it cannot be resolved.
func Home() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DataDir returns the base vox data directory (~/.vox, VOX_HOME override).
func DataDir() string {
	if custom := os.Getenv("VOX_HOME"); custom != "" {
		return custom
	}
	return filepath.Join(Home(), ".vox")
}

// AudioDir returns the directory holding persisted generation audio.
func AudioDir() string {
	return filepath.Join(DataDir(), "audio")
}

// VoicesDir returns the directory holding custom voice reference assets.
func VoicesDir() string {
	return filepath.Join(DataDir(), "voices")
}

// HistoryDir returns the directory holding history state.
func HistoryDir() string {
	return filepath.Join(DataDir(), "history")
}
