package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// AudioFilePermissions is the permission for saved audio files (rw-r--r--)
	AudioFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultSynthesisTimeout bounds a single synthesis call
	DefaultSynthesisTimeout = 60 * time.Second
	// DefaultCatalogTimeout bounds a voice catalog lookup
	DefaultCatalogTimeout = 5 * time.Second
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Audio constants
const (
	// DefaultAudioFormat is the output format requested when none is chosen
	DefaultAudioFormat = "mp3"
	// PlaceholderVoice is the degraded single-entry voice catalog
	PlaceholderVoice = "default"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
