// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The application depends on these
// abstractions, not on concrete HTTP clients, file stores, or CLI frameworks.
package ports

import (
	"context"
	"errors"

	"github.com/doeshing/vox-go/internal/domain"
)

// ErrUnsupportedOperation is returned by synthesis clients for capabilities
// (cloning, voice design, live catalogs) their backend does not offer.
var ErrUnsupportedOperation = errors.New("operation not supported by backend")

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.vox/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SpeechClientFactory builds synthesis clients for configured backends.
type SpeechClientFactory interface {
	ForBackend(domain.BackendDefinition) (SpeechClient, error)
}

// BackendSelector resolves the backend a dispatch should use when the user
// did not pick one. Implementations honor availability: an unavailable
// preference falls back instead of being dispatched to.
type BackendSelector interface {
	DefaultBackend() (domain.BackendDefinition, bool)
}

// SynthesisRequest contains everything one outbound synthesis call needs.
// Params holds only the schema-applicable, non-default values; clients must
// not re-add defaults for absent keys.
type SynthesisRequest struct {
	Text   string
	Voice  string
	Model  string
	Format string
	Params map[string]string
}

// SynthesisResult is the opaque audio buffer a backend returned.
type SynthesisResult struct {
	Audio       []byte
	ContentType string
}

// SpeechClient is the boundary to one externally hosted TTS backend. All
// operations are synchronous; failures are generic transport/backend errors
// that callers do not decompose further.
type SpeechClient interface {
	Name() string
	// Synthesize issues a standard synthesis call with the voice identifier as-is.
	Synthesize(ctx context.Context, req SynthesisRequest) (SynthesisResult, error)
	// SynthesizeFromDescription generates speech in a voice designed from a
	// natural-language description. Backends without voice design return
	// ErrUnsupportedOperation.
	SynthesizeFromDescription(ctx context.Context, description string, req SynthesisRequest) (SynthesisResult, error)
	// SynthesizeFromReference clones the voice found in a local reference
	// audio file. Backends without cloning return ErrUnsupportedOperation.
	SynthesizeFromReference(ctx context.Context, referencePath string, req SynthesisRequest) (SynthesisResult, error)
	// ListVoices queries the backend's live voice catalog.
	ListVoices(ctx context.Context) ([]string, error)
}

// HistoryRepository persists generation history. Persistence is whole-state:
// Save replaces everything, and every mutating operation persists before it
// returns. Load swallows corrupt state and reports an empty list.
type HistoryRepository interface {
	Load() []domain.HistoryEntry
	Save(entries []domain.HistoryEntry) error
	Append(entry domain.HistoryEntry) error
	Delete(id string) error
	Clear() error
	SaveAudio(audio []byte, entryID, format string) (string, error)
	Search(limit int, query string) ([]domain.HistoryEntry, error)
	ExportJSON(dest string) error
	Path() string
}

// VoiceLibrary manages user-saved voice reference assets on local disk.
type VoiceLibrary interface {
	// List returns the saved custom voice names, sorted.
	List() []string
	// Resolve prefix-matches a custom voice name to its on-disk file path.
	// Returns domain.ErrVoiceFileNotFound when no file matches.
	Resolve(name string) (string, error)
	// Save copies a reference audio file into the library under name,
	// keeping the original extension. Returns the stored path.
	Save(sourcePath, name string) (string, error)
	Delete(name string) error
	Dir() string
}

// AudioPlayer plays a generated audio file on the local machine.
type AudioPlayer interface {
	Play(ctx context.Context, path string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
