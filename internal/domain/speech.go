package domain

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// Validation and routing sentinels surfaced as user-facing status messages.
var (
	// ErrEmptyText rejects a dispatch before any external call is made.
	ErrEmptyText = errors.New("enter some text to synthesize")
	// ErrVoiceFileNotFound is raised when a custom voice identifier has no
	// matching file in the voices directory.
	ErrVoiceFileNotFound = errors.New("voice file not found")
)

// Default generation parameter values. A parameter equal to its default is
// omitted from the outbound request entirely.
const (
	DefaultSpeed        = 1.0
	DefaultExaggeration = 0.5
	DefaultCFGWeight    = 0.5
	DefaultStability    = 0.5
	DefaultSimilarity   = 0.75
)

// GenerationParams carries every tunable the UI exposes. Which fields apply
// depends on the selected backend's ParamSchema; inapplicable fields are
// never sent.
type GenerationParams struct {
	Speed            float64
	Exaggeration     float64
	CFGWeight        float64
	Stability        float64
	Similarity       float64
	Language         string
	Instructions     string
	VoiceDescription string
	Seed             *int64
}

// Applied filters params down to the schema-applicable, non-default values.
// Seed is attached whenever supplied, regardless of schema.
func (p GenerationParams) Applied(schema ParamSchema) map[string]string {
	out := map[string]string{}
	for _, field := range schema.Fields {
		switch field {
		case FieldSpeed:
			if p.Speed > 0 && p.Speed != DefaultSpeed {
				out[string(field)] = formatFloat(p.Speed)
			}
		case FieldExaggeration:
			if p.Exaggeration > 0 && p.Exaggeration != DefaultExaggeration {
				out[string(field)] = formatFloat(p.Exaggeration)
			}
		case FieldCFGWeight:
			if p.CFGWeight > 0 && p.CFGWeight != DefaultCFGWeight {
				out[string(field)] = formatFloat(p.CFGWeight)
			}
		case FieldStability:
			if p.Stability > 0 && p.Stability != DefaultStability {
				out[string(field)] = formatFloat(p.Stability)
			}
		case FieldSimilarity:
			if p.Similarity > 0 && p.Similarity != DefaultSimilarity {
				out[string(field)] = formatFloat(p.Similarity)
			}
		case FieldLanguage:
			if p.Language != "" {
				out[string(field)] = p.Language
			}
		case FieldInstructions:
			if p.Instructions != "" {
				out[string(field)] = p.Instructions
			}
		}
	}
	if p.Seed != nil {
		out["seed"] = strconv.FormatInt(*p.Seed, 10)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GenerateRequest captures user intent for one synthesis dispatch.
type GenerateRequest struct {
	Context          context.Context
	Text             string
	BackendOverride  string
	Voice            string
	Model            string
	Format           string
	Params           GenerationParams
	VoiceDesign      bool
	AutoSaveOverride *bool
}

// GenerationMeta describes exactly what was sent to the backend.
// It is the metadata half of the tuple consumed by playback and history.
type GenerationMeta struct {
	Text    string
	Voice   string
	Backend BackendKind
	Model   string
	Format  string
	Params  map[string]string
}

// GenerateResult is the canonical response propagated back to the CLI.
type GenerateResult struct {
	Audio     []byte
	Meta      GenerationMeta
	Entry     *HistoryEntry
	AudioFile string
}

// Session is the per-invocation state record: the last generation's audio and
// metadata, passed through the dispatcher and presentation layer instead of
// living in ambient globals. Reset clears it at each new generation attempt.
type Session struct {
	StartedAt time.Time
	Audio     []byte
	Meta      *GenerationMeta
}

// NewSession creates the session record at session start.
func NewSession() *Session {
	return &Session{StartedAt: time.Now()}
}

// Reset clears any previous generation state.
func (s *Session) Reset() {
	s.Audio = nil
	s.Meta = nil
}

// Store records a completed generation.
func (s *Session) Store(audio []byte, meta GenerationMeta) {
	s.Audio = audio
	s.Meta = &meta
}

// GenerateService exposes the use-case boundary for handling a dispatch.
type GenerateService interface {
	Run(GenerateRequest) (GenerateResult, error)
}
