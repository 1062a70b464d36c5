package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one persisted record of a past generation. Entries are
// immutable once created; they are only ever deleted.
type HistoryEntry struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Text      string            `json:"text"`
	Voice     string            `json:"voice"`
	Backend   BackendKind       `json:"backend"`
	Model     string            `json:"model,omitempty"`
	AudioFile string            `json:"audio_file,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// NewHistoryID generates a unique entry id from the creation timestamp plus
// a short random suffix.
func NewHistoryID(now time.Time) string {
	return now.Format("20060102T150405") + "_" + uuid.NewString()[:8]
}

// NewHistoryEntry builds an entry from a generation's metadata tuple.
// Params holds only the non-default values that were actually sent.
func NewHistoryEntry(meta GenerationMeta) HistoryEntry {
	now := time.Now()
	entry := HistoryEntry{
		ID:        NewHistoryID(now),
		CreatedAt: now,
		Text:      meta.Text,
		Voice:     meta.Voice,
		Backend:   meta.Backend,
		Model:     meta.Model,
	}
	if len(meta.Params) > 0 {
		entry.Params = meta.Params
	}
	return entry
}
