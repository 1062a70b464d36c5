// Package history persists generation history and its audio assets.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// FileStore keeps the whole history list in one JSON file, newest-first.
// Persistence is load-modify-save: every mutating operation rewrites the
// full state before returning. A single local session is assumed; there is
// no cross-process locking.
type FileStore struct {
	path     string
	audioDir string
	mu       sync.Mutex
}

// NewFileStore creates a history store under ~/.vox/history/history.json.
func NewFileStore() *FileStore {
	return &FileStore{
		path:     filepath.Join(filesystem.HistoryDir(), "history.json"),
		audioDir: filesystem.AudioDir(),
	}
}

// NewFileStoreAt creates a store rooted at explicit locations (used by tests).
func NewFileStoreAt(path, audioDir string) *FileStore {
	return &FileStore{path: path, audioDir: audioDir}
}

// Load returns all entries, newest-first. Missing or unreadable state is
// treated as empty history, never as an error.
func (f *FileStore) Load() []domain.HistoryEntry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Save replaces the entire persisted state with the given list.
func (f *FileStore) Save(entries []domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(entries)
}

func (f *FileStore) save(entries []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, domain.AudioFilePermissions)
}

// Append prepends a new entry and persists.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := append([]domain.HistoryEntry{entry}, f.Load()...)
	return f.save(entries)
}

// Delete removes the matching entry and its audio file. Unknown ids are a
// no-op, so a repeated delete yields the same state as a single one.
func (f *FileStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.Load()
	index := -1
	for i, entry := range entries {
		if entry.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}
	if err := removeAudio(entries[index]); err != nil {
		return err
	}
	entries = append(entries[:index], entries[index+1:]...)
	return f.save(entries)
}

// Clear removes every entry along with all associated audio files.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.Load() {
		if err := removeAudio(entry); err != nil {
			return err
		}
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveAudio writes audio bytes under the fixed audio directory, named by
// entry id and format, and returns the resulting path.
func (f *FileStore) SaveAudio(audio []byte, entryID, format string) (string, error) {
	return writeAudio(f.audioDir, audio, entryID, format)
}

// Search filters entries by a keyword over text and voice (newest-first).
func (f *FileStore) Search(limit int, query string) ([]domain.HistoryEntry, error) {
	entries := f.Load()
	var out []domain.HistoryEntry
	needle := strings.ToLower(query)
	for _, entry := range entries {
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Text), needle) &&
			!strings.Contains(strings.ToLower(entry.Voice), needle) {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ExportJSON writes the history list to a jsonl file.
func (f *FileStore) ExportJSON(dest string) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, entry := range f.Load() {
		b, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.HistoryRepository = (*FileStore)(nil)
