package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// SQLiteStore persists history in a SQLite database. It offers the same
// contract as FileStore plus indexed search and retention pruning.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	audioDir string
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.vox/history/history.db database.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.HistoryDir(), "history.db"), filesystem.AudioDir())
}

// NewSQLiteStoreAt creates a store rooted at explicit locations (used by tests).
// When the database cannot be opened or initialized, the store degrades to the
// JSON file store next to it.
func NewSQLiteStoreAt(path, audioDir string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, audioDir: audioDir}
	}
	store := &SQLiteStore{db: db, path: path, audioDir: audioDir}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path, audioDir: audioDir}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		created_at TEXT,
		text TEXT,
		voice TEXT,
		backend TEXT,
		model TEXT,
		audio_file TEXT,
		params TEXT
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return NewFileStoreAt(strings.TrimSuffix(s.path, ".db")+".json", s.audioDir)
}

// Load returns all entries, newest-first (insertion order).
func (s *SQLiteStore) Load() []domain.HistoryEntry {
	if s.db == nil {
		return s.fallback().Load()
	}
	entries, err := s.query("SELECT id, created_at, text, voice, backend, model, audio_file, params FROM generations ORDER BY rowid DESC", nil)
	if err != nil {
		return nil
	}
	return entries
}

// Save replaces the entire persisted state with the given list.
func (s *SQLiteStore) Save(entries []domain.HistoryEntry) error {
	if s.db == nil {
		return s.fallback().Save(entries)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM generations"); err != nil {
		tx.Rollback()
		return err
	}
	// Entries arrive newest-first; insert oldest-first so rowid order matches.
	for i := len(entries) - 1; i >= 0; i-- {
		if err := insertEntry(tx, entries[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Append inserts a new entry as the most recent one.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	if s.db == nil {
		return s.fallback().Append(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertEntry(s.db, entry)
}

// Delete removes the matching entry and its audio file (no-op if absent).
func (s *SQLiteStore) Delete(id string) error {
	if s.db == nil {
		return s.fallback().Delete(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.query("SELECT id, created_at, text, voice, backend, model, audio_file, params FROM generations WHERE id = ?", []interface{}{id})
	if err != nil || len(entries) == 0 {
		return err
	}
	if err := removeAudio(entries[0]); err != nil {
		return err
	}
	_, err = s.db.Exec("DELETE FROM generations WHERE id = ?", id)
	return err
}

// Clear deletes all entries and their audio files.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.Load() {
		if err := removeAudio(entry); err != nil {
			return err
		}
	}
	_, err := s.db.Exec("DELETE FROM generations")
	return err
}

// SaveAudio writes audio bytes under the fixed audio directory.
func (s *SQLiteStore) SaveAudio(audio []byte, entryID, format string) (string, error) {
	return writeAudio(s.audioDir, audio, entryID, format)
}

// Search returns entries matching a keyword over text and voice.
func (s *SQLiteStore) Search(limit int, query string) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback().Search(limit, query)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, created_at, text, voice, backend, model, audio_file, params FROM generations")
	var args []interface{}
	if query != "" {
		builder.WriteString(" WHERE text LIKE ? OR voice LIKE ?")
		args = append(args, "%"+query+"%", "%"+query+"%")
	}
	builder.WriteString(" ORDER BY rowid DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	return s.query(builder.String(), args)
}

// PruneOlderThan removes entries (and their audio) older than the given days.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if s.db == nil || days <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	for _, entry := range s.Load() {
		if entry.CreatedAt.Before(cutoff) {
			if err := s.Delete(entry.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportJSON writes the generations table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, entry := range s.Load() {
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

// Path returns the backing file actually in use: the database, or the JSON
// fallback when the database could not be opened.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback().Path()
	}
	return s.path
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func insertEntry(db execer, entry domain.HistoryEntry) error {
	var params []byte
	if len(entry.Params) > 0 {
		params, _ = json.Marshal(entry.Params)
	}
	_, err := db.Exec(`INSERT INTO generations
		(id, created_at, text, voice, backend, model, audio_file, params)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.Format(time.RFC3339),
		entry.Text,
		entry.Voice,
		string(entry.Backend),
		entry.Model,
		entry.AudioFile,
		string(params),
	)
	return err
}

func (s *SQLiteStore) query(stmt string, args []interface{}) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var ts, backend, params string
		if err := rows.Scan(&entry.ID, &ts, &entry.Text, &entry.Voice, &backend, &entry.Model, &entry.AudioFile, &params); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.CreatedAt = t
		}
		entry.Backend = domain.BackendKind(backend)
		if params != "" {
			_ = json.Unmarshal([]byte(params), &entry.Params)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
