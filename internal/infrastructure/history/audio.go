package history

import (
	"os"
	"path/filepath"

	"github.com/doeshing/vox-go/internal/domain"
)

// audioPath derives the fixed on-disk location for an entry's audio.
func audioPath(dir, entryID, format string) string {
	if format == "" {
		format = domain.DefaultAudioFormat
	}
	return filepath.Join(dir, entryID+"."+format)
}

func writeAudio(dir string, audio []byte, entryID, format string) (string, error) {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return "", err
	}
	path := audioPath(dir, entryID, format)
	if err := os.WriteFile(path, audio, domain.AudioFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

// removeAudio deletes an entry's audio file. Entries without audio never
// touch the filesystem; a missing file is not an error.
func removeAudio(entry domain.HistoryEntry) error {
	if entry.AudioFile == "" {
		return nil
	}
	if err := os.Remove(entry.AudioFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
