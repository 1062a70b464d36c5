// Package voices manages user-saved voice reference assets on local disk.
package voices

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// Library stores voice reference files under a fixed voices directory.
// Each asset is a single file named by its identifier plus the original
// extension; history entries and the registry reference assets by path or
// name, never by copy.
type Library struct {
	dir string
}

// NewLibrary returns a library rooted under ~/.vox/voices.
func NewLibrary() *Library {
	return &Library{dir: filesystem.VoicesDir()}
}

// NewLibraryAt returns a library rooted at dir (used by tests).
func NewLibraryAt(dir string) *Library {
	return &Library{dir: dir}
}

// Dir exposes the voices directory path.
func (l *Library) Dir() string {
	return l.dir
}

// List returns the saved custom voice names, sorted (best-effort).
func (l *Library) List() []string {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Resolve prefix-matches a voice name to its on-disk file path.
func (l *Library) Resolve(name string) (string, error) {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrVoiceFileNotFound, name)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.HasPrefix(f.Name(), name) {
			return filepath.Join(l.dir, f.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrVoiceFileNotFound, name)
}

// Save copies a reference audio file into the library under name, keeping the
// original extension. An empty name derives the identifier from the filename.
func (l *Library) Save(sourcePath, name string) (string, error) {
	if name == "" {
		base := filepath.Base(sourcePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" {
		return "", fmt.Errorf("voice name required")
	}
	if err := os.MkdirAll(l.dir, domain.DirectoryPermissions); err != nil {
		return "", err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open reference file: %w", err)
	}
	defer src.Close()

	dest := filepath.Join(l.dir, name+filepath.Ext(sourcePath))
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.AudioFilePermissions)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return dest, nil
}

// Delete removes a saved voice asset. Missing assets are a no-op.
func (l *Library) Delete(name string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ ports.VoiceLibrary = (*Library)(nil)
