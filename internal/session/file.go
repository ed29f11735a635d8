package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileSlot stores the session as <dir>/<name>.json.
type fileSlot struct {
	path string
}

// NewFileStore returns a Store backed by a JSON file in dir.
func NewFileStore(dir, name string) Store {
	return newSlotStore(&fileSlot{path: filepath.Join(dir, name+".json")})
}

func (f *fileSlot) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errSlotEmpty
	}
	return data, err
}

// write replaces the file atomically through a temp file and rename.
func (f *fileSlot) write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}

func (f *fileSlot) remove() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *fileSlot) close() error { return nil }

func (f *fileSlot) describe() string { return f.path }
