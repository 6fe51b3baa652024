package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSlot stores the record as <dir>/<name>.json.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by a file in dir. The directory is
// created on first save.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("slot name is required")
	}
	return &FileSlot{path: filepath.Join(filepath.Clean(dir), name+".json")}, nil
}

// Path returns the file the record is stored in.
func (s *FileSlot) Path() string {
	return s.path
}

// Load reads the record file. A missing file is an absent slot.
func (s *FileSlot) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read state file: %w", err)
	}
	return data, true, nil
}

// Save writes the record to a temporary file and renames it into place, so
// readers see either the old record or the new one.
func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Clear removes the record file.
func (s *FileSlot) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileSlot) Close() error {
	return nil
}
