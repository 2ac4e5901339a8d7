package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cartridge/tictactoe-rl/internal/metrics"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

// FileStore keeps each table in its own file
type FileStore struct {
	metrics *metrics.Collector
}

// NewFileStore creates a file backed store. collector may be nil.
func NewFileStore(collector *metrics.Collector) *FileStore {
	return &FileStore{metrics: collector}
}

var _ Store = (*FileStore)(nil)

// Exists implements Store.Exists
func (f *FileStore) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// Load implements Store.Load
func (f *FileStore) Load(ctx context.Context, path string) (*policy.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table := &policy.Table{}
	if err := table.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("malformed policy file %s: %w", path, err)
	}

	if f.metrics != nil {
		f.metrics.PolicyLoaded(path, len(data), time.Since(start))
	}
	return table, nil
}

// Save implements Store.Save. The table is written to a temporary file in
// the same directory and renamed over path.
func (f *FileStore) Save(ctx context.Context, path string, table *policy.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	data, err := table.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	if f.metrics != nil {
		f.metrics.PolicySaved(path, len(data), time.Since(start))
	}
	return nil
}
