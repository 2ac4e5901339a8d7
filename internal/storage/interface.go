package storage

import (
	"context"
	"errors"

	"github.com/cartridge/tictactoe-rl/internal/policy"
)

var ErrNotFound = errors.New("policy file not found")

// Store defines where policy tables live between runs
type Store interface {
	// Exists reports whether a table is already stored at path
	Exists(path string) (bool, error)

	// Load reads the table at path
	Load(ctx context.Context, path string) (*policy.Table, error)

	// Save writes table to path, replacing any previous table
	Save(ctx context.Context, path string, table *policy.Table) error
}
