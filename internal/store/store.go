// Package store persists the UserState document.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/healthtab/internal/db"
	"github.com/alexanderramin/healthtab/internal/domain"
)

// ErrCorrupt marks a stored document that could not be decoded or that
// breaks the state invariants.
var ErrCorrupt = errors.New("corrupt state document")

// ErrDiverged marks a save whose document does not extend the stored
// history: it is shorter, or its entries differ from the stored ones.
var ErrDiverged = errors.New("state document does not extend the stored history")

// StateStore loads and saves the whole state document. Save either
// replaces the stored document completely or leaves the previous one in
// place.
type StateStore interface {
	Load(ctx context.Context) (*domain.UserState, error)
	Save(ctx context.Context, s *domain.UserState) error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open builds the store for backend at path. The returned closer releases
// any resources the store holds.
func Open(backend, path string) (StateStore, io.Closer, error) {
	switch strings.ToLower(backend) {
	case BackendJSON, "":
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return fs, fs, nil
	case BackendSQLite:
		database, err := db.OpenDB(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening state database: %w", err)
		}
		return NewSQLiteStore(database, db.NewSQLiteUnitOfWork(database)), database, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// DefaultFileName returns the state file name used for backend.
func DefaultFileName(backend string) string {
	if strings.EqualFold(backend, BackendSQLite) {
		return "healthtab.db"
	}
	return "user_state.json"
}

// DefaultPath joins dir with DefaultFileName(backend).
func DefaultPath(dir, backend string) string {
	return filepath.Join(dir, DefaultFileName(backend))
}

func loadError(err error) error {
	return &domain.StorageError{Op: "load", Err: err}
}

func saveError(err error) error {
	return &domain.StorageError{Op: "save", Err: err}
}
