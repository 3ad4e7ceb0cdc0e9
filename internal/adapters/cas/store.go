// Package cas implements the file-backed export record store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store persists a single domain.ExportRecord as a flat JSON file.
//
// The record is owned by the invoking process; no cross-process locking is
// taken. Writes go through a temp file and an atomic rename so a reader
// never observes a torn record.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at the given path. The file
// does not need to exist yet.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, zerr.New("record store path is empty")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Get reads the stored record. Absence is a normal cold-start signal and
// returns (nil, nil). A file that exists but cannot be parsed, or that
// lacks the hash field, fails with domain.ErrRecordCorrupt.
func (s *Store) Get() (*domain.ExportRecord, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache record"), "path", s.path)
	}

	var rec domain.ExportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecordCorrupt, err.Error()), "path", s.path)
	}
	if rec.Hash == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecordCorrupt, "missing hash field"), "path", s.path)
	}
	return &rec, nil
}

// Put atomically replaces any prior record with rec.
func (s *Store) Put(rec domain.ExportRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache record")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for cache record")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file for cache record")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write cache record")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close cache record temp file")
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to chmod cache record")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to replace cache record")
	}
	return nil
}
