// Package filestore persists the session record as a small JSON document on disk,
// for command-line clients that have no browser storage to lean on.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/sessions"
)

var _ sessions.Storage = (*Store)(nil)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Store keeps every key in one file. Each write replaces the file atomically.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[filestore.New] path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *Store) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return apperrors.Wrapf(err, "[filestore.Clear] removing %s", s.path)
		}
		return nil
	}
	return s.write(values)
}

// read returns an empty map for a missing file. A file that is not a JSON object is
// reported as an error; the session store treats it as an absent record.
func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "[filestore.read] reading %s", s.path)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, apperrors.Wrapf(sessions.ErrMalformedRecord, "[filestore.read] decoding %s: %v", s.path, err)
	}
	return values, nil
}

// readForWrite starts over from an empty document when the file is unreadable as JSON,
// so a corrupt file never blocks the next login or logout.
func (s *Store) readForWrite() (map[string]string, error) {
	values, err := s.read()
	if apperrors.Is(err, sessions.ErrMalformedRecord) {
		return map[string]string{}, nil
	}
	return values, err
}

func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return apperrors.Wrapf(err, "[filestore.write] encoding")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return apperrors.Wrapf(err, "[filestore.write] creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return apperrors.Wrapf(err, "[filestore.write] creating temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrapf(err, "[filestore.write] writing %s", tmpName)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return apperrors.Wrapf(err, "[filestore.write] chmod %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrapf(err, "[filestore.write] closing %s", tmpName)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.Wrapf(err, "[filestore.write] renaming to %s", s.path)
	}
	return nil
}
