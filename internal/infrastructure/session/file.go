// Package session provides the durable identity store: a flat mapping from
// user id to auth session. The file store is the default; a Redis store is
// used when Redis is configured.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// FileStore keeps the whole session map in memory and flushes it to a JSON
// file on every mutation. Read-modify-write of the entire map is fine at
// this scale; writes go through a temp file and an atomic rename.
type FileStore struct {
	mu       sync.Mutex
	path     string
	sessions map[string]domain.Session
}

// NewFileStore loads the file at path if it exists. A missing file starts
// an empty store; a corrupt file is an error so tokens are never silently
// dropped.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, sessions: make(map[string]domain.Session)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.sessions); err != nil {
		return nil, fmt.Errorf("session: parse %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, userID int64) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key(userID)]
	return sess, ok, nil
}

// Set stores the session, preserving a previously known phone when the new
// session carries none.
func (s *FileStore) Set(_ context.Context, userID int64, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.Phone == "" {
		sess.Phone = s.sessions[key(userID)].Phone
	}
	s.sessions[key(userID)] = sess
	return s.flush()
}

func (s *FileStore) Remove(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key(userID)]; !ok {
		return nil
	}
	delete(s.sessions, key(userID))
	return s.flush()
}

// flush writes the full map atomically. Caller holds mu.
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
