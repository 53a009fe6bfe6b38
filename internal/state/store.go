// Package state persists the remote selected for each repository
// across runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const stateVersion = 1

// stateEnvelope wraps the repository map with metadata.
type stateEnvelope struct {
	Version      int               `json:"version"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Repositories map[string]string `json:"repositories"`
}

// Store keeps the repository-root to remote-URL mapping in memory
// and mirrors it to a JSON file with atomic writes.
type Store struct {
	mu    sync.Mutex
	path  string
	repos map[string]string
}

// DefaultPath returns the state file location under the user state
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache dir: %w", err)
	}
	return filepath.Join(dir, "lazyissues", "state.json"), nil
}

// Open loads the store from path, starting empty when the file does
// not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, repos: map[string]string{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if env.Repositories != nil {
		s.repos = env.Repositories
	}
	return s, nil
}

// Remote returns the persisted remote URL for a repository root.
func (s *Store) Remote(root string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remote, ok := s.repos[root]
	return remote, ok
}

// SetRemote records the remote URL for a repository root. The
// in-memory value is updated first so the session keeps working even
// when the write to disk fails; the write error is still returned.
func (s *Store) SetRemote(root, remote string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[root] = remote
	return s.persist()
}

func (s *Store) persist() error {
	env := stateEnvelope{
		Version:      stateVersion,
		UpdatedAt:    time.Now(),
		Repositories: s.repos,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := atomicWriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
