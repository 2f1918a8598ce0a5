package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// JSONStore persists the session to a local JSON file. Writes go through a
// temp file and rename so a crash mid-save never corrupts the previous save.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a file-backed store at path, creating parent
// directories as needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// Save writes the session state to the file.
func (s *JSONStore) Save(_ context.Context, state *model.SaveState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing save file: %w", err)
	}
	return nil
}

// Load reads the session state from the file.
// Returns ErrNoSave when the file does not exist.
func (s *JSONStore) Load(_ context.Context) (*model.SaveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("reading save file: %w", err)
	}

	var state model.SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding save file %s: %w", s.path, err)
	}
	return &state, nil
}

// Close is a no-op for the file store.
func (s *JSONStore) Close() error { return nil }
