package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// FileStore persists the index as a JSON array of entries, preserving
// insertion order. The mutex only guards this process; cross-process
// writers are the caller's problem.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Snapshot(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Put(ctx context.Context, key, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].Key == key {
			entries[i].DocumentID = documentID
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, Entry{Key: key, DocumentID: documentID})
	}
	return s.save(entries)
}

func (s *FileStore) load() ([]Entry, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return entries, nil
}

func (s *FileStore) save(entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return os.Rename(tmp, s.path)
}
