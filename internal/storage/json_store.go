package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DefaultRecordKey is the name of the durable record inside the JSON file.
const DefaultRecordKey = "advent_unlocked"

// JSONUnlockStore persists the unlock set as a single JSON record: a file
// holding one object whose configured key maps to an array of identifier
// strings. A missing file is an empty set; an unparsable file is treated
// as an empty set and logged, never surfaced as an error.
type JSONUnlockStore struct {
	path string
	key  string
	mu   sync.Mutex
}

// NewJSONUnlockStore creates a JSON-file unlock store. An empty key falls
// back to DefaultRecordKey.
func NewJSONUnlockStore(path, key string) *JSONUnlockStore {
	if key == "" {
		key = DefaultRecordKey
	}
	return &JSONUnlockStore{path: path, key: key}
}

// Load returns all persisted identifiers.
func (s *JSONUnlockStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

// IsUnlocked reports whether the identifier has been unlocked.
func (s *JSONUnlockStore) IsUnlocked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, got := range s.read() {
		if got == id {
			return true, nil
		}
	}
	return false, nil
}

// MarkUnlocked adds the identifier and writes the file before returning.
// Marking an identifier that is already present is a no-op.
func (s *JSONUnlockStore) MarkUnlocked(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.read()
	for _, got := range ids {
		if got == id {
			return nil
		}
	}
	return s.write(append(ids, id))
}

// Close is a no-op; the file is written synchronously on every mutation.
func (s *JSONUnlockStore) Close() error {
	return nil
}

// read loads the identifier array from disk. Any failure short of an
// intact record yields an empty set.
func (s *JSONUnlockStore) read() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Unlock store unreadable, treating as empty: %v", err)
		}
		return nil
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(data, &record); err != nil {
		log.Printf("Unlock store corrupt, treating as empty: %v", err)
		return nil
	}

	raw, ok := record[s.key]
	if !ok {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		log.Printf("Unlock record %q corrupt, treating as empty: %v", s.key, err)
		return nil
	}
	return ids
}

// write persists the identifier array via a temp file and rename so a
// crash mid-write never leaves a truncated record.
func (s *JSONUnlockStore) write(ids []string) error {
	record := map[string][]string{s.key: ids}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding unlock record: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing unlock record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing unlock record: %w", err)
	}
	return nil
}
