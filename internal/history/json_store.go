package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rpgo/savings-projector/internal/domain"
)

// JSONStore keeps history in a single indented JSON array.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the file at path. The file is
// created on first save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// Load reads the stored entries. A missing or empty file is an empty history.
// Arrays of bare profiles, as written by earlier versions, are also accepted.
func (s *JSONStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("read history %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.HistoryEntry{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptHistory, s.path, err)
	}

	entries := make([]domain.HistoryEntry, 0, len(records))
	for i, raw := range records {
		entry, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", ErrCorruptHistory, s.path, i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeRecord(raw json.RawMessage) (domain.HistoryEntry, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return domain.HistoryEntry{}, err
	}
	if _, wrapped := keys["profile"]; wrapped {
		var entry domain.HistoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return domain.HistoryEntry{}, err
		}
		return entry, nil
	}

	var p domain.ProfileInput
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.HistoryEntry{}, err
	}
	return domain.HistoryEntry{ID: uuid.NewString(), Profile: p}, nil
}

// Save appends p and rewrites the file with the newest Capacity entries.
func (s *JSONStore) Save(ctx context.Context, p domain.ProfileInput) (domain.HistoryEntry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry := newEntry(p)
	entries = keepRecent(append(entries, entry))
	if err := s.write(entries); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// Clear removes every stored entry.
func (s *JSONStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear history %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) write(entries []domain.HistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
