// Package history remembers the most recent profiles a user entered.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/savings-projector/internal/domain"
)

// Capacity is the number of profiles kept; older entries are dropped on save.
const Capacity = 3

var (
	// ErrCorruptHistory is returned when stored history cannot be decoded.
	ErrCorruptHistory = errors.New("history is corrupt")

	// ErrHistoryIndex is returned when a selection does not name a stored entry.
	ErrHistoryIndex = errors.New("no such history entry")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown history backend")
)

// Store persists recent profiles. Entries are returned oldest first.
type Store interface {
	Load(ctx context.Context) ([]domain.HistoryEntry, error)
	Save(ctx context.Context, p domain.ProfileInput) (domain.HistoryEntry, error)
	Clear(ctx context.Context) error
	Close() error
}

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider used to stamp entries (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

func newEntry(p domain.ProfileInput) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:      uuid.NewString(),
		SavedAt: nowFunc().UTC(),
		Profile: p,
	}
}

// Open returns the store for backend ("json" or "sqlite") rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "json", "":
		return NewJSONStore(path), nil
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Select returns the entry at a 1-based position, as listed to the user.
func Select(entries []domain.HistoryEntry, n int) (domain.HistoryEntry, error) {
	if n < 1 || n > len(entries) {
		return domain.HistoryEntry{}, fmt.Errorf("%w: %d (have %d)", ErrHistoryIndex, n, len(entries))
	}
	return entries[n-1], nil
}

// keepRecent drops all but the newest Capacity entries.
func keepRecent(entries []domain.HistoryEntry) []domain.HistoryEntry {
	if len(entries) > Capacity {
		return entries[len(entries)-Capacity:]
	}
	return entries
}
