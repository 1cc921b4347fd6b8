package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileAged(age int) domain.ProfileInput {
	return domain.ProfileInput{
		CurrentAge:            age,
		RetirementAge:         65,
		LifeExpectancy:        90,
		CurrentIncome:         decimal.RequireFromString("60000.50"),
		SalaryIncreasePct:     decimal.NewFromInt(3),
		CurrentSavings:        decimal.NewFromInt(10000),
		AnnualContribPct:      decimal.NewFromInt(10),
		EmployerMatchPct:      decimal.NewFromInt(50),
		EmployerMatchLimitPct: decimal.NewFromInt(6),
		ExpectedReturnPct:     decimal.RequireFromString("6.5"),
	}
}

type backend struct {
	name string
	open func(t *testing.T, dir string) Store
}

func backends() []backend {
	return []backend{
		{"json", func(t *testing.T, dir string) Store {
			return NewJSONStore(filepath.Join(dir, "nested", "user_data.json"))
		}},
		{"sqlite", func(t *testing.T, dir string) Store {
			s, err := OpenSQLite(filepath.Join(dir, "nested", "history.db"))
			require.NoError(t, err)
			return s
		}},
	}
}

func withClock(t *testing.T) {
	t.Helper()
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	SetNowFunc(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

func TestStore_EmptyHistory(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			defer s.Close()

			entries, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, entries)
			assert.Empty(t, entries)
		})
	}
}

func TestStore_KeepsLastThreeInOrder(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			withClock(t)
			ctx := context.Background()
			s := b.open(t, t.TempDir())
			defer s.Close()

			var saved []domain.HistoryEntry
			for age := 30; age < 35; age++ {
				entry, err := s.Save(ctx, profileAged(age))
				require.NoError(t, err)
				assert.NotEmpty(t, entry.ID)
				saved = append(saved, entry)
			}

			entries, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, entries, Capacity)
			for i, e := range entries {
				want := saved[2+i]
				assert.Equal(t, want.ID, e.ID)
				assert.True(t, want.SavedAt.Equal(e.SavedAt), "entry %d saved at %s, want %s", i, e.SavedAt, want.SavedAt)
				assert.Equal(t, want.Profile.Fields(), e.Profile.Fields())
			}
			assert.Equal(t, 32, entries[0].Profile.CurrentAge)
			assert.Equal(t, 34, entries[2].Profile.CurrentAge)
		})
	}
}

func TestStore_FewerThanCapacity(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t, t.TempDir())
			defer s.Close()

			_, err := s.Save(ctx, profileAged(40))
			require.NoError(t, err)
			_, err = s.Save(ctx, profileAged(41))
			require.NoError(t, err)

			entries, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, 40, entries[0].Profile.CurrentAge)
			assert.True(t, entries[0].Profile.CurrentIncome.Equal(decimal.RequireFromString("60000.50")))
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t, t.TempDir())
			defer s.Close()

			_, err := s.Save(ctx, profileAged(50))
			require.NoError(t, err)
			require.NoError(t, s.Clear(ctx))
			require.NoError(t, s.Clear(ctx))

			entries, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			s := b.open(t, dir)
			_, err := s.Save(ctx, profileAged(45))
			require.NoError(t, err)
			require.NoError(t, s.Close())

			reopened := b.open(t, dir)
			defer reopened.Close()
			entries, err := reopened.Load(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, 45, entries[0].Profile.CurrentAge)
		})
	}
}

func TestJSONStore_WritesIndentedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	s := NewJSONStore(path)
	_, err := s.Save(context.Background(), profileAged(30))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"id\": "), text)
	assert.Contains(t, text, `"current_age": 30`)
}

func TestJSONStore_LegacyProfiles(t *testing.T) {
	dir := t.TempDir()
	legacy, err := os.ReadFile(filepath.Join("testdata", "legacy_user_data.json"))
	require.NoError(t, err)
	path := filepath.Join(dir, "user_data.json")
	require.NoError(t, os.WriteFile(path, legacy, 0o644))

	s := NewJSONStore(path)
	entries, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, 30, entries[0].Profile.CurrentAge)
	assert.True(t, entries[1].Profile.CurrentSavings.Equal(decimal.NewFromInt(120000)))
	assert.NoError(t, entries[1].Profile.Validate())

	// saving upgrades the file and keeps the legacy entries
	_, err = s.Save(context.Background(), profileAged(50))
	require.NoError(t, err)
	entries, err = s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 50, entries[2].Profile.CurrentAge)
}

func TestJSONStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewJSONStore(path)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptHistory)

	_, err = s.Save(context.Background(), profileAged(30))
	assert.ErrorIs(t, err, ErrCorruptHistory)

	require.NoError(t, os.WriteFile(path, []byte(`[{"current_age": "old"}]`), 0o644))
	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptHistory)
}

func TestJSONStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	entries, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJSONStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewJSONStore(filepath.Join(t.TempDir(), "h.json")).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("json", filepath.Join(dir, "h.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open("sqlite", filepath.Join(dir, "h.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("redis", dir)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSelect(t *testing.T) {
	entries := []domain.HistoryEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	e, err := Select(entries, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", e.ID)

	e, err = Select(entries, 3)
	require.NoError(t, err)
	assert.Equal(t, "c", e.ID)

	for _, n := range []int{0, 4, -1} {
		_, err = Select(entries, n)
		assert.ErrorIs(t, err, ErrHistoryIndex)
	}
	_, err = Select(nil, 1)
	assert.ErrorIs(t, err, ErrHistoryIndex)
}
