package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profile_history (
	seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
	id                   TEXT NOT NULL UNIQUE,
	saved_at             TEXT NOT NULL,
	current_age          INTEGER NOT NULL,
	retirement_age       INTEGER NOT NULL,
	life_expectancy      INTEGER NOT NULL,
	current_income       TEXT NOT NULL,
	salary_increase_pct  TEXT NOT NULL,
	current_savings      TEXT NOT NULL,
	annual_contrib_pct   TEXT NOT NULL,
	employer_match_pct   TEXT NOT NULL,
	employer_match_limit TEXT NOT NULL,
	expected_return      TEXT NOT NULL
);
`

// SQLiteStore keeps history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the history database at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the history database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored entries, oldest first.
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, saved_at,
		current_age, retirement_age, life_expectancy, current_income, salary_increase_pct,
		current_savings, annual_contrib_pct, employer_match_pct, employer_match_limit, expected_return
		FROM profile_history ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		var savedAt string
		p := &e.Profile
		if err := rows.Scan(&e.ID, &savedAt,
			&p.CurrentAge, &p.RetirementAge, &p.LifeExpectancy, &p.CurrentIncome, &p.SalaryIncreasePct,
			&p.CurrentSavings, &p.AnnualContribPct, &p.EmployerMatchPct, &p.EmployerMatchLimitPct, &p.ExpectedReturnPct,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
		}
		e.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrCorruptHistory, e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save inserts p and trims the table to the newest Capacity rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, p domain.ProfileInput) (domain.HistoryEntry, error) {
	entry := newEntry(p)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO profile_history
		(id, saved_at, current_age, retirement_age, life_expectancy, current_income, salary_increase_pct,
		 current_savings, annual_contrib_pct, employer_match_pct, employer_match_limit, expected_return)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SavedAt.Format(time.RFC3339Nano),
		p.CurrentAge, p.RetirementAge, p.LifeExpectancy, p.CurrentIncome.String(), p.SalaryIncreasePct.String(),
		p.CurrentSavings.String(), p.AnnualContribPct.String(), p.EmployerMatchPct.String(),
		p.EmployerMatchLimitPct.String(), p.ExpectedReturnPct.String(),
	)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("insert history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM profile_history WHERE seq NOT IN
		(SELECT seq FROM profile_history ORDER BY seq DESC LIMIT ?)`, Capacity)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// Clear removes every stored entry.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profile_history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
