// Package ledger records expenses entered from the quick-entry dialog and
// computes the running totals shown in the tray tooltip.
//
// Entries live in a SQLite database (modernc.org/sqlite, no cgo) under the
// user's config directory. Amounts are stored as integer cents.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/expense-tray/common"
)

const schema = `
	CREATE TABLE IF NOT EXISTS expenses (
		id          TEXT PRIMARY KEY,
		amount      INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_created_at ON expenses(created_at);
`

// Expense is one recorded expense.
type Expense struct {
	ID          uuid.UUID
	Amount      Cents
	Description string
	CreatedAt   time.Time
}

// Store is an expense ledger backed by SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// DefaultPath returns the location of the ledger database.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.LedgerFileName), nil
}

// Open opens the ledger at path, creating the file and schema if needed.
// Use ":memory:" for a throwaway ledger.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrLedgerOpen, err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLedgerOpen, err)
	}
	// One connection: an in-memory database exists per connection, and
	// writes are serialized anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrLedgerOpen, err)
	}

	common.LogDebug("Expense ledger opened at %s", path)
	return &Store{db: db}, nil
}

// Add records an expense. The amount must be positive.
func (s *Store) Add(ctx context.Context, amount Cents, description string, at time.Time) (Expense, error) {
	if amount <= 0 {
		return Expense{}, fmt.Errorf("%w: amount %s must be positive", common.ErrInvalidEntry, amount)
	}

	e := Expense{
		ID:          uuid.New(),
		Amount:      amount,
		Description: strings.TrimSpace(description),
		CreatedAt:   at,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, description, created_at) VALUES (?, ?, ?, ?)`,
		e.ID.String(), int64(e.Amount), e.Description, e.CreatedAt.UnixMilli())
	if err != nil {
		return Expense{}, common.WrapError(err, "failed to record expense")
	}
	return e, nil
}

// Total sums the expenses recorded in [from, to).
func (s *Store) Total(ctx context.Context, from, to time.Time) (Cents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE created_at >= ? AND created_at < ?`,
		from.UnixMilli(), to.UnixMilli()).Scan(&total)
	if err != nil {
		return 0, common.WrapError(err, "failed to sum expenses")
	}
	return Cents(total), nil
}

// Today sums the expenses of the local calendar day containing now.
func (s *Store) Today(ctx context.Context, now time.Time) (Cents, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Total(ctx, start, start.AddDate(0, 0, 1))
}

// Recent returns up to limit expenses, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, description, created_at FROM expenses ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, common.WrapError(err, "failed to list expenses")
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var (
			id     string
			amount int64
			desc   string
			millis int64
		)
		if err := rows.Scan(&id, &amount, &desc, &millis); err != nil {
			return nil, common.WrapError(err, "failed to read expense")
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			common.LogWarn("Skipping expense with malformed id %q: %v", id, err)
			continue
		}
		out = append(out, Expense{
			ID:          parsed,
			Amount:      Cents(amount),
			Description: desc,
			CreatedAt:   time.UnixMilli(millis),
		})
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
