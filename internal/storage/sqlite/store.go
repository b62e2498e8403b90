// Package sqlite is the embedded-database Store. Balances and amounts are
// held as integer cents; the schema is managed by embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nullvectorcodes/atm-machine/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) LoadAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, pin, balance_cents, name, login_attempts, locked
		 FROM accounts ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var (
			a      core.Account
			cents  int64
			locked int
		)
		if err := rows.Scan(&a.Number, &a.PIN, &cents, &a.Name, &a.LoginAttempts, &locked); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Balance = core.Money{Cents: cents}
		a.Locked = locked != 0
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save accounts: %w", err)
	}
	defer tx.Rollback()

	for _, a := range accounts {
		locked := 0
		if a.Locked {
			locked = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (number, pin, balance_cents, name, login_attempts, locked)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(number) DO UPDATE SET
			     pin = excluded.pin,
			     balance_cents = excluded.balance_cents,
			     name = excluded.name,
			     login_attempts = excluded.login_attempts,
			     locked = excluded.locked`,
			a.Number, a.PIN, a.Balance.Cents, a.Name, a.LoginAttempts, locked)
		if err != nil {
			return fmt.Errorf("upsert account %d: %w", a.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save accounts: %w", err)
	}
	return nil
}

func (s *Store) LoadInventory(ctx context.Context) (*core.NoteInventory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT denomination, note_count FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	counts := make(map[core.Denomination]int, len(core.Denominations))
	for rows.Next() {
		var (
			d core.Denomination
			n int
		)
		if err := rows.Scan(&d, &n); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		counts[d] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return core.NewNoteInventory(counts), nil
}

func (s *Store) SaveInventory(ctx context.Context, inventory *core.NoteInventory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save inventory: %w", err)
	}
	defer tx.Rollback()

	for d, n := range inventory.Snapshot() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (denomination, note_count) VALUES (?, ?)
			 ON CONFLICT(denomination) DO UPDATE SET note_count = excluded.note_count`,
			int64(d), n)
		if err != nil {
			return fmt.Errorf("upsert denomination %d: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save inventory: %w", err)
	}
	return nil
}

func (s *Store) AppendTransaction(ctx context.Context, rec core.TransactionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_number, kind, amount_cents, balance_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AccountNumber, string(rec.Kind), rec.Amount.Cents, rec.Balance.Cents,
		rec.CreatedAt.Format(core.TimeFormat))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction journaled",
		"id", rec.ID,
		"account", rec.AccountNumber,
		"kind", rec.Kind,
		"amount_cents", rec.Amount.Cents)
	return nil
}

func (s *Store) TransactionsByAccount(ctx context.Context, number int64) ([]core.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_number, kind, amount_cents, balance_cents, created_at
		 FROM transactions WHERE account_number = ? ORDER BY created_at`,
		number)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.TransactionRecord
	for rows.Next() {
		var (
			rec          core.TransactionRecord
			kind         string
			amountCents  int64
			balanceCents int64
			createdAt    string
		)
		if err := rows.Scan(&rec.ID, &rec.AccountNumber, &kind, &amountCents, &balanceCents, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Kind = core.TransactionKind(kind)
		rec.Amount = core.Money{Cents: amountCents}
		rec.Balance = core.Money{Cents: balanceCents}
		ts, err := time.ParseInLocation(core.TimeFormat, createdAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse transaction timestamp: %w", err)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}
