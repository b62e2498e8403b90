// Package file is the flat-file Store: accounts.txt, atm.txt and
// transactions.txt under a single data directory, in the formats the
// terminal has always used on disk.
package file

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nullvectorcodes/atm-machine/internal/core"
	"github.com/nullvectorcodes/atm-machine/internal/storage"
)

const (
	accountsFile     = "accounts.txt"
	inventoryFile    = "atm.txt"
	transactionsFile = "transactions.txt"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadAccounts reads accounts.txt, one account per line:
//
//	accountNumber pin balance name loginAttempts locked
//
// A missing file means an empty account set. Malformed lines are skipped, not
// fatal, so a single corrupt record does not take the terminal down.
func (s *Store) LoadAccounts(ctx context.Context) ([]core.Account, error) {
	f, err := os.Open(s.path(accountsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open accounts file: %w", err)
	}
	defer f.Close()

	var accounts []core.Account
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		acc, err := parseAccountLine(scanner.Text())
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed account line", "error", err)
			continue
		}
		accounts = append(accounts, acc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	return accounts, nil
}

func parseAccountLine(line string) (core.Account, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return core.Account{}, fmt.Errorf("want 6 fields, got %d", len(fields))
	}
	number, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return core.Account{}, fmt.Errorf("account number: %w", err)
	}
	pin, err := strconv.Atoi(fields[1])
	if err != nil {
		return core.Account{}, fmt.Errorf("pin: %w", err)
	}
	cents, err := core.ParseDecimalToCents(fields[2])
	if err != nil {
		return core.Account{}, fmt.Errorf("balance: %w", err)
	}
	attempts, err := strconv.Atoi(fields[4])
	if err != nil {
		return core.Account{}, fmt.Errorf("login attempts: %w", err)
	}
	locked, err := strconv.Atoi(fields[5])
	if err != nil {
		return core.Account{}, fmt.Errorf("locked flag: %w", err)
	}
	return core.Account{
		Number:        number,
		PIN:           pin,
		Balance:       core.Money{Cents: cents},
		Name:          fields[3],
		LoginAttempts: attempts,
		Locked:        locked != 0,
	}, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	var b strings.Builder
	for _, a := range accounts {
		locked := 0
		if a.Locked {
			locked = 1
		}
		fmt.Fprintf(&b, "%d %d %s %s %d %d\n",
			a.Number, a.PIN, a.Balance, sanitizeName(a.Name), a.LoginAttempts, locked)
	}
	if err := os.WriteFile(s.path(accountsFile), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}
	return nil
}

// sanitizeName keeps account names single-token so the space-separated record
// stays parseable.
func sanitizeName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// LoadInventory reads atm.txt: four counts in the fixed {2000, 500, 200, 100}
// order. A missing or unparseable file falls back to the default fill.
func (s *Store) LoadInventory(ctx context.Context) (*core.NoteInventory, error) {
	data, err := os.ReadFile(s.path(inventoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return core.NewNoteInventory(storage.DefaultInventory), nil
		}
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) != len(core.Denominations) {
		slog.WarnContext(ctx, "Inventory file malformed, using defaults",
			"fields", len(fields))
		return core.NewNoteInventory(storage.DefaultInventory), nil
	}
	counts := make(map[core.Denomination]int, len(core.Denominations))
	for i, d := range core.Denominations {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			slog.WarnContext(ctx, "Inventory file malformed, using defaults",
				"field", fields[i])
			return core.NewNoteInventory(storage.DefaultInventory), nil
		}
		counts[d] = n
	}
	return core.NewNoteInventory(counts), nil
}

func (s *Store) SaveInventory(ctx context.Context, inventory *core.NoteInventory) error {
	counts := inventory.Snapshot()
	parts := make([]string, len(core.Denominations))
	for i, d := range core.Denominations {
		parts[i] = strconv.Itoa(counts[d])
	}
	line := strings.Join(parts, " ") + "\n"
	if err := os.WriteFile(s.path(inventoryFile), []byte(line), 0644); err != nil {
		return fmt.Errorf("write inventory file: %w", err)
	}
	return nil
}

// AppendTransaction adds one journal line:
//
//	accountNumber;kind;amount;balance;timestamp
func (s *Store) AppendTransaction(ctx context.Context, rec core.TransactionRecord) error {
	f, err := os.OpenFile(s.path(transactionsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open transactions file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%d;%s;%s;%s;%s\n",
		rec.AccountNumber, rec.Kind, rec.Amount, rec.Balance,
		rec.CreatedAt.Format(core.TimeFormat))
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func (s *Store) TransactionsByAccount(ctx context.Context, number int64) ([]core.TransactionRecord, error) {
	f, err := os.Open(s.path(transactionsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open transactions file: %w", err)
	}
	defer f.Close()

	var records []core.TransactionRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rec, err := parseTransactionLine(scanner.Text())
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed transaction line", "error", err)
			continue
		}
		if rec.AccountNumber == number {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transactions file: %w", err)
	}
	return records, nil
}

func parseTransactionLine(line string) (core.TransactionRecord, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 5 {
		return core.TransactionRecord{}, fmt.Errorf("want 5 fields, got %d", len(parts))
	}
	number, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("account number: %w", err)
	}
	amountCents, err := core.ParseDecimalToCents(parts[2])
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("amount: %w", err)
	}
	balanceCents, err := core.ParseDecimalToCents(parts[3])
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("balance: %w", err)
	}
	createdAt, err := time.ParseInLocation(core.TimeFormat, parts[4], time.Local)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("timestamp: %w", err)
	}
	return core.TransactionRecord{
		AccountNumber: number,
		Kind:          core.TransactionKind(parts[1]),
		Amount:        core.Money{Cents: amountCents},
		Balance:       core.Money{Cents: balanceCents},
		CreatedAt:     createdAt,
	}, nil
}

func (s *Store) Close() error { return nil }
