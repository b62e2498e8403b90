// Package ledger owns the account set for the running terminal: lookups,
// PIN authentication with lockout, debits and administrative unlocks.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nullvectorcodes/atm-machine/internal/core"
	"github.com/nullvectorcodes/atm-machine/internal/storage"
)

// Ledger holds every account in memory for the session. It is loaded once at
// process start and writes itself back through the store after each
// state-changing operation. Single terminal, single session: no locking.
type Ledger struct {
	store    storage.Store
	accounts map[int64]*core.Account
}

// Load reads all accounts from the store.
func Load(ctx context.Context, store storage.Store) (*Ledger, error) {
	accounts, err := store.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	l := &Ledger{
		store:    store,
		accounts: make(map[int64]*core.Account, len(accounts)),
	}
	for i := range accounts {
		a := accounts[i]
		l.accounts[a.Number] = &a
	}
	return l, nil
}

// Empty reports whether the ledger holds no accounts at all, the state of a
// freshly installed terminal.
func (l *Ledger) Empty() bool {
	return len(l.accounts) == 0
}

// Seed installs the given accounts and persists them. Used only on first run
// when storage is empty.
func (l *Ledger) Seed(ctx context.Context, accounts []core.Account) error {
	for i := range accounts {
		a := accounts[i]
		if err := a.Validate(); err != nil {
			return fmt.Errorf("seed account %d: %w", a.Number, err)
		}
		l.accounts[a.Number] = &a
	}
	return l.Persist(ctx)
}

// Find returns the live account record for number.
func (l *Ledger) Find(number int64) (*core.Account, error) {
	a, ok := l.accounts[number]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return a, nil
}

// Authenticate checks pin against the account. Failures accumulate across
// sessions; the third consecutive failure locks the account and the lock is
// persisted immediately. A locked account rejects every attempt, correct PIN
// or not, until an administrative unlock.
func (l *Ledger) Authenticate(ctx context.Context, number int64, pin int) (*core.Account, error) {
	a, ok := l.accounts[number]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	if a.Locked {
		return nil, core.ErrAccountLocked
	}

	if pin != a.PIN {
		a.LoginAttempts++
		if a.LoginAttempts >= core.MaxLoginAttempts {
			a.Locked = true
			l.persistBestEffort(ctx)
			slog.WarnContext(ctx, "Account locked after repeated PIN failures",
				"account", a.Number, "attempts", a.LoginAttempts)
			return nil, core.ErrAccountLocked
		}
		l.persistBestEffort(ctx)
		return nil, core.ErrWrongPIN
	}

	a.LoginAttempts = 0
	l.persistBestEffort(ctx)
	return a, nil
}

// AttemptsLeft reports how many PIN tries remain before the account locks.
func (l *Ledger) AttemptsLeft(number int64) int {
	a, ok := l.accounts[number]
	if !ok || a.Locked {
		return 0
	}
	return core.MaxLoginAttempts - a.LoginAttempts
}

// Debit subtracts amount from the account balance. The comparison is exact
// integer cents; there is no epsilon to absorb.
func (l *Ledger) Debit(account *core.Account, amount core.Money) (core.Money, error) {
	if amount.Cents <= 0 {
		return account.Balance, core.ErrInvalidAmount
	}
	if amount.Cents > account.Balance.Cents {
		return account.Balance, core.ErrInsufficientFunds
	}
	account.Balance.Cents -= amount.Cents
	return account.Balance, nil
}

// Unlock clears the lock flag, resets the failure counter and persists.
func (l *Ledger) Unlock(ctx context.Context, number int64) error {
	a, ok := l.accounts[number]
	if !ok {
		return core.ErrAccountNotFound
	}
	a.Locked = false
	a.LoginAttempts = 0
	if err := l.Persist(ctx); err != nil {
		return fmt.Errorf("persist unlock: %w", err)
	}
	return nil
}

// Accounts returns a copy of every account, ordered by number, for the
// administrative listing.
func (l *Ledger) Accounts() []core.Account {
	out := make([]core.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Persist writes the full account set back to the store.
func (l *Ledger) Persist(ctx context.Context) error {
	return l.store.SaveAccounts(ctx, l.Accounts())
}

// persistBestEffort saves and logs on failure instead of propagating: an
// in-memory state change that cannot be persisted still stands for the rest
// of the session.
func (l *Ledger) persistBestEffort(ctx context.Context) {
	if err := l.Persist(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist accounts", "error", err)
	}
}
