// Package storage defines the persistence boundary of the terminal: account
// records, the note inventory and the append-only transaction journal.
package storage

import (
	"context"

	"github.com/nullvectorcodes/atm-machine/internal/core"
)

// DefaultInventory is the note fill used when no inventory record exists yet,
// keyed in line with core.Denominations.
var DefaultInventory = map[core.Denomination]int{
	2000: 10,
	500:  20,
	200:  50,
	100:  100,
}

// Store is the durable-storage collaborator the terminal core talks to.
// Accounts and inventory are loaded once at process start and written back
// after every state-changing operation; journal records are append-only and
// read back only for display.
type Store interface {
	LoadAccounts(ctx context.Context) ([]core.Account, error)
	SaveAccounts(ctx context.Context, accounts []core.Account) error

	LoadInventory(ctx context.Context) (*core.NoteInventory, error)
	SaveInventory(ctx context.Context, inventory *core.NoteInventory) error

	AppendTransaction(ctx context.Context, rec core.TransactionRecord) error
	TransactionsByAccount(ctx context.Context, number int64) ([]core.TransactionRecord, error)

	Close() error
}
