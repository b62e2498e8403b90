package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nullvectorcodes/atm-machine/internal/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "atm.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAccountsRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	in := []core.Account{
		{Number: 1001, PIN: 1234, Balance: core.Money{Cents: 1500050}, Name: "Zaid"},
		{Number: 1002, PIN: 2345, Balance: core.Money{Cents: 500000}, Name: "Anita Rao", LoginAttempts: 2, Locked: true},
	}
	if err := store.SaveAccounts(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d accounts, want 2", len(out))
	}
	if out[0].Balance.Cents != 1500050 || out[0].Name != "Zaid" {
		t.Fatalf("unexpected first account %+v", out[0])
	}
	if out[1].Name != "Anita Rao" || !out[1].Locked || out[1].LoginAttempts != 2 {
		t.Fatalf("unexpected second account %+v", out[1])
	}

	// Saving again upserts rather than duplicating.
	in[0].Balance = core.Money{Cents: 1270000}
	if err := store.SaveAccounts(ctx, in); err != nil {
		t.Fatalf("second save: %v", err)
	}
	out, err = store.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(out) != 2 || out[0].Balance.Cents != 1270000 {
		t.Fatalf("upsert failed: %+v", out)
	}
}

func TestInventorySeededAndRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// A fresh database carries the default fill from the migration.
	inventory, err := store.LoadInventory(ctx)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if inventory.Count(2000) != 10 || inventory.Count(500) != 20 ||
		inventory.Count(200) != 50 || inventory.Count(100) != 100 {
		t.Fatalf("unexpected default fill: %v", inventory.Snapshot())
	}

	in := core.NewNoteInventory(map[core.Denomination]int{2000: 3, 500: 0, 200: 7, 100: 41})
	if err := store.SaveInventory(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := store.LoadInventory(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, d := range core.Denominations {
		if out.Count(d) != in.Count(d) {
			t.Fatalf("count of %d: got %d, want %d", d, out.Count(d), in.Count(d))
		}
	}
}

func TestTransactionsAppendAndFilter(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.Local)

	records := []core.TransactionRecord{
		{ID: "t-1", AccountNumber: 1001, Kind: core.KindWithdrawal, Amount: core.FromUnits(2300), Balance: core.Money{Cents: 1270000}, CreatedAt: ts},
		{ID: "t-2", AccountNumber: 1002, Kind: core.KindBalanceInquiry, Balance: core.Money{Cents: 500000}, CreatedAt: ts.Add(time.Minute)},
		{ID: "t-3", AccountNumber: 1001, Kind: core.KindBalanceInquiry, Balance: core.Money{Cents: 1270000}, CreatedAt: ts.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := store.AppendTransaction(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.TransactionsByAccount(ctx, 1001)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records for 1001, want 2", len(got))
	}
	if got[0].ID != "t-1" || got[0].Kind != core.KindWithdrawal || got[0].Amount.Cents != 230000 {
		t.Fatalf("unexpected first record %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(ts) {
		t.Fatalf("timestamp round trip: got %v, want %v", got[0].CreatedAt, ts)
	}

	none, err := store.TransactionsByAccount(ctx, 4242)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no records for unknown account, got %d", len(none))
	}
}
