package core

import (
	"errors"
	"testing"
)

func TestInventoryTotalValue(t *testing.T) {
	inventory := inv(10, 20, 50, 100)
	want := int64(10*2000 + 20*500 + 50*200 + 100*100)
	if got := inventory.TotalValue(); got != want {
		t.Fatalf("total value %d, want %d", got, want)
	}
	if !inventory.CanAfford(want) {
		t.Fatalf("expected CanAfford at the exact total")
	}
	if inventory.CanAfford(want + 100) {
		t.Fatalf("CanAfford beyond the total")
	}
}

func TestInventoryDebit(t *testing.T) {
	inventory := inv(2, 1, 1, 3)
	plan := DenominationPlan{2000: 1, 200: 1, 100: 1}
	if err := inventory.Debit(plan); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if inventory.Count(2000) != 1 || inventory.Count(200) != 0 || inventory.Count(100) != 2 {
		t.Fatalf("unexpected counts after debit: %v", inventory.Snapshot())
	}
}

func TestInventoryDebitRejectsOverdraw(t *testing.T) {
	inventory := inv(1, 0, 0, 0)
	before := inventory.Snapshot()
	err := inventory.Debit(DenominationPlan{2000: 2})
	if !errors.Is(err, ErrInsufficientNotes) {
		t.Fatalf("expected ErrInsufficientNotes, got %v", err)
	}
	// A rejected debit must leave every count untouched.
	for _, d := range Denominations {
		if inventory.Count(d) != before[d] {
			t.Fatalf("count of %d changed on rejected debit", d)
		}
	}
}

func TestInventoryCredit(t *testing.T) {
	inventory := inv(0, 0, 0, 0)
	if err := inventory.Credit(map[Denomination]int{2000: 5, 100: 10}); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if inventory.Count(2000) != 5 || inventory.Count(100) != 10 {
		t.Fatalf("unexpected counts after credit: %v", inventory.Snapshot())
	}
}

func TestInventoryCreditRejectsNegative(t *testing.T) {
	inventory := inv(1, 1, 1, 1)
	err := inventory.Credit(map[Denomination]int{500: -1})
	if !errors.Is(err, ErrInvalidRefillAmount) {
		t.Fatalf("expected ErrInvalidRefillAmount, got %v", err)
	}
	if inventory.Count(500) != 1 {
		t.Fatalf("count changed on rejected credit")
	}
}
