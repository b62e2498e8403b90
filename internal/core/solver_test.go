package core

import (
	"errors"
	"testing"
)

func inv(n2000, n500, n200, n100 int) *NoteInventory {
	return NewNoteInventory(map[Denomination]int{
		2000: n2000, 500: n500, 200: n200, 100: n100,
	})
}

func TestSolveGreedySucceeds(t *testing.T) {
	plan, err := Solve(2300, inv(10, 20, 50, 100))
	if err != nil {
		t.Fatalf("expected plan, got %v", err)
	}
	want := DenominationPlan{2000: 1, 500: 0, 200: 1, 100: 1}
	for _, d := range Denominations {
		if plan[d] != want[d] {
			t.Fatalf("denomination %d: got %d notes, want %d", d, plan[d], want[d])
		}
	}
}

func TestSolveSmallNotesOnly(t *testing.T) {
	// With no 2000s the pass flows through the lower notes: 500+200+100.
	plan, err := Solve(800, inv(0, 1, 1, 1))
	if err != nil {
		t.Fatalf("expected plan, got %v", err)
	}
	want := DenominationPlan{2000: 0, 500: 1, 200: 1, 100: 1}
	for _, d := range Denominations {
		if plan[d] != want[d] {
			t.Fatalf("denomination %d: got %d notes, want %d", d, plan[d], want[d])
		}
	}
}

func TestSolveSingleLargeNote(t *testing.T) {
	plan, err := Solve(2000, inv(1, 0, 0, 0))
	if err != nil {
		t.Fatalf("expected plan, got %v", err)
	}
	if plan[2000] != 1 || plan.Notes() != 1 {
		t.Fatalf("expected a single 2000 note, got %v", plan)
	}
}

func TestSolveInfeasible(t *testing.T) {
	// 200 alone cannot complete 300 and no 100s are available.
	_, err := Solve(300, inv(1, 0, 1, 0))
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestSolveCapsAtAvailableCount(t *testing.T) {
	// floor(400/200) is two notes but only one is held; the 100s cover the
	// rest.
	plan, err := Solve(400, inv(0, 0, 1, 4))
	if err != nil {
		t.Fatalf("expected plan, got %v", err)
	}
	want := DenominationPlan{2000: 0, 500: 0, 200: 1, 100: 2}
	for _, d := range Denominations {
		if plan[d] != want[d] {
			t.Fatalf("denomination %d: got %d notes, want %d", d, plan[d], want[d])
		}
	}
}

func TestSolveSearchWindowLimitation(t *testing.T) {
	// 200x3 would pay 600 exactly, but the greedy pass takes the 500 first
	// and the search never raises a count above what the greedy pass chose.
	// The request is reported infeasible; this is the documented tradeoff of
	// the bounded search, not a bug to fix.
	_, err := Solve(600, inv(0, 1, 3, 0))
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestSolveProperties(t *testing.T) {
	cases := []struct {
		amount    int64
		inventory *NoteInventory
	}{
		{2300, inv(10, 20, 50, 100)},
		{800, inv(0, 1, 1, 1)},
		{4700, inv(2, 1, 2, 10)},
		{100, inv(5, 5, 5, 1)},
		{7000, inv(3, 2, 0, 0)},
	}
	for i, tc := range cases {
		plan, err := Solve(tc.amount, tc.inventory)
		if err != nil {
			t.Fatalf("case %d: expected plan, got %v", i, err)
		}
		if plan.Total() != tc.amount {
			t.Fatalf("case %d: plan sums to %d, want %d", i, plan.Total(), tc.amount)
		}
		for _, d := range Denominations {
			if plan[d] > tc.inventory.Count(d) {
				t.Fatalf("case %d: plan takes %d notes of %d, only %d held",
					i, plan[d], d, tc.inventory.Count(d))
			}
		}
		// Deterministic: the same snapshot solves to the same plan.
		again, err := Solve(tc.amount, tc.inventory)
		if err != nil {
			t.Fatalf("case %d: second solve failed: %v", i, err)
		}
		for _, d := range Denominations {
			if plan[d] != again[d] {
				t.Fatalf("case %d: solve is not deterministic at %d", i, d)
			}
		}
	}
}

func TestSolveNeverMutatesInventory(t *testing.T) {
	feasible := inv(10, 20, 50, 100)
	infeasible := inv(1, 0, 1, 0)
	beforeFeasible := feasible.Snapshot()
	beforeInfeasible := infeasible.Snapshot()
	if _, err := Solve(2300, feasible); err != nil {
		t.Fatalf("expected plan, got %v", err)
	}
	if _, err := Solve(300, infeasible); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
	for _, d := range Denominations {
		if feasible.Count(d) != beforeFeasible[d] {
			t.Fatalf("solver mutated inventory at %d", d)
		}
		if infeasible.Count(d) != beforeInfeasible[d] {
			t.Fatalf("solver mutated inventory at %d on the infeasible path", d)
		}
	}
}

func TestSolveInfeasibleReportsGreedyFigures(t *testing.T) {
	plan, err := Solve(300, inv(1, 0, 1, 0))
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
	// The greedy pass took the single 200 and stalled with 100 remaining.
	if plan[200] != 1 || plan[2000] != 0 {
		t.Fatalf("expected greedy figures alongside ErrInfeasible, got %v", plan)
	}
}
