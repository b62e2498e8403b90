package core

// NoteInventory tracks how many notes of each denomination the machine
// currently holds. Counts never go negative.
type NoteInventory struct {
	counts map[Denomination]int
}

// NewNoteInventory builds an inventory from per-denomination counts. Unknown
// denominations are ignored; missing ones start at zero.
func NewNoteInventory(counts map[Denomination]int) *NoteInventory {
	inv := &NoteInventory{counts: make(map[Denomination]int, len(Denominations))}
	for _, d := range Denominations {
		if n, ok := counts[d]; ok && n > 0 {
			inv.counts[d] = n
		}
	}
	return inv
}

// Count reports how many notes of d are available.
func (inv *NoteInventory) Count(d Denomination) int {
	return inv.counts[d]
}

// TotalValue is the cash value of every note in the machine, in whole units.
func (inv *NoteInventory) TotalValue() int64 {
	var total int64
	for _, d := range Denominations {
		total += int64(d) * int64(inv.counts[d])
	}
	return total
}

// CanAfford reports whether the machine physically holds at least amount in
// total. Necessary but not sufficient for dispensability: a sufficient total
// does not guarantee a combination of notes sums exactly to amount.
func (inv *NoteInventory) CanAfford(amount int64) bool {
	return inv.TotalValue() >= amount
}

// Debit removes the notes in plan from the inventory. Every plan count must
// be covered by the current count; the solver guarantees that for plans it
// produced against this inventory, so ErrInsufficientNotes here means the
// plan was stale or hand-built.
func (inv *NoteInventory) Debit(plan DenominationPlan) error {
	for _, d := range Denominations {
		if plan[d] > inv.counts[d] {
			return ErrInsufficientNotes
		}
	}
	for _, d := range Denominations {
		inv.counts[d] -= plan[d]
		if inv.counts[d] == 0 {
			delete(inv.counts, d)
		}
	}
	return nil
}

// Credit adds notes to the inventory, used only by the administrative refill
// operation. All deltas must be non-negative.
func (inv *NoteInventory) Credit(deltas map[Denomination]int) error {
	for _, d := range Denominations {
		if deltas[d] < 0 {
			return ErrInvalidRefillAmount
		}
	}
	for _, d := range Denominations {
		if deltas[d] > 0 {
			inv.counts[d] += deltas[d]
		}
	}
	return nil
}

// Snapshot returns a copy of the per-denomination counts, including zero
// entries for every supported denomination.
func (inv *NoteInventory) Snapshot() map[Denomination]int {
	out := make(map[Denomination]int, len(Denominations))
	for _, d := range Denominations {
		out[d] = inv.counts[d]
	}
	return out
}
