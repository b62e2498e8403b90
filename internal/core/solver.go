package core

// DenominationPlan maps each denomination to the number of notes to dispense.
// A valid plan sums exactly to the requested amount and never exceeds the
// inventory counts it was solved against.
type DenominationPlan map[Denomination]int

// Total is the cash value of the plan in whole units.
func (p DenominationPlan) Total() int64 {
	var total int64
	for _, d := range Denominations {
		total += int64(d) * int64(p[d])
	}
	return total
}

// Notes is the total number of physical notes in the plan.
func (p DenominationPlan) Notes() int {
	n := 0
	for _, d := range Denominations {
		n += p[d]
	}
	return n
}

// Solve computes a dispensable note breakdown for amount against a read-only
// snapshot of the inventory. It never mutates the inventory.
//
// The greedy pass walks the denominations in descending order and takes
// floor(remaining/denomination) notes, capped at the available count. When
// the pass clears the full amount its plan is the canonical result; it is
// "greedy-minimal", not minimum-note-count optimal, and callers must not
// expect optimal change-making.
//
// When the greedy pass leaves a remainder, a bounded depth-first search
// varies the counts of every denomination except the smallest, each from its
// greedy count down to zero, in descending-preference order; the smallest
// denomination absorbs whatever residual divides evenly into it. The first
// feasible combination in that order wins, so the result keeps as many large
// notes as the greedy pass chose, reducing only when necessary. The search
// never tries more notes of a denomination than the greedy pass took; with
// the smallest denomination covering every residual this window is exhaustive
// for the supported note set.
//
// On failure Solve returns the greedy figures together with ErrInfeasible so
// callers can report what was attempted.
func Solve(amount int64, inv *NoteInventory) (DenominationPlan, error) {
	greedy := make(DenominationPlan, len(Denominations))
	remaining := amount
	for _, d := range Denominations {
		use := int(remaining / int64(d))
		if avail := inv.Count(d); use > avail {
			use = avail
		}
		greedy[d] = use
		remaining -= int64(use) * int64(d)
	}
	if remaining == 0 {
		return greedy, nil
	}

	plan := make(DenominationPlan, len(Denominations))
	if backtrack(amount, 0, greedy, inv, plan) {
		return plan, nil
	}
	return greedy, ErrInfeasible
}

// backtrack searches the denominations above the smallest one, level by
// level, each count running from the greedy count down to zero. At the
// bottom the residual must be non-negative, divisible by the smallest
// denomination and covered by its available count.
func backtrack(remaining int64, level int, greedy DenominationPlan, inv *NoteInventory, plan DenominationPlan) bool {
	if level == len(Denominations)-1 {
		smallest := Denominations[level]
		if remaining%int64(smallest) != 0 {
			return false
		}
		need := int(remaining / int64(smallest))
		if need > inv.Count(smallest) {
			return false
		}
		plan[smallest] = need
		return true
	}

	d := Denominations[level]
	for n := greedy[d]; n >= 0; n-- {
		rest := remaining - int64(n)*int64(d)
		if rest < 0 {
			continue
		}
		plan[d] = n
		if backtrack(rest, level+1, greedy, inv, plan) {
			return true
		}
	}
	return false
}
