// Package services orchestrates terminal operations across the ledger, the
// note inventory, durable storage and the back-office feed.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nullvectorcodes/atm-machine/internal/amqp"
	"github.com/nullvectorcodes/atm-machine/internal/core"
	"github.com/nullvectorcodes/atm-machine/internal/ledger"
	"github.com/nullvectorcodes/atm-machine/internal/storage"
)

// ConfirmFunc asks the account holder to approve a dispense plan before
// anything is committed. Returning false aborts the withdrawal with no state
// touched.
type ConfirmFunc func(core.DenominationPlan) bool

// TransactionPublisher pushes committed journal records to the back-office
// feed. *amqp.Client satisfies it; a nil publisher disables the feed.
type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, msg *amqp.TransactionMessage) error
}

// Service is the coordinator for every account-facing operation. All state
// mutation funnels through here so the account debit and the inventory debit
// always land together.
type Service struct {
	ledger    *ledger.Ledger
	inventory *core.NoteInventory
	store     storage.Store
	publisher TransactionPublisher
}

func New(l *ledger.Ledger, inventory *core.NoteInventory, store storage.Store, publisher TransactionPublisher) *Service {
	return &Service{
		ledger:    l,
		inventory: inventory,
		store:     store,
		publisher: publisher,
	}
}

// Ledger exposes the account aggregate for authentication and admin flows.
func (s *Service) Ledger() *ledger.Ledger { return s.ledger }

// Inventory exposes the live note counts for the admin view.
func (s *Service) Inventory() *core.NoteInventory { return s.inventory }

// Withdraw runs the full withdrawal protocol for account and amount (whole
// units):
//
//  1. validate the amount: positive, multiple of the smallest note, covered
//     by the balance
//  2. validate the machine holds enough total cash
//  3. solve a note breakdown; infeasible rejects with nothing touched
//  4. ask the caller to confirm the plan; decline rejects with nothing
//     touched
//  5. commit the account debit and the inventory debit as one unit
//  6. journal the withdrawal and persist accounts and inventory
//
// Every rejection path leaves accounts and inventory exactly as they were.
// Once step 5 lands the withdrawal is committed for the session even if
// persistence or the journal append fails; those failures are logged, not
// rolled back.
func (s *Service) Withdraw(ctx context.Context, account *core.Account, amount int64, confirm ConfirmFunc) (core.DenominationPlan, error) {
	if err := core.ValidateWithdrawalAmount(amount); err != nil {
		return nil, err
	}
	debit := core.FromUnits(amount)
	if debit.Cents > account.Balance.Cents {
		return nil, core.ErrInsufficientFunds
	}
	if !s.inventory.CanAfford(amount) {
		return nil, core.ErrInsufficientCash
	}

	plan, err := core.Solve(amount, s.inventory)
	if err != nil {
		return nil, err
	}

	if confirm != nil && !confirm(plan) {
		slog.InfoContext(ctx, "Withdrawal declined at confirmation",
			"account", account.Number, "amount", amount)
		return nil, core.ErrDeclined
	}

	// Commit point. The inventory debit is the only step with a checked
	// failure mode, so it goes first; a failed account debit hands the notes
	// back so neither side is applied alone.
	if err := s.inventory.Debit(plan); err != nil {
		return nil, err
	}
	newBalance, err := s.ledger.Debit(account, debit)
	if err != nil {
		if cerr := s.inventory.Credit(planDeltas(plan)); cerr != nil {
			slog.ErrorContext(ctx, "Failed to restore inventory after aborted debit",
				"error", cerr, "account", account.Number)
		}
		return nil, err
	}

	s.journal(ctx, account.Number, core.KindWithdrawal, debit, newBalance)
	s.persist(ctx)

	slog.InfoContext(ctx, "Withdrawal committed",
		"account", account.Number,
		"amount", amount,
		"notes", plan.Notes(),
		"balance_cents", newBalance.Cents)
	return plan, nil
}

func planDeltas(plan core.DenominationPlan) map[core.Denomination]int {
	deltas := make(map[core.Denomination]int, len(plan))
	for d, n := range plan {
		deltas[d] = n
	}
	return deltas
}

// Inquire returns the current balance. Inquiries are logged events, not free
// reads: each one lands a zero-amount journal record.
func (s *Service) Inquire(ctx context.Context, account *core.Account) (core.Money, error) {
	s.journal(ctx, account.Number, core.KindBalanceInquiry, core.Money{}, account.Balance)
	return account.Balance, nil
}

// History returns the journal entries for one account, oldest first.
func (s *Service) History(ctx context.Context, number int64) ([]core.TransactionRecord, error) {
	records, err := s.store.TransactionsByAccount(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("read transaction history: %w", err)
	}
	return records, nil
}

// Refill adds notes to the machine and persists the new counts. Deltas must
// all be non-negative.
func (s *Service) Refill(ctx context.Context, deltas map[core.Denomination]int) error {
	if err := s.inventory.Credit(deltas); err != nil {
		return err
	}
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		slog.ErrorContext(ctx, "Failed to persist inventory after refill", "error", err)
	}
	slog.InfoContext(ctx, "Inventory refilled", "total_value", s.inventory.TotalValue())
	return nil
}

// Unlock clears an account's lock and failure counter.
func (s *Service) Unlock(ctx context.Context, number int64) error {
	return s.ledger.Unlock(ctx, number)
}

// journal appends a record and forwards it to the back-office feed. Both are
// best-effort once the operation itself has committed.
func (s *Service) journal(ctx context.Context, number int64, kind core.TransactionKind, amount, balance core.Money) {
	rec := core.TransactionRecord{
		ID:            uuid.NewString(),
		AccountNumber: number,
		Kind:          kind,
		Amount:        amount,
		Balance:       balance,
		CreatedAt:     time.Now(),
	}
	if err := s.store.AppendTransaction(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to append journal record",
			"error", err, "account", number, "kind", kind)
	}
	if s.publisher == nil {
		return
	}
	msg := &amqp.TransactionMessage{
		ID:            rec.ID,
		AccountNumber: rec.AccountNumber,
		Kind:          string(rec.Kind),
		AmountCents:   rec.Amount.Cents,
		BalanceCents:  rec.Balance.Cents,
		CreatedAt:     rec.CreatedAt,
	}
	if err := s.publisher.PublishTransaction(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction message",
			"error", err, "id", rec.ID)
	}
}

// persist writes accounts and inventory back after a committed mutation.
// Failures are logged and the in-memory state stands for the session.
func (s *Service) persist(ctx context.Context) {
	if err := s.ledger.Persist(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist accounts", "error", err)
	}
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		slog.ErrorContext(ctx, "Failed to persist inventory", "error", err)
	}
}
