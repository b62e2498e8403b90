// Package worker drains the back-office transaction feed into an audit log.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nullvectorcodes/atm-machine/internal/amqp"
	"github.com/nullvectorcodes/atm-machine/internal/core"
)

// AuditWorker appends every consumed transaction message to a flat audit
// file, one line per record. The file is the back office's copy of the
// journal; the terminal never reads it.
type AuditWorker struct {
	path string
}

func NewAuditWorker(path string) (*AuditWorker, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create audit directory: %w", err)
		}
	}
	return &AuditWorker{path: path}, nil
}

// HandleTransaction processes a single message from the queue. Returning an
// error makes the consumer nack and requeue it.
func (w *AuditWorker) HandleTransaction(ctx context.Context, msg *amqp.TransactionMessage) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	amount := core.Money{Cents: msg.AmountCents}
	balance := core.Money{Cents: msg.BalanceCents}
	_, err = fmt.Fprintf(f, "%s %s account=%d %s amount=%s balance=%s\n",
		msg.CreatedAt.Format(core.TimeFormat), msg.ID, msg.AccountNumber,
		msg.Kind, amount, balance)
	if err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}

	slog.InfoContext(ctx, "Audited transaction",
		"id", msg.ID,
		"account", msg.AccountNumber,
		"kind", msg.Kind)
	return nil
}
