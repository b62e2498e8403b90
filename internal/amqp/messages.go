package amqp

import (
	"encoding/json"
	"time"
)

// TransactionMessage mirrors one committed journal record for the back-office
// feed. It carries the full record so the consumer does not need access to
// the terminal's storage.
type TransactionMessage struct {
	ID            string    `json:"id"`
	AccountNumber int64     `json:"account_number"`
	Kind          string    `json:"kind"`
	AmountCents   int64     `json:"amount_cents"`
	BalanceCents  int64     `json:"balance_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToJSON converts the message to JSON bytes
func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON creates a message from JSON bytes
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
