package core

import (
	"strings"
	"time"
)

// Denomination is a note value the machine can hold and dispense.
type Denomination int64

// Denominations lists every note value the machine supports, in strictly
// descending order. The solver and all serialized inventory records rely on
// this ordering.
var Denominations = []Denomination{2000, 500, 200, 100}

// SmallestDenomination is the granularity of every withdrawal amount.
const SmallestDenomination = Denomination(100)

// MaxLoginAttempts is the number of consecutive PIN failures after which an
// account is locked until an administrative unlock.
const MaxLoginAttempts = 3

// TimeFormat is the sortable textual form used for journal timestamps.
const TimeFormat = "2006-01-02 15:04:05"

type TransactionKind string

const (
	KindBalanceInquiry TransactionKind = "Balance Inquiry"
	KindWithdrawal     TransactionKind = "Withdrawal"
)

type (
	// Account is a single account holder's record. Balance is kept in minor
	// units; it never goes negative.
	Account struct {
		Number        int64
		PIN           int
		Balance       Money
		Name          string
		LoginAttempts int
		Locked        bool
	}

	// TransactionRecord is one journal line. Records are append-only; they
	// are never mutated or deleted after creation.
	TransactionRecord struct {
		ID            string
		AccountNumber int64
		Kind          TransactionKind
		Amount        Money
		Balance       Money
		CreatedAt     time.Time
	}
)

func (a Account) Validate() error {
	if a.Number <= 0 {
		return ErrAccountNotFound
	}
	if a.Balance.Cents < 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ValidateWithdrawalAmount checks the business rules every requested amount
// must satisfy before any solving happens: positive and a multiple of the
// smallest note.
func ValidateWithdrawalAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount%int64(SmallestDenomination) != 0 {
		return ErrInvalidAmount
	}
	return nil
}
