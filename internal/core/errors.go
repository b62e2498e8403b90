package core

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientCash    = errors.New("atm does not hold enough cash")
	ErrInfeasible          = errors.New("no note combination matches the amount")
	ErrAccountLocked       = errors.New("account locked")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientNotes   = errors.New("plan exceeds available notes")
	ErrInvalidRefillAmount = errors.New("refill deltas must be non-negative")
	ErrWrongPIN            = errors.New("incorrect pin")
	ErrDeclined            = errors.New("withdrawal declined")
)
