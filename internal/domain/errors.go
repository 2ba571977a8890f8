package domain

import "errors"

var (
	// Validation errors: rejected before any store access.
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrAmountOutOfBounds = errors.New("amount outside configured bounds")
	ErrSelfTransfer      = errors.New("cannot transfer to same account")
	ErrInvalidMethod     = errors.New("settlement method not allowed")
	ErrInvalidDirection  = errors.New("invalid adjustment direction")
	ErrInvalidKind       = errors.New("entry kind not allowed for this operation")

	// State errors: detected inside the store transaction, which aborts cleanly.
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAmountOverflow     = errors.New("balance would exceed configured maximum")
	ErrAdjustmentTooLarge = errors.New("adjustment exceeds configured maximum magnitude")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrRequestNotFound    = errors.New("settlement request not found")
	ErrAlreadyProcessed   = errors.New("settlement request already processed")

	// Concurrency errors: transient, retried internally before surfacing.
	ErrConcurrencyConflict = errors.New("account was modified concurrently")

	// Integrity errors: surfaced as an alarm, never auto-corrected.
	ErrLedgerDrift = errors.New("stored balance does not match entry log")
)
