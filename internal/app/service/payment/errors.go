package payment

import "errors"

var (
	// ErrInvalidQuery is returned when a status query carries neither
	// identifier. Surfaced to the caller as a client error, not retried.
	ErrInvalidQuery = errors.New("transaction_id or external_id is required")

	// ErrNotFound is returned when neither the ledger nor the gateway
	// knows the transaction.
	ErrNotFound = errors.New("transaction not found")

	// ErrRemoteUnavailable is returned when the gateway call failed or
	// timed out and there is no local state to fall back to.
	ErrRemoteUnavailable = errors.New("payment gateway unavailable")

	// ErrAmountTooSmall rejects creations below the minimum charge.
	ErrAmountTooSmall = errors.New("minimum amount is 0.01")
)
