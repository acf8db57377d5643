package ledger

import "errors"

var (
	// ErrUnbound indicates no contract handle is bound.
	ErrUnbound = errors.New("ledger contract not bound")
	// ErrInvalidInput indicates a missing or malformed argument.
	ErrInvalidInput = errors.New("invalid ledger input")
	// ErrProjectNotFound indicates the ledger reports no such record.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoSigner indicates a submit operation without a connected account.
	ErrNoSigner = errors.New("no signer bound")
	// ErrTransactionRejected indicates the provider refused a submitted
	// transaction. Recoverable; the user retries manually.
	ErrTransactionRejected = errors.New("transaction rejected by provider")
	// ErrZeroAmountNotAllowed indicates a zero-value donation to a
	// project that forbids them.
	ErrZeroAmountNotAllowed = errors.New("zero-amount funding not allowed for this project")
)
