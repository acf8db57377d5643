package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates no injected wallet provider.
	ErrProviderUnavailable = errors.New("no wallet provider available")
	// ErrUserRejected indicates the user refused account access.
	// Recoverable; nothing is persisted.
	ErrUserRejected = errors.New("account access rejected by user")
	// ErrProviderRequestFailed indicates any other provider failure;
	// the user is told to unlock the wallet and reload.
	ErrProviderRequestFailed = errors.New("provider account request failed")
)

// CodeUserRejected is the provider-reported code for an explicit user
// refusal.
const CodeUserRejected = 4001

// ProviderError carries a wallet-reported error code.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}
