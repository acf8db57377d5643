package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Provider is a connection to the network that may expose accounts. An
// injected wallet can prompt the user for access; a plain node
// connection only reports what it already exposes.
type Provider interface {
	// Accounts lists the accounts currently exposed without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts asks the wallet to grant account access, which
	// may prompt the user. A refusal surfaces as a ProviderError with
	// CodeUserRejected.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// OnAccountsChanged registers fn for account-change announcements
	// and returns a function that removes the registration.
	OnAccountsChanged(fn func(accounts []common.Address)) (remove func())
}

// Binding is the active provider/signer pair. Account is nil while the
// session is read-only.
type Binding struct {
	Provider Provider
	Account  *common.Address
}
