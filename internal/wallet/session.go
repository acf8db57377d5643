// Package wallet owns the provider connection lifecycle and the
// currently active account.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fundconn/fundconn/internal/loading"
	"github.com/fundconn/fundconn/internal/notify"
)

// Session owns the active provider/signer pair. Exactly one binding is
// live at a time; it is replaced wholesale on connect, disconnect, and
// account switches. Consumers that cache anything derived from the
// binding re-derive it through OnRebind.
type Session struct {
	mu          sync.Mutex
	injected    Provider
	fallback    Provider
	current     Binding
	rebind      []func(Binding)
	removeWatch func()

	store    *StateStore
	notifier notify.Notifier
	loading  *loading.Tracker
	logger   *slog.Logger
}

// NewSession creates a session. injected is the wallet provider and may
// be nil; fallback is the read-only network connection used when no
// wallet is available.
func NewSession(injected, fallback Provider, store *StateStore, notifier notify.Notifier, tracker *loading.Tracker, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &Session{
		injected: injected,
		fallback: fallback,
		store:    store,
		notifier: notifier,
		loading:  tracker,
		logger:   logger,
	}
}

// Account returns the active signing account, nil while read-only.
func (s *Session) Account() *common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Account
}

// Connected reports whether a signer is bound.
func (s *Session) Connected() bool {
	return s.Account() != nil
}

// Binding returns the active provider/signer pair.
func (s *Session) Binding() Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnRebind registers fn to run after every binding replacement,
// including the initial one.
func (s *Session) OnRebind(fn func(Binding)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind = append(s.rebind, fn)
}

// Startup reconciles the session on load: it binds a read-only
// connection so read paths work anonymously, then attempts one silent
// reconnect when a previously persisted account exists.
func (s *Session) Startup(ctx context.Context) error {
	s.loading.Begin()
	defer s.loading.End()

	provider, accounts := s.pickProvider(ctx)
	s.bind(provider, nil, false)

	persisted, err := s.store.Account()
	if err != nil {
		s.logger.Warn("reading persisted account failed", "error", err)
		return nil
	}
	if persisted == nil {
		return nil
	}

	if len(accounts) > 0 {
		// The provider already exposes accounts: rebind without a
		// duplicate access prompt.
		s.bind(provider, &accounts[0], true)
		s.watchAccounts(provider)
		return nil
	}
	if err := s.connect(ctx, true); err != nil {
		s.logger.Debug("silent reconnect failed", "error", err)
	}
	return nil
}

// Connect toggles the wallet connection: it requests account access
// when disconnected and disconnects when a signer is already bound.
func (s *Session) Connect(ctx context.Context) error {
	return s.connect(ctx, false)
}

func (s *Session) connect(ctx context.Context, silent bool) error {
	s.loading.Begin()
	defer s.loading.End()

	if s.injected == nil {
		if !silent {
			s.notifier.Show(notify.Warn("Account request", "You have to install a wallet"))
		}
		return ErrProviderUnavailable
	}

	if account := s.Account(); account != nil {
		s.notifier.Show(notify.Info("Account status", fmt.Sprintf("Successfully disconnected as %s", account.Hex())))
		return s.Disconnect(ctx)
	}

	accounts, err := s.injected.RequestAccounts(ctx)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) && perr.Code == CodeUserRejected {
			if !silent {
				s.notifier.Show(notify.Warn("Account status", "You refused to connect your account to our website"))
			}
			return fmt.Errorf("requesting accounts: %w", ErrUserRejected)
		}
		if !silent {
			s.notifier.Show(notify.Info("Account request", "Please open/unlock your wallet and reload the page to continue"))
		}
		s.logger.Warn("account request failed", "error", err)
		return fmt.Errorf("requesting accounts: %w", ErrProviderRequestFailed)
	}
	if len(accounts) == 0 {
		if !silent {
			s.notifier.Show(notify.Info("Account request", "Please open/unlock your wallet and reload the page to continue"))
		}
		return fmt.Errorf("provider returned no accounts: %w", ErrProviderRequestFailed)
	}

	s.bind(s.injected, &accounts[0], true)
	s.watchAccounts(s.injected)
	if !silent {
		s.notifier.Show(notify.Info("Account status", fmt.Sprintf("Successfully connected as %s", accounts[0].Hex())))
	}
	return nil
}

// Disconnect clears the persisted account and rebinds a read-only
// connection.
func (s *Session) Disconnect(ctx context.Context) error {
	s.loading.Begin()
	defer s.loading.End()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("clearing persisted account failed", "error", err)
	}
	provider, _ := s.pickProvider(ctx)
	s.bind(provider, nil, false)
	return nil
}

// pickProvider chooses the injected provider when it exposes accounts,
// falling back to the read-only network connection otherwise. A local
// development node may expose unlocked accounts through the fallback.
func (s *Session) pickProvider(ctx context.Context) (Provider, []common.Address) {
	if s.injected != nil {
		accounts, err := s.injected.Accounts(ctx)
		if err == nil && len(accounts) > 0 {
			return s.injected, accounts
		}
		return s.fallback, nil
	}

	accounts, err := s.fallback.Accounts(ctx)
	if err != nil {
		s.logger.Warn("listing fallback accounts failed", "error", err)
		return s.fallback, nil
	}
	return s.fallback, accounts
}

// bind replaces the active binding wholesale and runs rebind callbacks.
func (s *Session) bind(provider Provider, account *common.Address, persist bool) {
	s.mu.Lock()
	s.current = Binding{Provider: provider, Account: account}
	callbacks := slices.Clone(s.rebind)
	binding := s.current
	s.mu.Unlock()

	if persist && account != nil {
		if err := s.store.SetAccount(*account); err != nil {
			s.logger.Warn("persisting account failed", "error", err)
		}
	}

	for _, fn := range callbacks {
		fn(binding)
	}
}

// watchAccounts registers the account-change reaction on provider,
// replacing any previous registration so repeated connects never stack
// listeners.
func (s *Session) watchAccounts(provider Provider) {
	s.mu.Lock()
	remove := s.removeWatch
	s.mu.Unlock()
	if remove != nil {
		remove()
	}

	newRemove := provider.OnAccountsChanged(func(accounts []common.Address) {
		s.onAccountsChanged(provider, accounts)
	})
	s.mu.Lock()
	s.removeWatch = newRemove
	s.mu.Unlock()
}

// onAccountsChanged rebinds the signer to the new first account without
// a full reconnect.
func (s *Session) onAccountsChanged(provider Provider, accounts []common.Address) {
	if len(accounts) == 0 {
		s.logger.Info("provider reports no accounts, dropping signer")
		s.bind(provider, nil, false)
		return
	}
	s.logger.Info("account changed", "account", accounts[0].Hex())
	s.bind(provider, &accounts[0], true)
}
