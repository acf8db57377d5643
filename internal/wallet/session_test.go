package wallet_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fundconn/fundconn/internal/mocks"
	"github.com/fundconn/fundconn/internal/notify"
	"github.com/fundconn/fundconn/internal/wallet"
)

var testAccount = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func newStore(t *testing.T) *wallet.StateStore {
	t.Helper()
	return wallet.NewStateStore(filepath.Join(t.TempDir(), "state.json"))
}

func readOnlyFallback() *mocks.Provider {
	fallback := &mocks.Provider{}
	fallback.On("Accounts", mock.Anything).Return([]common.Address{}, nil).Maybe()
	return fallback
}

func TestConnectWithoutProvider(t *testing.T) {
	notices := &notify.Recorder{}
	session := wallet.NewSession(nil, readOnlyFallback(), newStore(t), notices, nil, nil)

	err := session.Connect(context.Background())
	require.ErrorIs(t, err, wallet.ErrProviderUnavailable)
	require.NotEmpty(t, notices.Notices())
}

func TestConnectBindsAndPersists(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return([]common.Address{testAccount}, nil)
	injected.On("OnAccountsChanged", mock.Anything).Return(func() {})

	store := newStore(t)
	session := wallet.NewSession(injected, readOnlyFallback(), store, &notify.Recorder{}, nil, nil)

	require.NoError(t, session.Connect(ctx))
	require.True(t, session.Connected())
	require.Equal(t, testAccount, *session.Account())

	persisted, err := store.Account()
	require.NoError(t, err)
	require.Equal(t, testAccount, *persisted)
}

func TestConnectUserRejection(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return(nil, &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "denied"})

	store := newStore(t)
	session := wallet.NewSession(injected, readOnlyFallback(), store, &notify.Recorder{}, nil, nil)

	err := session.Connect(ctx)
	require.ErrorIs(t, err, wallet.ErrUserRejected)
	require.False(t, session.Connected())

	persisted, err := store.Account()
	require.NoError(t, err)
	require.Nil(t, persisted, "a refusal must not change persistence")
}

func TestConnectProviderFailure(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return(nil, errors.New("wallet locked"))

	session := wallet.NewSession(injected, readOnlyFallback(), newStore(t), &notify.Recorder{}, nil, nil)
	require.ErrorIs(t, session.Connect(ctx), wallet.ErrProviderRequestFailed)
}

func TestConnectToggleDisconnects(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return([]common.Address{testAccount}, nil).Once()
	injected.On("OnAccountsChanged", mock.Anything).Return(func() {})
	injected.On("Accounts", ctx).Return([]common.Address{}, nil)

	store := newStore(t)
	session := wallet.NewSession(injected, readOnlyFallback(), store, &notify.Recorder{}, nil, nil)

	require.NoError(t, session.Connect(ctx))
	require.True(t, session.Connected())

	require.NoError(t, session.Connect(ctx), "second connect acts as a disconnect toggle")
	require.False(t, session.Connected())

	persisted, err := store.Account()
	require.NoError(t, err)
	require.Nil(t, persisted, "explicit disconnect clears the persisted account")
}

func TestStartupSilentReconnectSkipsPrompt(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("Accounts", ctx).Return([]common.Address{testAccount}, nil)
	injected.On("OnAccountsChanged", mock.Anything).Return(func() {})

	store := newStore(t)
	require.NoError(t, store.SetAccount(testAccount))

	session := wallet.NewSession(injected, readOnlyFallback(), store, &notify.Recorder{}, nil, nil)
	require.NoError(t, session.Startup(ctx))

	require.True(t, session.Connected())
	require.Equal(t, testAccount, *session.Account())
	injected.AssertNotCalled(t, "RequestAccounts", mock.Anything)
}

func TestStartupWithoutProviderIsReadOnly(t *testing.T) {
	session := wallet.NewSession(nil, readOnlyFallback(), newStore(t), &notify.Recorder{}, nil, nil)
	require.NoError(t, session.Startup(context.Background()))
	require.False(t, session.Connected())
}

func TestStartupNoPersistedAccountStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	injected := &mocks.Provider{}
	injected.On("Accounts", ctx).Return([]common.Address{testAccount}, nil)

	session := wallet.NewSession(injected, readOnlyFallback(), newStore(t), &notify.Recorder{}, nil, nil)
	require.NoError(t, session.Startup(ctx))

	require.False(t, session.Connected(), "no persisted account means no silent signer binding")
	injected.AssertNotCalled(t, "RequestAccounts", mock.Anything)
}

func TestAccountChangeRebindsSigner(t *testing.T) {
	ctx := context.Background()
	other := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	var changed func([]common.Address)
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return([]common.Address{testAccount}, nil)
	injected.On("OnAccountsChanged", mock.Anything).Run(func(args mock.Arguments) {
		changed = args.Get(0).(func([]common.Address))
	}).Return(func() {})

	store := newStore(t)
	session := wallet.NewSession(injected, readOnlyFallback(), store, &notify.Recorder{}, nil, nil)
	require.NoError(t, session.Connect(ctx))
	require.NotNil(t, changed)

	var rebinds int
	session.OnRebind(func(wallet.Binding) { rebinds++ })

	changed([]common.Address{other})
	require.Equal(t, other, *session.Account())
	require.Equal(t, 1, rebinds)

	persisted, err := store.Account()
	require.NoError(t, err)
	require.Equal(t, other, *persisted)
}

func TestAccountChangeToEmptyDropsSigner(t *testing.T) {
	ctx := context.Background()

	var changed func([]common.Address)
	injected := &mocks.Provider{}
	injected.On("RequestAccounts", ctx).Return([]common.Address{testAccount}, nil)
	injected.On("OnAccountsChanged", mock.Anything).Run(func(args mock.Arguments) {
		changed = args.Get(0).(func([]common.Address))
	}).Return(func() {})

	session := wallet.NewSession(injected, readOnlyFallback(), newStore(t), &notify.Recorder{}, nil, nil)
	require.NoError(t, session.Connect(ctx))

	changed(nil)
	require.False(t, session.Connected())
}
