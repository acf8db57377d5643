// Package mocks provides testify mocks for the module's external
// surfaces.
package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/fundconn/fundconn/internal/storage"
)

// Contract is a mock for ledger.Contract.
type Contract struct {
	mock.Mock
}

func (m *Contract) GetProject(ctx context.Context, id string) (*ledger.ProjectRecord, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*ledger.ProjectRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Contract) GetProjects(ctx context.Context) ([]ledger.ProjectRecord, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]ledger.ProjectRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Contract) GetFunders(ctx context.Context, id string) ([]ledger.FundRecord, error) {
	args := m.Called(ctx, id)
	if recs, ok := args.Get(0).([]ledger.FundRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Contract) FundToProject(ctx context.Context, id, message string, timestamp int64, value *big.Int) error {
	args := m.Called(ctx, id, message, timestamp, value)
	return args.Error(0)
}

func (m *Contract) CreateProject(ctx context.Context, rec ledger.CreateRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// ContentStore is a mock for storage.Store.
type ContentStore struct {
	mock.Mock
}

func (m *ContentStore) Put(ctx context.Context, data []byte) (*storage.StoredContent, error) {
	args := m.Called(ctx, data)
	if stored, ok := args.Get(0).(*storage.StoredContent); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentStore) PutText(ctx context.Context, text string) (*storage.StoredContent, error) {
	args := m.Called(ctx, text)
	if stored, ok := args.Get(0).(*storage.StoredContent); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentStore) Get(ctx context.Context, contentID string) ([]byte, error) {
	args := m.Called(ctx, contentID)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

// Provider is a mock for wallet.Provider.
type Provider struct {
	mock.Mock
}

func (m *Provider) Accounts(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]common.Address); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]common.Address); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) OnAccountsChanged(fn func([]common.Address)) func() {
	args := m.Called(fn)
	if remove, ok := args.Get(0).(func()); ok {
		return remove
	}
	return func() {}
}

// AccountSource is a fixed-account ledger.AccountSource.
type AccountSource struct {
	Addr *common.Address
}

func (s *AccountSource) Account() *common.Address {
	return s.Addr
}
