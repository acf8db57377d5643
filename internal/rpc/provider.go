package rpc

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// NodeProvider adapts a plain node connection to the wallet provider
// surface. Nodes cannot prompt for account access and never announce
// account changes; a local development node may still expose unlocked
// accounts.
type NodeProvider struct {
	client *Client
}

// NewNodeProvider creates a read-only provider over client.
func NewNodeProvider(client *Client) *NodeProvider {
	return &NodeProvider{client: client}
}

func (p *NodeProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var hexes []string
	if err := p.client.Call(ctx, "eth_accounts", []any{}, &hexes); err != nil {
		return nil, err
	}

	accounts := make([]common.Address, 0, len(hexes))
	for _, h := range hexes {
		if common.IsHexAddress(h) {
			accounts = append(accounts, common.HexToAddress(h))
		}
	}
	return accounts, nil
}

func (p *NodeProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return nil, errors.New("node connections cannot request account access")
}

func (p *NodeProvider) OnAccountsChanged(fn func([]common.Address)) func() {
	return func() {}
}
