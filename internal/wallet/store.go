package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// StateStore persists the last-connected account across restarts. It
// holds a single key; explicit disconnect clears it.
type StateStore struct {
	mu   sync.Mutex
	path string
}

type persistedState struct {
	Account string `json:"account,omitempty"`
}

// NewStateStore creates a store backed by the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Account returns the persisted account, nil when none is stored.
func (s *StateStore) Account() (*common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session state: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing session state: %w", err)
	}
	if !common.IsHexAddress(state.Account) {
		return nil, nil
	}
	addr := common.HexToAddress(state.Account)
	return &addr, nil
}

// SetAccount persists addr as the last-connected account.
func (s *StateStore) SetAccount(addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(persistedState{Account: addr.Hex()})
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("preparing state dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}
	return nil
}

// Clear removes the persisted account.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing session state: %w", err)
	}
	return nil
}
