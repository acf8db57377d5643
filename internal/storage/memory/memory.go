// Package memory provides an in-memory content store for tests and
// offline development.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/fundconn/fundconn/internal/storage"
)

// Store is an in-memory implementation of storage.Store with
// deterministic content-derived ids.
type Store struct {
	mu      sync.RWMutex
	gateway string
	objects map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		gateway: "memory://",
		objects: make(map[string][]byte),
	}
}

func (s *Store) Put(ctx context.Context, data []byte) (*storage.StoredContent, error) {
	sum := sha256.Sum256(data)
	id := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = append([]byte(nil), data...)

	return &storage.StoredContent{ID: id, Path: s.gateway + id}, nil
}

func (s *Store) PutText(ctx context.Context, text string) (*storage.StoredContent, error) {
	return s.Put(ctx, storage.EncodeText(text))
}

func (s *Store) Get(ctx context.Context, contentID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[contentID]
	if !ok {
		return nil, fmt.Errorf("object %s: %w", contentID, storage.ErrUnavailable)
	}
	return append([]byte(nil), data...), nil
}
