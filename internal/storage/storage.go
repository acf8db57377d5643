// Package storage defines the content-addressable store used for rich
// project bodies and images, and the sentinel codec that tags text
// payloads.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable indicates a storage transport failure. Callers on the
// application's render path treat it as a soft failure and continue
// without the content.
var ErrUnavailable = errors.New("storage unavailable")

// StoredContent locates a stored payload.
type StoredContent struct {
	// ID is the opaque content identifier returned by the storage node.
	ID string `json:"id"`
	// Path is the gateway-resolvable URL for the content.
	Path string `json:"path"`
}

// Store persists and retrieves opaque payloads by content identifier.
type Store interface {
	// Put stores raw bytes.
	Put(ctx context.Context, data []byte) (*StoredContent, error)
	// PutText stores text, tagged with the sentinel marker so retrieval
	// can tell it apart from binary payloads.
	PutText(ctx context.Context, text string) (*StoredContent, error)
	// Get retrieves a payload, reassembled into a single byte slice.
	Get(ctx context.Context, contentID string) ([]byte, error)
}
