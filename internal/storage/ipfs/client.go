// Package ipfs implements the content store against a Kubo-compatible
// storage node RPC API.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fundconn/fundconn/internal/storage"
)

// Client talks to a storage node over its HTTP RPC API and builds
// gateway-resolvable paths for stored content.
type Client struct {
	api     string
	gateway string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a storage client. api is the node RPC endpoint, gateway
// the base URL for fetchable paths.
func New(api, gateway string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		api:     strings.TrimRight(api, "/"),
		gateway: strings.TrimRight(gateway, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Put stores raw bytes on the node and returns the content id with its
// gateway path. Any transport failure is reported as
// storage.ErrUnavailable.
func (c *Client) Put(ctx context.Context, data []byte) (*storage.StoredContent, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "content")
	if err != nil {
		return nil, c.unavailable("preparing upload", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, c.unavailable("preparing upload", err)
	}
	if err := writer.Close(); err != nil {
		return nil, c.unavailable("preparing upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.api+"/api/v0/add", &body)
	if err != nil {
		return nil, c.unavailable("adding content", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.unavailable("adding content", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unavailable("adding content", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var added addResponse
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		return nil, c.unavailable("decoding add response", err)
	}

	return &storage.StoredContent{
		ID:   added.Hash,
		Path: c.gateway + "/" + added.Hash,
	}, nil
}

// PutText stores sentinel-tagged text.
func (c *Client) PutText(ctx context.Context, text string) (*storage.StoredContent, error) {
	return c.Put(ctx, storage.EncodeText(text))
}

// Get retrieves a payload by content id, reassembling the node's
// chunked stream into a single byte slice.
func (c *Client) Get(ctx context.Context, contentID string) ([]byte, error) {
	endpoint := c.api + "/api/v0/cat?arg=" + url.QueryEscape(contentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, c.unavailable("fetching content", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.unavailable("fetching content", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unavailable("fetching content", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.unavailable("reading content stream", err)
	}
	return data, nil
}

func (c *Client) unavailable(op string, err error) error {
	c.logger.Warn("storage transport failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, storage.ErrUnavailable)
}
