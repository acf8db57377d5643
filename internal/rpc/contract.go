package rpc

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fundconn/fundconn/internal/ledger"
)

// Contract exposes the remote ledger's fixed method surface over
// JSON-RPC. A nil from address allows reads only; submit calls carry
// the signer.
type Contract struct {
	client  *Client
	address string
	from    *common.Address
	logger  *slog.Logger
}

// NewContract binds the contract at address. from is the signing
// account, nil for a read-only binding.
func NewContract(client *Client, address string, from *common.Address, logger *slog.Logger) *Contract {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Contract{
		client:  client,
		address: address,
		from:    from,
		logger:  logger,
	}
}

func (c *Contract) params(extra map[string]any) map[string]any {
	p := map[string]any{"contract": c.address}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

func (c *Contract) GetProject(ctx context.Context, id string) (*ledger.ProjectRecord, error) {
	var rec *ledger.ProjectRecord
	if err := c.client.Call(ctx, "getProject", c.params(map[string]any{"id": id}), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Contract) GetProjects(ctx context.Context) ([]ledger.ProjectRecord, error) {
	var recs []ledger.ProjectRecord
	if err := c.client.Call(ctx, "getProjects", c.params(nil), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Contract) GetFunders(ctx context.Context, id string) ([]ledger.FundRecord, error) {
	var recs []ledger.FundRecord
	if err := c.client.Call(ctx, "getFunders", c.params(map[string]any{"id": id}), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Contract) FundToProject(ctx context.Context, id, message string, timestamp int64, value *big.Int) error {
	params := map[string]any{
		"id":        id,
		"message":   message,
		"timestamp": timestamp,
		"value":     value.String(),
	}
	if c.from != nil {
		params["from"] = c.from.Hex()
	}
	return c.client.Call(ctx, "fundToProject", c.params(params), nil)
}

func (c *Contract) CreateProject(ctx context.Context, rec ledger.CreateRecord) error {
	params := map[string]any{
		"title":               rec.Title,
		"description":         rec.Description,
		"goals":               rec.Goals.String(),
		"deadline":            rec.Deadline,
		"date":                rec.Date,
		"image":               rec.Image,
		"content":             rec.Content,
		"isOverGoalsAllowed":  rec.IsOverGoalsAllowed,
		"isZeroAmountAllowed": rec.IsZeroAmountAllowed,
	}
	if c.from != nil {
		params["from"] = c.from.Hex()
	}
	return c.client.Call(ctx, "createProject", c.params(params), nil)
}

type eventBatch struct {
	Cursor string         `json:"cursor"`
	Events []ledger.Event `json:"events"`
}

// Watch polls the ledger for emitted events and delivers them on the
// returned channel until ctx is done. The cursor starts at the current
// head, so no historical events are replayed. Poll failures are logged
// and retried on the next tick.
func (c *Contract) Watch(ctx context.Context) (<-chan ledger.Event, error) {
	return c.watch(ctx, 5*time.Second)
}

// WatchInterval is Watch with an explicit poll interval.
func (c *Contract) WatchInterval(ctx context.Context, interval time.Duration) (<-chan ledger.Event, error) {
	return c.watch(ctx, interval)
}

func (c *Contract) watch(ctx context.Context, interval time.Duration) (<-chan ledger.Event, error) {
	var head eventBatch
	if err := c.client.Call(ctx, "getEvents", c.params(map[string]any{"cursor": ""}), &head); err != nil {
		return nil, err
	}

	ch := make(chan ledger.Event, 16)
	go func() {
		defer close(ch)
		cursor := head.Cursor

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			var batch eventBatch
			if err := c.client.Call(ctx, "getEvents", c.params(map[string]any{"cursor": cursor}), &batch); err != nil {
				c.logger.Warn("event poll failed", "error", err)
				continue
			}
			cursor = batch.Cursor

			for _, ev := range batch.Events {
				select {
				case <-ctx.Done():
					return
				case ch <- ev:
				}
			}
		}
	}()
	return ch, nil
}
