package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/fundconn/fundconn/internal/content"
	"github.com/fundconn/fundconn/internal/events"
	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/fundconn/fundconn/internal/loading"
	"github.com/fundconn/fundconn/internal/notify"
	"github.com/fundconn/fundconn/internal/storage"
	"github.com/fundconn/fundconn/internal/wallet"
)

// ContractBinder builds a ledger contract binding for a wallet
// binding. It is invoked on every session rebind so transactions are
// always submitted from the currently bound account.
type ContractBinder func(wallet.Binding) ledger.Contract

// Client wires the wallet session, the ledger facade, the event hub
// and the content store into the application surface the UI consumes.
type Client struct {
	session  *wallet.Session
	facade   *ledger.Facade
	hub      *events.Hub
	store    storage.Store
	notifier notify.Notifier
	loading  *loading.Tracker
	logger   *slog.Logger
}

// NewClient assembles the application client and registers the rebind
// hook that keeps the facade's contract binding in step with the
// session.
func NewClient(session *wallet.Session, facade *ledger.Facade, hub *events.Hub, store storage.Store, binder ContractBinder, notifier notify.Notifier, tracker *loading.Tracker, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	c := &Client{
		session:  session,
		facade:   facade,
		hub:      hub,
		store:    store,
		notifier: notifier,
		loading:  tracker,
		logger:   logger,
	}
	session.OnRebind(func(b wallet.Binding) {
		facade.Bind(binder(b))
	})
	return c
}

// Session exposes the wallet session for lifecycle commands.
func (c *Client) Session() *wallet.Session { return c.session }

// LoadProjects returns the normalized project list.
func (c *Client) LoadProjects(ctx context.Context) ([]ledger.Project, error) {
	return c.facade.FetchProjects(ctx)
}

// MyProjects returns the projects owned by the connected account, or
// nil when no account is bound.
func (c *Client) MyProjects(ctx context.Context) ([]ledger.Project, error) {
	account := c.session.Account()
	if account == nil {
		return nil, nil
	}
	projects, err := c.facade.FetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	var mine []ledger.Project
	for _, p := range projects {
		if strings.EqualFold(p.Owner, account.Hex()) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// LoadProject hydrates a full project view from a slug or raw id: the
// campaign record, its funders, and the body content fetched from
// storage with the sentinel stripped and script tags neutralized.
// Storage failures degrade to the on-ledger content field so a dead
// storage node never hides the project itself.
func (c *Client) LoadProject(ctx context.Context, slugOrID string) (*ProjectDetail, error) {
	project, err := c.facade.FetchProject(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	funds, err := c.facade.FetchFunders(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project: *project,
		Funds:   funds,
		Content: c.fetchContent(ctx, project.ContentID),
	}, nil
}

// fetchContent resolves a project's body. The content field normally
// holds a storage id whose payload carries the text sentinel; when it
// was published without storage it holds the raw body instead, and a
// fetch failure falls back to it.
func (c *Client) fetchContent(ctx context.Context, contentID string) string {
	if contentID == "" {
		return ""
	}
	data, err := c.store.Get(ctx, contentID)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			c.logger.Warn("content fetch degraded", "content_id", contentID, "error", err)
		} else {
			c.logger.Warn("content fetch failed", "content_id", contentID, "error", err)
		}
		return content.Sanitize(contentID)
	}
	body, ok := storage.DecodeText(data)
	if !ok {
		body = string(data)
	}
	return content.Sanitize(body)
}

// Donate submits a donation to a project identified by slug or id.
func (c *Client) Donate(ctx context.Context, slugOrID, amount, message string) error {
	return c.facade.Donate(ctx, slugOrID, amount, message)
}
