package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/fundconn/fundconn/internal/notify"
)

// announceFunder shows a donation notice unless the funder is the
// connected account, which already saw its submission outcome.
func (c *Client) announceFunder(ev ledger.Event) {
	if account := c.session.Account(); account != nil && strings.EqualFold(ev.Funder, account.Hex()) {
		return
	}
	c.notifier.Show(notify.Info("Funds status", fmt.Sprintf("%s give some funds", ev.Funder)))
}

// WatchFunds announces donations across all projects. Returns the
// unsubscribe token.
func (c *Client) WatchFunds() func() {
	return c.hub.Subscribe(ledger.EventNewFunder, c.announceFunder)
}

// WatchProject reacts to new donations on a single project: every
// NewFunder event announces the donation and reloads the project into
// refresh. The reload happens even for the connected account's own
// donations. Returns the unsubscribe token.
func (c *Client) WatchProject(ctx context.Context, slugOrID string, refresh func(ProjectDetail)) func() {
	return c.hub.Subscribe(ledger.EventNewFunder, func(ev ledger.Event) {
		c.announceFunder(ev)

		detail, err := c.LoadProject(ctx, slugOrID)
		if err != nil {
			c.logger.Warn("project reload failed", "id", slugOrID, "error", err)
			return
		}
		refresh(*detail)
	})
}

// WatchProjects reloads the project list whenever a new project is
// created. Returns the unsubscribe token.
func (c *Client) WatchProjects(ctx context.Context, refresh func([]ledger.Project)) func() {
	return c.hub.Subscribe(ledger.EventProjectCreated, func(ledger.Event) {
		projects, err := c.LoadProjects(ctx)
		if err != nil {
			c.logger.Warn("project list reload failed", "error", err)
			return
		}
		refresh(projects)
	})
}

// Run pumps ledger events into the hub until ctx is done.
func (c *Client) Run(ctx context.Context, stream ledger.EventStream) error {
	events, err := stream.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching ledger events: %w", err)
	}
	c.hub.Run(ctx, events)
	return nil
}
