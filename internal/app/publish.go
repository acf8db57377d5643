package app

import (
	"context"

	"github.com/fundconn/fundconn/internal/content"
	"github.com/fundconn/fundconn/internal/ledger"
)

// PublishProject uploads a draft's assets and submits the creation
// transaction: cover image first, then each staged editor image so
// local references in the body can be rewritten to their published
// paths, then the body itself. Storage failures degrade rather than
// abort — a failed cover leaves the image field empty, a failed image
// upload leaves its local reference in place, and a failed body upload
// stores the raw body on the ledger directly.
func (c *Client) PublishProject(ctx context.Context, draft Draft) error {
	var image string
	if len(draft.Cover) > 0 {
		stored, err := c.store.Put(ctx, draft.Cover)
		if err != nil {
			c.logger.Warn("cover upload degraded", "error", err)
		} else {
			image = stored.Path
		}
	}

	body := draft.Body
	if len(draft.Images) > 0 {
		var staged []content.StagedImage
		for _, img := range draft.Images {
			stored, err := c.store.Put(ctx, img.Data)
			if err != nil {
				c.logger.Warn("image upload degraded", "local_ref", img.LocalRef, "error", err)
				continue
			}
			staged = append(staged, content.StagedImage{LocalRef: img.LocalRef, Path: stored.Path})
		}
		body = content.RelocateImages(body, staged)
	}

	contentID := body
	if stored, err := c.store.PutText(ctx, body); err != nil {
		c.logger.Warn("content upload degraded, storing raw body", "error", err)
	} else {
		contentID = stored.ID
	}

	return c.facade.Create(ctx, ledger.CreateRequest{
		Title:             draft.Title,
		Description:       draft.Description,
		ContentID:         contentID,
		Goals:             draft.Goals,
		Deadline:          draft.Deadline,
		Image:             image,
		OverGoalsAllowed:  draft.OverGoalsAllowed,
		ZeroAmountAllowed: draft.ZeroAmountAllowed,
	})
}
