// Package message turns one accepted order into the two outgoing texts: a
// customer-facing confirmation and an admin-facing notification. A remote
// generative service may phrase them; a deterministic template always backs
// it up, so generation can never fail the submission flow.
package message

import (
	"context"

	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/order"
)

// Remote is the generative text collaborator. Implementations may fail;
// the Composite contains those failures.
type Remote interface {
	CustomerMessage(ctx context.Context, o order.Order, price string) (string, error)
	AdminMessage(ctx context.Context, o order.Order, price string) (string, error)
}

// Composite selects the remote generator when one is configured and falls
// back to the static templates on any failure or empty response. Its own
// methods never return an error.
type Composite struct {
	remote    Remote
	templates Templates
	logger    *zap.Logger
}

// NewComposite builds the generator. remote may be nil, in which case the
// templates are used directly.
func NewComposite(remote Remote, logger *zap.Logger) *Composite {
	return &Composite{remote: remote, logger: logger}
}

func (c *Composite) CustomerMessage(ctx context.Context, o order.Order, price string) string {
	if c.remote != nil {
		if text, err := c.remote.CustomerMessage(ctx, o, price); err == nil {
			return text
		} else {
			c.logger.Warn("customer message generation failed, using template",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return c.templates.CustomerMessage(o, price)
}

func (c *Composite) AdminMessage(ctx context.Context, o order.Order, price string) string {
	if c.remote != nil {
		if text, err := c.remote.AdminMessage(ctx, o, price); err == nil {
			return text
		} else {
			c.logger.Warn("admin message generation failed, using template",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return c.templates.AdminMessage(o, price)
}
