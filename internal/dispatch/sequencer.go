//go:generate mockgen -source ./sequencer.go -destination=./mocks/sequencer.go -package=mock_dispatch

// Package dispatch drives an accepted order through message generation,
// receipt rendering, and notification delivery, exposing per-channel status
// as it goes. It works on a settings snapshot taken at start, so settings
// edits never touch an in-flight run.
package dispatch

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/okuri-dev/okuri/internal/catalog"
	"github.com/okuri-dev/okuri/internal/metrics"
	"github.com/okuri-dev/okuri/internal/order"
	"github.com/okuri-dev/okuri/internal/receipt"
	"github.com/okuri-dev/okuri/internal/settings"
)

// Generator produces the two message variants. Implementations never fail;
// they fall back internally.
type Generator interface {
	CustomerMessage(ctx context.Context, o order.Order, price string) string
	AdminMessage(ctx context.Context, o order.Order, price string) string
}

// Deliverer performs one notification delivery per call.
type Deliverer interface {
	Send(ctx context.Context, serviceID, templateID, recipient string, params map[string]string, publicKey string) error
}

// Rasterizer captures the receipt view as a PNG for embedding in the admin
// notification.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// Result is the final outcome of one dispatch run.
type Result struct {
	Admin        Status
	Customer     Status
	CustomerText string
	AdminText    string
}

type Sequencer struct {
	generator  Generator
	deliverer  Deliverer
	rasterizer Rasterizer
	logger     *zap.Logger
}

// New builds a sequencer. rasterizer may be nil; the admin notification
// then simply carries no embedded receipt image.
func New(generator Generator, deliverer Deliverer, rasterizer Rasterizer, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		generator:  generator,
		deliverer:  deliverer,
		rasterizer: rasterizer,
		logger:     logger,
	}
}

// Run executes the dispatch sequence for one order against one settings
// snapshot. Delivery failures mark the channel, are logged, and are
// otherwise swallowed: the order is already accepted by the time dispatch
// runs. The admin stage is always initiated before the customer send.
func (s *Sequencer) Run(ctx context.Context, o order.Order, snap settings.Settings, tracker *Tracker) Result {
	price := ""
	if tier, err := catalog.Resolve(o.FlowerType); err == nil {
		price = tier.Price
	} else {
		s.logger.Warn("order carries unknown flower tier", zap.String("order_id", o.ID), zap.Error(err))
	}

	// Stage 1: both message variants, concurrently, awaited together.
	var customerText, adminText string
	g, genCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customerText = s.generator.CustomerMessage(genCtx, o, price)
		return nil
	})
	g.Go(func() error {
		adminText = s.generator.AdminMessage(genCtx, o, price)
		return nil
	})
	_ = g.Wait()

	// Stage 2: best-effort receipt snapshot for the admin mail.
	receiptImage := s.captureReceipt(ctx, o)

	// Stages 3 and 4 are independent, but admin runs first so the shop sees
	// the order before the customer's confirmation goes out.
	s.dispatchAdmin(ctx, o, snap, adminText, receiptImage, tracker)
	s.dispatchCustomer(ctx, o, snap, customerText, tracker)

	return Result{
		Admin:        tracker.Status(ChannelAdmin),
		Customer:     tracker.Status(ChannelCustomer),
		CustomerText: customerText,
		AdminText:    adminText,
	}
}

func (s *Sequencer) captureReceipt(ctx context.Context, o order.Order) string {
	if s.rasterizer == nil {
		return ""
	}
	html, err := receipt.RenderHTML(o)
	if err != nil {
		s.logger.Warn("receipt render failed, admin mail goes without embed",
			zap.String("order_id", o.ID), zap.Error(err))
		return ""
	}
	png, err := s.rasterizer.Rasterize(ctx, html)
	if err != nil {
		s.logger.Warn("receipt rasterization failed, admin mail goes without embed",
			zap.String("order_id", o.ID), zap.Error(err))
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func (s *Sequencer) dispatchAdmin(ctx context.Context, o order.Order, snap settings.Settings, text, receiptImage string, tracker *Tracker) {
	if !snap.CredentialsConfigured() {
		s.logger.Info("delivery credentials not configured, skipping admin notifications",
			zap.String("order_id", o.ID))
		return
	}

	tracker.transition(ChannelAdmin, StatusSending)

	params := map[string]string{
		"message":     text,
		"family_name": o.FamilyName,
		"order_id":    o.ID,
	}
	if receiptImage != "" {
		params["receipt_image"] = receiptImage
	}

	// Attempt every recipient in order and collect outcomes; one failure
	// must not abort the rest. An empty recipient list reduces to sent.
	failed := 0
	for _, recipient := range snap.AdminEmails {
		err := s.deliverer.Send(ctx, snap.EmailServiceID, snap.EmailTemplateIDAdmin, recipient, params, snap.EmailPublicKey)
		if err != nil {
			failed++
			metrics.DeliveryErrorsTotal.WithLabelValues(string(ChannelAdmin)).Inc()
			s.logger.Error("admin notification failed",
				zap.String("order_id", o.ID), zap.String("recipient", recipient), zap.Error(err))
			continue
		}
		metrics.DeliveriesTotal.WithLabelValues(string(ChannelAdmin)).Inc()
	}

	if failed > 0 {
		tracker.transition(ChannelAdmin, StatusError)
		return
	}
	tracker.transition(ChannelAdmin, StatusSent)
}

func (s *Sequencer) dispatchCustomer(ctx context.Context, o order.Order, snap settings.Settings, text string, tracker *Tracker) {
	if o.Email == "" || !snap.CredentialsConfigured() {
		return
	}

	tracker.transition(ChannelCustomer, StatusSending)

	params := map[string]string{
		"message":     text,
		"family_name": o.FamilyName,
		"order_id":    o.ID,
	}

	err := s.deliverer.Send(ctx, snap.EmailServiceID, snap.EmailTemplateIDCustom, o.Email, params, snap.EmailPublicKey)
	if err != nil {
		metrics.DeliveryErrorsTotal.WithLabelValues(string(ChannelCustomer)).Inc()
		s.logger.Error("customer confirmation failed",
			zap.String("order_id", o.ID), zap.String("recipient", o.Email), zap.Error(err))
		tracker.transition(ChannelCustomer, StatusError)
		return
	}

	metrics.DeliveriesTotal.WithLabelValues(string(ChannelCustomer)).Inc()
	tracker.transition(ChannelCustomer, StatusSent)
}
