// Package app is the composition root: it owns navigation between the
// order form, the success screen, and the settings panel, and kicks off the
// dispatch sequence when an order is accepted.
package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/dispatch"
	"github.com/okuri-dev/okuri/internal/gate"
	"github.com/okuri-dev/okuri/internal/intake"
	"github.com/okuri-dev/okuri/internal/metrics"
	"github.com/okuri-dev/okuri/internal/order"
	"github.com/okuri-dev/okuri/internal/receipt"
	"github.com/okuri-dev/okuri/internal/settings"
)

// View identifies the screen the UI should present.
type View int

const (
	ViewOrderForm View = iota
	ViewSuccess
	ViewSettings
)

// Deps are the collaborators the App coordinates. Exporter may be nil when
// no receipt download is wanted.
type Deps struct {
	Store     *settings.Store
	Resolver  intake.Resolver
	Sequencer *dispatch.Sequencer
	Exporter  *receipt.Exporter
	Logger    *zap.Logger
}

type App struct {
	mu           sync.Mutex
	view         View
	form         *intake.Form
	lastOrder    *order.Order
	tracker      *dispatch.Tracker
	dispatchDone chan struct{}
	onStatus     func(dispatch.Channel, dispatch.Status)

	store     *settings.Store
	resolver  intake.Resolver
	sequencer *dispatch.Sequencer
	exporter  *receipt.Exporter
	logger    *zap.Logger
}

func New(deps Deps) *App {
	a := &App{
		view:      ViewOrderForm,
		store:     deps.Store,
		resolver:  deps.Resolver,
		sequencer: deps.Sequencer,
		exporter:  deps.Exporter,
		logger:    deps.Logger,
	}
	a.form = intake.NewForm(a.resolver, a.logger)
	return a
}

// View returns the screen currently presented.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Form returns the active order draft.
func (a *App) Form() *intake.Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// Settings returns the persisted configuration for the settings editor.
func (a *App) Settings() settings.Settings {
	return a.store.Current()
}

// SetStatusListener registers the callback the success screen uses for live
// channel updates. Set it before SubmitOrder.
func (a *App) SetStatusListener(fn func(dispatch.Channel, dispatch.Status)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStatus = fn
}

// OpenSettings navigates to the settings view. With an empty configured
// passcode there is no challenge and the returned gate is nil; otherwise
// the caller presents the returned gate and navigation happens on unlock.
func (a *App) OpenSettings() *gate.Gate {
	if !a.store.Current().HasGate() {
		a.setView(ViewSettings)
		return nil
	}
	return gate.New(a.store.Current().Passcode, func() {
		a.setView(ViewSettings)
	})
}

// SaveSettings validates, persists, and returns to the order form.
func (a *App) SaveSettings(s settings.Settings) error {
	if err := a.store.Save(s); err != nil {
		return err
	}
	a.setView(ViewOrderForm)
	return nil
}

// CancelSettings leaves the settings view without saving.
func (a *App) CancelSettings() {
	a.setView(ViewOrderForm)
}

// SubmitOrder freezes the draft, navigates to the success screen, and
// starts the dispatch sequence against a snapshot of the current settings.
// Validation failures keep the user on the form; dispatch failures never
// surface here, the order is accepted once this returns nil.
func (a *App) SubmitOrder(ctx context.Context) (order.Order, error) {
	a.mu.Lock()
	form := a.form
	a.mu.Unlock()

	o, err := form.Submit()
	if err != nil {
		return order.Order{}, err
	}
	metrics.OrdersSubmittedTotal.Inc()

	snapshot := a.store.Current()
	tracker := dispatch.NewTracker(a.notifyStatus)
	done := make(chan struct{})

	a.mu.Lock()
	a.lastOrder = &o
	a.tracker = tracker
	a.dispatchDone = done
	a.view = ViewSuccess
	a.mu.Unlock()

	a.logger.Info("order accepted",
		zap.String("order_id", o.ID), zap.String("family", o.FamilyName))

	go func() {
		defer close(done)
		a.sequencer.Run(ctx, o, snapshot, tracker)
	}()

	return o, nil
}

// DispatchStatus reports the channel state for the current success screen.
func (a *App) DispatchStatus(ch dispatch.Channel) dispatch.Status {
	a.mu.Lock()
	tracker := a.tracker
	a.mu.Unlock()
	if tracker == nil {
		return dispatch.StatusIdle
	}
	return tracker.Status(ch)
}

// DispatchDone is closed when the current order's dispatch sequence has run
// to completion. Nil before the first submission.
func (a *App) DispatchDone() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dispatchDone
}

// LastOrder returns the most recently accepted order.
func (a *App) LastOrder() (order.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastOrder == nil {
		return order.Order{}, false
	}
	return *a.lastOrder, true
}

// DownloadReceipt exports the last order's receipt PDF and returns its
// path. The error is for display; the dispatch outcome is unaffected.
func (a *App) DownloadReceipt(ctx context.Context) (string, error) {
	o, ok := a.LastOrder()
	if !ok {
		return "", fmt.Errorf("no order to export")
	}
	if a.exporter == nil {
		return "", fmt.Errorf("receipt export is not available")
	}

	path, err := a.exporter.Export(ctx, o)
	if err != nil {
		return "", err
	}
	metrics.ReceiptExportsTotal.Inc()
	return path, nil
}

// Reset returns to a blank order form, discarding the success screen.
func (a *App) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form = intake.NewForm(a.resolver, a.logger)
	a.lastOrder = nil
	a.tracker = nil
	a.dispatchDone = nil
	a.view = ViewOrderForm
}

func (a *App) setView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = v
}

func (a *App) notifyStatus(ch dispatch.Channel, st dispatch.Status) {
	a.mu.Lock()
	fn := a.onStatus
	a.mu.Unlock()
	if fn != nil {
		fn(ch, st)
	}
}
