package intake

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/catalog"
	"github.com/okuri-dev/okuri/internal/lookup"
	"github.com/okuri-dev/okuri/internal/order"
)

// Resolver turns a complete postal code into an address line.
type Resolver interface {
	Resolve(ctx context.Context, zipCode string) (string, error)
}

// Form holds one order draft while the customer fills it in. The address
// lookup runs asynchronously; a result is applied only if the zip code that
// triggered it is still current and the address has not been hand-edited in
// the meantime, so late responses never clobber newer input.
type Form struct {
	mu           sync.Mutex
	draft        order.Order
	noWake       bool
	searching    bool
	addressEdits int
	resolver     Resolver
	logger       *zap.Logger
}

func NewForm(resolver Resolver, logger *zap.Logger) *Form {
	return &Form{
		draft:    order.Order{FlowerType: catalog.Default().Name},
		resolver: resolver,
		logger:   logger,
	}
}

// Draft returns a copy of the current field values.
func (f *Form) Draft() order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Searching reports whether an address lookup is in flight.
func (f *Form) Searching() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searching
}

func (f *Form) SelectFlower(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := catalog.Resolve(name); err != nil {
		f.logger.Warn("ignoring unknown flower selection", zap.String("name", name))
		return
	}
	f.draft.FlowerType = name
}

func (f *Form) SetFamilyName(v string)      { f.set(func(o *order.Order) { o.FamilyName = v }) }
func (f *Form) SetFuneralLocation(v string) { f.set(func(o *order.Order) { o.FuneralLocation = v }) }
func (f *Form) SetFuneralDateTime(v string) { f.set(func(o *order.Order) { o.FuneralDateTime = v }) }
func (f *Form) SetContactName(v string)     { f.set(func(o *order.Order) { o.ContactName = v }) }
func (f *Form) SetAddressDetail(v string)   { f.set(func(o *order.Order) { o.AddressDetail = v }) }
func (f *Form) SetPhoneNumber(v string)     { f.set(func(o *order.Order) { o.PhoneNumber = v }) }
func (f *Form) SetTransferName(v string)    { f.set(func(o *order.Order) { o.TransferName = v }) }
func (f *Form) SetPlacardName(v string)     { f.set(func(o *order.Order) { o.PlacardName = v }) }
func (f *Form) SetEmail(v string)           { f.set(func(o *order.Order) { o.Email = v }) }
func (f *Form) SetRemarks(v string)         { f.set(func(o *order.Order) { o.Remarks = v }) }
func (f *Form) SetHasSpecialChars(v bool)   { f.set(func(o *order.Order) { o.HasSpecialChars = v }) }

func (f *Form) set(mutate func(*order.Order)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mutate(&f.draft)
}

// SetWakeDateTime records the wake service schedule. Ignored while the
// "no wake" toggle is on.
func (f *Form) SetWakeDateTime(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noWake {
		return
	}
	f.draft.WakeDateTime = v
}

// SetNoWake toggles the "no wake service" checkbox. On, the wake field is
// replaced by the sentinel regardless of prior content; off, it is cleared
// for fresh input.
func (f *Form) SetNoWake(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noWake = on
	if on {
		f.draft.WakeDateTime = order.WakeNoneSentinel
	} else {
		f.draft.WakeDateTime = ""
	}
}

// SetAddress is the manual address edit path. Last write wins over any
// lookup response still in flight.
func (f *Form) SetAddress(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Address = v
	f.addressEdits++
}

// SetZipCode records the postal code, keeping digits only, and starts an
// asynchronous address lookup once the code is complete.
func (f *Form) SetZipCode(ctx context.Context, v string) {
	clean := digitsOnly(v)

	f.mu.Lock()
	f.draft.ZipCode = clean
	trigger := clean
	edits := f.addressEdits
	start := len(clean) == lookup.ZipCodeLength && f.resolver != nil
	if start {
		f.searching = true
	}
	f.mu.Unlock()

	if !start {
		return
	}

	go f.runLookup(ctx, trigger, edits)
}

func (f *Form) runLookup(ctx context.Context, trigger string, edits int) {
	address, err := f.resolver.Resolve(ctx, trigger)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft.ZipCode == trigger {
		f.searching = false
	}
	if err != nil || address == "" {
		if err != nil {
			f.logger.Debug("address lookup yielded nothing", zap.String("zip", trigger), zap.Error(err))
		}
		return
	}
	// Discard stale results: the zip changed or the user already typed an
	// address by hand.
	if f.draft.ZipCode != trigger || f.addressEdits != edits {
		return
	}
	f.draft.Address = address
}

// Submit validates the draft and freezes it into an immutable Order.
func (f *Form) Submit() (order.Order, error) {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return order.Order{}, err
	}
	return order.New(draft), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
