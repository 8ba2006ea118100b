package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_dispatch "github.com/okuri-dev/okuri/internal/dispatch/mocks"
	"github.com/okuri-dev/okuri/internal/order"
	"github.com/okuri-dev/okuri/internal/settings"
)

const tierPrice = "16,500円"

func testOrder() order.Order {
	return order.Order{
		ID:              "order-1",
		FlowerType:      "白菊・洋花盛り (A)",
		FamilyName:      "山田",
		FuneralLocation: "青山斎場",
		WakeDateTime:    "2025-04-01T18:00",
		FuneralDateTime: "2025-04-02T10:00",
		ContactName:     "田中 一郎",
		PhoneNumber:     "03-1234-5678",
		PlacardName:     "株式会社○○",
		Email:           "tanaka@example.com",
	}
}

func testSettings(emails ...string) settings.Settings {
	s := settings.Default()
	s.EmailServiceID = "service_x"
	s.EmailTemplateIDAdmin = "tpl_admin"
	s.EmailTemplateIDCustom = "tpl_customer"
	s.EmailPublicKey = "pk_123"
	for _, e := range emails {
		s.AddEmail(e)
	}
	return s
}

func expectMessages(gen *mock_dispatch.MockGenerator) {
	gen.EXPECT().CustomerMessage(gomock.Any(), gomock.Any(), tierPrice).Return("customer-text")
	gen.EXPECT().AdminMessage(gomock.Any(), gomock.Any(), tierPrice).Return("admin-text")
}

func TestRunDeliversToEveryAdminThenCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)

	// The customer confirmation never goes out before the admin attempts
	// were initiated.
	first := del.EXPECT().Send(gomock.Any(), "service_x", "tpl_admin", "a@shop.jp", gomock.Any(), "pk_123").Return(nil)
	second := del.EXPECT().Send(gomock.Any(), "service_x", "tpl_admin", "b@shop.jp", gomock.Any(), "pk_123").Return(nil)
	last := del.EXPECT().Send(gomock.Any(), "service_x", "tpl_customer", "tanaka@example.com", gomock.Any(), "pk_123").Return(nil)
	gomock.InOrder(first, second, last)

	tracker := NewTracker(nil)
	res := New(gen, del, nil, zap.NewNop()).Run(context.Background(), testOrder(), testSettings("a@shop.jp", "b@shop.jp"), tracker)

	assert.Equal(t, StatusSent, res.Admin)
	assert.Equal(t, StatusSent, res.Customer)
	assert.Equal(t, "customer-text", res.CustomerText)
	assert.Equal(t, "admin-text", res.AdminText)
}

func TestRunIsolatesPerRecipientFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)

	// Second of three recipients fails; first and third are still attempted.
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_admin", "a@shop.jp", gomock.Any(), gomock.Any()).Return(nil)
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_admin", "b@shop.jp", gomock.Any(), gomock.Any()).Return(errors.New("mailbox full"))
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_admin", "c@shop.jp", gomock.Any(), gomock.Any()).Return(nil)
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_customer", "tanaka@example.com", gomock.Any(), gomock.Any()).Return(nil)

	tracker := NewTracker(nil)
	res := New(gen, del, nil, zap.NewNop()).Run(context.Background(), testOrder(), testSettings("a@shop.jp", "b@shop.jp", "c@shop.jp"), tracker)

	assert.Equal(t, StatusError, res.Admin)
	assert.Equal(t, StatusSent, res.Customer, "customer stage runs even though the admin stage failed")
}

func TestRunEmptyAdminListIsVacuouslySent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)

	// Only the customer delivery happens; zero admin calls.
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_customer", "tanaka@example.com", gomock.Any(), gomock.Any()).Return(nil)

	tracker := NewTracker(nil)
	res := New(gen, del, nil, zap.NewNop()).Run(context.Background(), testOrder(), testSettings(), tracker)

	assert.Equal(t, StatusSent, res.Admin)
	assert.Equal(t, StatusSent, res.Customer)
}

func TestRunWithoutCredentialsSkipsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)
	// No Send expectations: any call would fail the test.

	snap := settings.Default()
	snap.AddEmail("a@shop.jp")

	tracker := NewTracker(nil)
	res := New(gen, del, nil, zap.NewNop()).Run(context.Background(), testOrder(), snap, tracker)

	assert.Equal(t, StatusIdle, res.Admin)
	assert.Equal(t, StatusIdle, res.Customer)
}

func TestRunWithoutCustomerEmailSkipsCustomerChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_admin", "a@shop.jp", gomock.Any(), gomock.Any()).Return(nil)

	o := testOrder()
	o.Email = ""

	tracker := NewTracker(nil)
	res := New(gen, del, nil, zap.NewNop()).Run(context.Background(), o, testSettings("a@shop.jp"), tracker)

	assert.Equal(t, StatusSent, res.Admin)
	assert.Equal(t, StatusIdle, res.Customer)
}

func TestRunEmbedsReceiptWhenRasterizationSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	ras := mock_dispatch.NewMockRasterizer(ctrl)
	expectMessages(gen)

	ras.EXPECT().Rasterize(gomock.Any(), gomock.Any()).Return([]byte{0x89, 0x50}, nil)

	del.EXPECT().
		Send(gomock.Any(), gomock.Any(), "tpl_admin", "a@shop.jp", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, params map[string]string, _ string) error {
			assert.Contains(t, params["receipt_image"], "data:image/png;base64,")
			assert.Equal(t, "admin-text", params["message"])
			return nil
		})
	del.EXPECT().
		Send(gomock.Any(), gomock.Any(), "tpl_customer", gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, params map[string]string, _ string) error {
			_, hasEmbed := params["receipt_image"]
			assert.False(t, hasEmbed, "the customer mail carries no embed")
			return nil
		})

	tracker := NewTracker(nil)
	New(gen, del, ras, zap.NewNop()).Run(context.Background(), testOrder(), testSettings("a@shop.jp"), tracker)
}

func TestRunRasterizationFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	ras := mock_dispatch.NewMockRasterizer(ctrl)
	expectMessages(gen)

	ras.EXPECT().Rasterize(gomock.Any(), gomock.Any()).Return(nil, errors.New("no chrome installed"))

	del.EXPECT().
		Send(gomock.Any(), gomock.Any(), "tpl_admin", "a@shop.jp", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, params map[string]string, _ string) error {
			_, hasEmbed := params["receipt_image"]
			assert.False(t, hasEmbed)
			return nil
		})
	del.EXPECT().Send(gomock.Any(), gomock.Any(), "tpl_customer", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	tracker := NewTracker(nil)
	res := New(gen, del, ras, zap.NewNop()).Run(context.Background(), testOrder(), testSettings("a@shop.jp"), tracker)

	assert.Equal(t, StatusSent, res.Admin)
}

func TestRunReportsProgressiveStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mock_dispatch.NewMockGenerator(ctrl)
	del := mock_dispatch.NewMockDeliverer(ctrl)
	expectMessages(gen)
	del.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	type event struct {
		ch Channel
		st Status
	}
	var seen []event
	tracker := NewTracker(func(ch Channel, st Status) { seen = append(seen, event{ch, st}) })

	New(gen, del, nil, zap.NewNop()).Run(context.Background(), testOrder(), testSettings("a@shop.jp"), tracker)

	assert.Equal(t, []event{
		{ChannelAdmin, StatusSending},
		{ChannelAdmin, StatusSent},
		{ChannelCustomer, StatusSending},
		{ChannelCustomer, StatusSent},
	}, seen)
}
