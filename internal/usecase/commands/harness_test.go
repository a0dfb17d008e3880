//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/shared"
	"wellness-booking/tests/common/builder"
	"wellness-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var venue = time.FixedZone("ICT", 7*60*60)

type harness struct {
	uow       *fake.UnitOfWork
	store     *fake.CheckoutStore
	catalog   *fake.Catalog
	publisher *fake.Publisher
	metrics   *fake.Metrics
	clock     *clock.MockClock

	ledger     shared.LoyaltyLedger
	cart       commands.CartCommands
	checkout   commands.CheckoutCommands
	bookings   commands.BookingCommands
	reconciler *commands.RefundReconciler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	sauna, err := room.NewRoom("R1", "Sauna Suite", 1, 4, 200_000)
	require.NoError(t, err)
	steam, err := room.NewRoom(2, "Steam Room", 1, 2, 120_000)
	require.NoError(t, err)

	h := &harness{
		uow:   fake.NewUnitOfWork(),
		store: fake.NewCheckoutStore(),
		catalog: fake.NewCatalog(shared.CatalogSnapshot{
			Rooms: []*room.Room{sauna, steam},
			Services: []reservation.ServiceLine{
				builder.Expert("svc-massage", "Thai Massage", 150_000),
				builder.Extra("svc-towel", "Towel Set", 20_000, 1),
			},
			Vouchers: []*voucher.Voucher{
				builder.NewVoucherBuilder().MustBuild(),
				builder.NewVoucherBuilder().With(func(p *voucher.Params) { p.Code = "BIG50K" }).Fixed(50_000).MinOrder(500_000).MustBuild(),
				builder.NewVoucherBuilder().With(func(p *voucher.Params) { p.Code = "FREESTAY" }).Fixed(200_000).MustBuild(),
			},
		}),
		publisher: &fake.Publisher{},
		metrics:   fake.NewMetrics(),
		clock:     clock.NewMockClock(time.Date(2030, time.March, 14, 7, 0, 0, 0, venue)),
	}

	h.ledger = shared.NewLoyaltyLedger(h.uow)
	quotes := shared.NewQuoteBuilder(h.catalog, h.ledger, pricing.NewEngine(), venue)
	h.checkout = commands.NewCheckoutCommands(h.uow, h.store, h.catalog, h.ledger, quotes, h.publisher, h.metrics, h.clock,
		commands.CheckoutOptions{RedemptionTTL: 2 * time.Minute, Location: venue})
	h.cart = commands.NewCartCommands(h.uow, h.store, h.catalog, h.checkout,
		reservation.NewLeadTimePolicy(30*time.Minute, venue), h.metrics, h.clock)
	h.bookings = commands.NewBookingCommands(h.uow, h.clock)
	h.reconciler = commands.NewRefundReconciler(h.store, h.ledger, h.metrics, h.clock, time.Minute)
	return h
}

func newSession() commands.Session {
	return commands.Session{ID: uuid.New(), UserID: uuid.New()}
}

func item(s commands.Session, roomID room.ID, start, end string) commands.AddItemParams {
	return commands.AddItemParams{Session: s, RoomID: roomID, Date: "2030-03-14", Start: start, End: end}
}

// stage opens a checkout for one sauna hour and fills in the contact details.
func (h *harness) stage(t *testing.T, s commands.Session, start, end string) *commands.CheckoutResult {
	t.Helper()
	ctx := context.Background()
	_, err := h.cart.BookNow(ctx, item(s, "R1", start, end))
	require.NoError(t, err)
	res, err := h.checkout.SetContact(ctx, s, commands.ContactParams{Name: "Nguyen Van An", Phone: "0901234567", Email: "an@example.com"})
	require.NoError(t, err)
	return res
}

// redeem runs both phases of a redemption and returns the ticket id.
func (h *harness) redeem(t *testing.T, s commands.Session) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	ticket, err := h.checkout.ProposeRedeem(ctx, s)
	require.NoError(t, err)
	_, err = h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
	require.NoError(t, err)
	return ticket.ID
}
