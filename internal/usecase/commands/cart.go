package commands

import (
	"context"
	"log/slog"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock wellness-booking/internal/usecase/commands BookingCommands,CartCommands,CheckoutCommands

type CartCommands interface {
	AddItem(ctx context.Context, p AddItemParams) (*reservation.DraftSelection, error)
	RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) error
	List(ctx context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error)
	BookNow(ctx context.Context, p AddItemParams) (*CheckoutResult, error)
	Checkout(ctx context.Context, s Session) (*CheckoutResult, error)
}

type cartCommandsImpl struct {
	uow      shared.UnitOfWork
	store    shared.CheckoutRepository
	catalog  shared.Catalog
	checkout CheckoutCommands
	policy   reservation.LeadTimePolicy
	metrics  shared.Metrics
	clock    clock.Clock
}

func NewCartCommands(
	uow shared.UnitOfWork,
	store shared.CheckoutRepository,
	catalog shared.Catalog,
	checkoutCommands CheckoutCommands,
	policy reservation.LeadTimePolicy,
	metrics shared.Metrics,
	clock clock.Clock,
) CartCommands {
	return &cartCommandsImpl{
		uow:      uow,
		store:    store,
		catalog:  catalog,
		checkout: checkoutCommands,
		policy:   policy,
		metrics:  metrics,
		clock:    clock,
	}
}

// AddItem stages a selection after the lead-time gate and a conflict check against
// persisted bookings plus everything already in the cart.
func (c *cartCommandsImpl) AddItem(ctx context.Context, p AddItemParams) (*reservation.DraftSelection, error) {
	cart, err := c.loadCart(ctx, p.Session.ID)
	if err != nil {
		return nil, err
	}

	draft, err := c.prepare(ctx, p, reservation.DraftOccupancies(cart))
	if err != nil {
		return nil, err
	}

	cart = append(cart, *draft)
	if err := c.store.SaveCart(ctx, p.Session.ID, cart); err != nil {
		return nil, classify(err)
	}

	slog.Info("cart item staged",
		"session_id", p.Session.ID,
		"room_id", draft.RoomID.String(),
		"window", draft.Interval.String(),
		"date", draft.Interval.Date.String())
	return draft, nil
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) error {
	cart, err := c.loadCart(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := cart[:0]
	found := false
	for _, d := range cart {
		if d.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return classify(ErrCartItemNotFound)
	}

	if err := c.store.SaveCart(ctx, sessionID, kept); err != nil {
		return classify(err)
	}
	return nil
}

func (c *cartCommandsImpl) List(ctx context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error) {
	return c.loadCart(ctx, sessionID)
}

// BookNow skips the cart: the selection is checked against persisted bookings only
// and goes straight into a new checkout.
func (c *cartCommandsImpl) BookNow(ctx context.Context, p AddItemParams) (*CheckoutResult, error) {
	draft, err := c.prepare(ctx, p, nil)
	if err != nil {
		return nil, err
	}
	return c.checkout.Stage(ctx, p.Session, reservation.Merge([]reservation.DraftSelection{*draft}))
}

// Checkout consolidates the cart and opens a checkout with the result.
func (c *cartCommandsImpl) Checkout(ctx context.Context, s Session) (*CheckoutResult, error) {
	cart, err := c.loadCart(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, classify(checkout.ErrEmptyDraft)
	}

	now := c.clock.Now()
	for _, d := range cart {
		if err := c.policy.Validate(d.Interval, now); err != nil {
			c.metrics.SelectionRejected("lead_time")
			return nil, classify(err)
		}
	}

	result, err := c.checkout.Stage(ctx, s, reservation.Merge(cart))
	if err != nil {
		return nil, err
	}

	if err := c.store.ClearCart(ctx, s.ID); err != nil {
		slog.Warn("failed to clear cart after checkout", "session_id", s.ID, "error", err.Error())
	}
	return result, nil
}

func (c *cartCommandsImpl) prepare(ctx context.Context, p AddItemParams, staged []reservation.Occupancy) (*reservation.DraftSelection, error) {
	rm, err := c.catalog.RoomByID(ctx, p.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, classify(ErrRoomNotFound)
		}
		return nil, classify(err)
	}

	interval, err := reservation.ParseTimeInterval(p.Date, p.Start, p.End)
	if err != nil {
		return nil, classify(err)
	}

	now := c.clock.Now()
	if err := c.policy.Validate(interval, now); err != nil {
		c.metrics.SelectionRejected("lead_time")
		return nil, classify(err)
	}

	if err := c.checkConflict(ctx, rm, interval, staged); err != nil {
		return nil, err
	}

	lines, err := c.resolveServices(ctx, p.Services)
	if err != nil {
		return nil, classify(err)
	}

	draft, err := reservation.NewDraftSelection(rm, interval, lines, now)
	if err != nil {
		return nil, classify(err)
	}
	return draft, nil
}

func (c *cartCommandsImpl) checkConflict(ctx context.Context, rm *room.Room, interval reservation.TimeInterval, staged []reservation.Occupancy) error {
	persisted, err := c.uow.CommandReads().ActiveOccupancy(ctx, rm.ID(), interval.Date)
	if err != nil {
		return classify(err)
	}

	pool := append(persisted, staged...)
	if conflict := reservation.CheckConflict(rm.ID(), interval, pool); conflict != nil {
		conflict.RoomName = rm.Name()
		c.metrics.SelectionRejected("conflict")
		return errs.Mark(conflict, errs.ErrConflict)
	}
	return nil
}

// resolveServices prices choices against the catalog. Choices the catalog does not
// know are dropped, so an unavailable feed leaves them unpriced.
func (c *cartCommandsImpl) resolveServices(ctx context.Context, choices []ServiceChoice) ([]reservation.ServiceLine, error) {
	if len(choices) == 0 {
		return nil, nil
	}

	snapshot := c.catalog.Snapshot(ctx)
	lines := make([]reservation.ServiceLine, 0, len(choices))
	for _, ch := range choices {
		line, ok := snapshot.ServiceByID(ch.ID)
		if !ok {
			slog.Warn("dropping unknown service", "service_id", ch.ID)
			continue
		}
		resolved, err := withQuantity(line, ch.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, resolved)
	}
	return lines, nil
}

func withQuantity(line reservation.ServiceLine, quantity int) (reservation.ServiceLine, error) {
	if line.Category != reservation.CategoryExtra {
		return line, nil
	}
	if quantity == 0 {
		quantity = reservation.MinExtraQuantity
	}
	return reservation.NewExtraLine(line.ID, line.Name, line.UnitPrice.Int64(), quantity)
}

func (c *cartCommandsImpl) loadCart(ctx context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error) {
	cart, err := c.store.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, classify(err)
	}
	return cart, nil
}
