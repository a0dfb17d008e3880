package commands

import (
	"context"
	"log/slog"
	"time"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutCommands is the checkout state store: Empty -> Staged -> Committed | Abandoned.
// Every mutation reloads the draft, applies one change and writes the whole draft back.
type CheckoutCommands interface {
	Stage(ctx context.Context, s Session, reservations []reservation.ConsolidatedReservation) (*CheckoutResult, error)
	Restore(ctx context.Context, s Session) (*CheckoutResult, error)
	ToggleService(ctx context.Context, s Session, serviceID string, selected bool, quantity int) (*CheckoutResult, error)
	ApplyVoucher(ctx context.Context, s Session, code string) (*CheckoutResult, error)
	RemoveVoucher(ctx context.Context, s Session) (*CheckoutResult, error)
	SetContact(ctx context.Context, s Session, p ContactParams) (*CheckoutResult, error)
	ProposeRedeem(ctx context.Context, s Session) (*loyalty.RedemptionTicket, error)
	ConfirmRedeem(ctx context.Context, s Session, ticketID uuid.UUID) (*RedeemResult, error)
	CancelRedeem(ctx context.Context, s Session, ticketID uuid.UUID) (*CheckoutResult, error)
	UndoRedeem(ctx context.Context, s Session) (*RedeemResult, error)
	ProceedToPayment(ctx context.Context, s Session) (*CheckoutResult, error)
	Leave(ctx context.Context, s Session) (*AbandonResult, error)
	Abandon(ctx context.Context, s Session) (*AbandonResult, error)
	Commit(ctx context.Context, s Session) (*CommitResult, error)
}

type CheckoutOptions struct {
	RedemptionTTL time.Duration
	Location      *time.Location
}

type checkoutCommandsImpl struct {
	uow       shared.UnitOfWork
	store     shared.CheckoutRepository
	catalog   shared.Catalog
	ledger    shared.LoyaltyLedger
	quotes    *shared.QuoteBuilder
	publisher shared.EventPublisher
	metrics   shared.Metrics
	clock     clock.Clock
	opts      CheckoutOptions
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	store shared.CheckoutRepository,
	catalog shared.Catalog,
	ledger shared.LoyaltyLedger,
	quotes *shared.QuoteBuilder,
	publisher shared.EventPublisher,
	metrics shared.Metrics,
	clock clock.Clock,
	opts CheckoutOptions,
) CheckoutCommands {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &checkoutCommandsImpl{
		uow:       uow,
		store:     store,
		catalog:   catalog,
		ledger:    ledger,
		quotes:    quotes,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		opts:      opts,
	}
}

// Stage opens a fresh checkout for the session. An open checkout already sitting in
// the session is abandoned first so any redeemed points go back.
func (c *checkoutCommandsImpl) Stage(ctx context.Context, s Session, reservations []reservation.ConsolidatedReservation) (*CheckoutResult, error) {
	existing, err := c.store.Load(ctx, s.ID)
	switch {
	case err == nil:
		if existing.State == checkout.StateStaged {
			if _, err := c.abandon(ctx, existing); err != nil {
				return nil, err
			}
		}
	case !infra.IsKind(err, infra.KindNotFound):
		return nil, classify(err)
	}

	now := c.clock.Now()
	d, err := checkout.NewDraft(s.ID, s.UserID, reservations, now)
	if err != nil {
		return nil, classify(err)
	}
	if err := d.Restore(c.catalog.Snapshot(ctx).Services, now); err != nil {
		return nil, classify(err)
	}

	if err := c.store.Save(ctx, d); err != nil {
		return nil, classify(err)
	}

	slog.Info("checkout staged",
		"session_id", s.ID,
		"user_id", s.UserID,
		"reservations", len(reservations))
	return c.result(ctx, d, now)
}

// Restore re-applies the saved selections onto the current catalog, e.g. when the
// customer comes back from the payment page.
func (c *checkoutCommandsImpl) Restore(ctx context.Context, s Session) (*CheckoutResult, error) {
	services := c.catalog.Snapshot(ctx).Services
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.Restore(services, now)
	})
}

func (c *checkoutCommandsImpl) ToggleService(ctx context.Context, s Session, serviceID string, selected bool, quantity int) (*CheckoutResult, error) {
	line, ok := c.catalog.Snapshot(ctx).ServiceByID(serviceID)
	if !ok {
		return nil, classify(checkout.ErrUnknownService)
	}
	line, err := withQuantity(line, quantity)
	if err != nil {
		return nil, classify(err)
	}
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.ToggleService(line, selected, now)
	})
}

// ApplyVoucher only stores codes that discount the current selection; a rejected
// voucher leaves the draft as it was.
func (c *checkoutCommandsImpl) ApplyVoucher(ctx context.Context, s Session, raw string) (*CheckoutResult, error) {
	code, err := voucher.NewCode(raw)
	if err != nil {
		return nil, classify(err)
	}

	v, err := c.catalog.VoucherByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, classify(shared.ErrVoucherNotFound)
		}
		return nil, classify(err)
	}

	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()

	if preview := c.quotes.Preview(ctx, d, v, now); preview.VoucherRejection != nil {
		return nil, classify(preview.VoucherRejection)
	}

	if err := d.ApplyVoucher(string(code), now); err != nil {
		return nil, classify(err)
	}
	return c.save(ctx, d, now)
}

func (c *checkoutCommandsImpl) RemoveVoucher(ctx context.Context, s Session) (*CheckoutResult, error) {
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.RemoveVoucher(now)
	})
}

func (c *checkoutCommandsImpl) SetContact(ctx context.Context, s Session, p ContactParams) (*CheckoutResult, error) {
	contact, err := checkout.NewContactInfo(p.Name, p.Phone, p.Email)
	if err != nil {
		return nil, classify(err)
	}
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.SetContact(contact, now)
	})
}

// ProposeRedeem is the first phase of a redemption. Nothing leaves the account yet;
// an account below the redemption cost is refused before the draft is touched.
func (c *checkoutCommandsImpl) ProposeRedeem(ctx context.Context, s Session) (*loyalty.RedemptionTicket, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}

	acct, err := c.ledger.Account(ctx, s.UserID)
	if err != nil {
		return nil, classify(err)
	}

	now := c.clock.Now()
	ticket, err := loyalty.NewRedemptionTicket(acct, now, c.opts.RedemptionTTL)
	if err != nil {
		return nil, classify(err)
	}
	if err := d.ProposeRedeem(ticket, now); err != nil {
		return nil, classify(err)
	}
	if err := c.store.Save(ctx, d); err != nil {
		return nil, classify(err)
	}

	slog.Info("redemption proposed", "session_id", s.ID, "ticket_id", ticket.ID)
	return &ticket, nil
}

// ConfirmRedeem debits the points and applies the discount. If the draft cannot be
// written afterwards the debit is reversed under the same ticket.
func (c *checkoutCommandsImpl) ConfirmRedeem(ctx context.Context, s Session, ticketID uuid.UUID) (*RedeemResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	ticket, err := d.PendingFor(ticketID, now)
	if err != nil {
		return nil, classify(err)
	}

	balance, err := c.ledger.Debit(ctx, s.UserID, ticket.Points, loyalty.RedeemRecord(ticket, now))
	if err != nil {
		return nil, classify(err)
	}

	if err := d.ConfirmRedeem(ticketID, now); err != nil {
		c.reverseDebit(ctx, s, ticketID, now)
		return nil, classify(err)
	}
	if err := c.store.Save(ctx, d); err != nil {
		c.reverseDebit(ctx, s, ticketID, now)
		return nil, classify(err)
	}

	c.metrics.RedemptionConfirmed()
	slog.Info("redemption confirmed", "session_id", s.ID, "ticket_id", ticketID, "balance", balance)

	res, err := c.result(ctx, d, now)
	if err != nil {
		return nil, err
	}
	return &RedeemResult{Balance: balance, Checkout: res}, nil
}

func (c *checkoutCommandsImpl) CancelRedeem(ctx context.Context, s Session, ticketID uuid.UUID) (*CheckoutResult, error) {
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.CancelRedeem(ticketID, now)
	})
}

// UndoRedeem returns the points while the checkout is still open. The draft is only
// written after the credit succeeded.
func (c *checkoutCommandsImpl) UndoRedeem(ctx context.Context, s Session) (*RedeemResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	ticketID, err := d.UndoRedeem(now)
	if err != nil {
		return nil, classify(err)
	}

	balance, err := c.ledger.Credit(ctx, s.UserID, loyalty.RedemptionCost, loyalty.RefundRecord(ticketID, now))
	c.metrics.RefundAttempted(err == nil)
	if err != nil {
		return nil, classify(err)
	}

	res, err := c.save(ctx, d, now)
	if err != nil {
		return nil, err
	}
	return &RedeemResult{Balance: balance, Checkout: res}, nil
}

func (c *checkoutCommandsImpl) ProceedToPayment(ctx context.Context, s Session) (*CheckoutResult, error) {
	return c.mutate(ctx, s, func(d *checkout.Draft, now time.Time) error {
		return d.ProceedToPayment(now)
	})
}

// Leave is the page-exit signal. It abandons the checkout unless the customer is on
// the way to payment; a nil result means nothing happened.
func (c *checkoutCommandsImpl) Leave(ctx context.Context, s Session) (*AbandonResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}
	if !d.Leave() {
		return nil, nil
	}
	return c.abandon(ctx, d)
}

func (c *checkoutCommandsImpl) Abandon(ctx context.Context, s Session) (*AbandonResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}
	return c.abandon(ctx, d)
}

// abandon closes d and returns redeemed points exactly once. A failed refund keeps
// the abandoned draft and queues the ticket for the reconciler.
func (c *checkoutCommandsImpl) abandon(ctx context.Context, d *checkout.Draft) (*AbandonResult, error) {
	now := c.clock.Now()
	owed, err := d.Abandon(now)
	if err != nil {
		return nil, classify(err)
	}
	c.metrics.CheckoutFinished(checkout.StateAbandoned)

	if owed == nil {
		c.discard(ctx, d.SessionID)
		slog.Info("checkout abandoned", "session_id", d.SessionID)
		return &AbandonResult{}, nil
	}

	balance, err := c.ledger.Credit(ctx, d.UserID, loyalty.RedemptionCost, loyalty.RefundRecord(*owed, now))
	c.metrics.RefundAttempted(err == nil)
	if err != nil {
		slog.Error("refund for abandoned checkout failed",
			"session_id", d.SessionID,
			"ticket_id", *owed,
			"error", err.Error())

		pending := shared.PendingRefund{SessionID: d.SessionID, UserID: d.UserID, TicketID: *owed, Since: now}
		if markErr := c.store.MarkRefundPending(ctx, pending); markErr != nil {
			slog.Error("failed to queue refund for reconciliation",
				"session_id", d.SessionID,
				"ticket_id", *owed,
				"error", markErr.Error())
			return nil, classify(markErr)
		}
		if saveErr := c.store.Save(ctx, d); saveErr != nil {
			slog.Warn("failed to save abandoned checkout", "session_id", d.SessionID, "error", saveErr.Error())
		}
		return &AbandonResult{RefundPending: true}, nil
	}

	d.MarkRefunded(now)
	c.discard(ctx, d.SessionID)
	slog.Info("checkout abandoned with refund", "session_id", d.SessionID, "ticket_id", *owed, "balance", balance)
	return &AbandonResult{Refunded: true, Balance: &balance}, nil
}

// Commit prices the draft, re-checks every reservation against persisted bookings
// and writes one pending booking per reservation in a single transaction.
func (c *checkoutCommandsImpl) Commit(ctx context.Context, s Session) (*CommitResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()

	probe := *d
	if err := probe.Commit(now); err != nil {
		return nil, classify(err)
	}

	quote, err := c.quotes.Build(ctx, d, now)
	if err != nil {
		return nil, classify(err)
	}
	if d.VoucherCode != "" && quote.VoucherRejection != nil {
		return nil, classify(quote.VoucherRejection)
	}

	shares := pricing.Allocate(quote, d.Reservations, d.SelectedServices())
	bookings := make([]*booking.Booking, 0, len(shares))
	for _, share := range shares {
		b, err := booking.FromShare(d, share, c.opts.Location, now)
		if err != nil {
			return nil, classify(err)
		}
		bookings = append(bookings, b)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, b := range bookings {
			if err := insertBooking(ctx, tx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isConflict(err) {
			c.metrics.SelectionRejected("conflict")
			return nil, errs.Mark(err, errs.ErrConflict)
		}
		return nil, classify(err)
	}

	if err := d.Commit(now); err != nil {
		return nil, classify(err)
	}
	c.metrics.CheckoutFinished(checkout.StateCommitted)
	c.discard(ctx, s.ID)
	c.publish(ctx, d, bookings, quote, now)

	slog.Info("checkout committed",
		"session_id", s.ID,
		"user_id", s.UserID,
		"bookings", len(bookings),
		"total", quote.Total.Int64())
	return &CommitResult{Bookings: bookings, Quote: quote}, nil
}

func insertBooking(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	occupied, err := tx.Bookings().ActiveOccupancy(ctx, b.RoomID(), b.Interval().Date)
	if err != nil {
		return err
	}
	if conflict := reservation.CheckConflict(b.RoomID(), b.Interval(), occupied); conflict != nil {
		conflict.RoomName = b.RoomName()
		return conflict
	}
	if err := tx.Bookings().Insert(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return conflictFor(b)
		}
		return err
	}
	return nil
}

func (c *checkoutCommandsImpl) publish(ctx context.Context, d *checkout.Draft, bookings []*booking.Booking, q pricing.Quote, now time.Time) {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID()
	}
	evt := shared.BookingCommitted{
		SessionID:    d.SessionID,
		UserID:       d.UserID,
		BookingIDs:   ids,
		Total:        q.Total.Int64(),
		RewardPoints: q.RewardPoints,
		CustomerName: d.Contact.Name,
		Email:        d.Contact.Email,
		CommittedAt:  now,
	}
	if err := c.publisher.PublishBookingCommitted(ctx, evt); err != nil {
		slog.Warn("failed to publish booking event", "session_id", d.SessionID, "error", err.Error())
	}
}

func (c *checkoutCommandsImpl) reverseDebit(ctx context.Context, s Session, ticketID uuid.UUID, now time.Time) {
	if _, err := c.ledger.Credit(ctx, s.UserID, loyalty.RedemptionCost, loyalty.RefundRecord(ticketID, now)); err != nil {
		slog.Error("failed to reverse redemption debit",
			"session_id", s.ID,
			"ticket_id", ticketID,
			"error", err.Error())
		_ = c.store.MarkRefundPending(ctx, shared.PendingRefund{SessionID: s.ID, UserID: s.UserID, TicketID: ticketID, Since: now})
	}
}

func (c *checkoutCommandsImpl) discard(ctx context.Context, sessionID uuid.UUID) {
	if err := c.store.Delete(ctx, sessionID); err != nil {
		slog.Warn("failed to delete checkout draft", "session_id", sessionID, "error", err.Error())
	}
}

func (c *checkoutCommandsImpl) mutate(ctx context.Context, s Session, fn func(d *checkout.Draft, now time.Time) error) (*CheckoutResult, error) {
	d, err := c.loadOwned(ctx, s)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()
	if err := fn(d, now); err != nil {
		return nil, classify(err)
	}
	return c.save(ctx, d, now)
}

func (c *checkoutCommandsImpl) save(ctx context.Context, d *checkout.Draft, now time.Time) (*CheckoutResult, error) {
	if err := c.store.Save(ctx, d); err != nil {
		return nil, classify(err)
	}
	return c.result(ctx, d, now)
}

func (c *checkoutCommandsImpl) result(ctx context.Context, d *checkout.Draft, now time.Time) (*CheckoutResult, error) {
	q, err := c.quotes.Build(ctx, d, now)
	if err != nil {
		return nil, classify(err)
	}
	return &CheckoutResult{Draft: d, Quote: q}, nil
}

func (c *checkoutCommandsImpl) loadOwned(ctx context.Context, s Session) (*checkout.Draft, error) {
	d, err := c.store.Load(ctx, s.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, classify(ErrCheckoutNotFound)
		}
		return nil, classify(err)
	}
	if d.UserID != s.UserID {
		return nil, classify(ErrNotDraftOwner)
	}
	return d, nil
}
