package shared

import (
	"context"
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"

	"github.com/google/uuid"
)

// LoyaltyLedger is the point balance plus its audit trail. Each call is one atomic
// read-balance, write-balance, append-row step and returns the resulting balance.
// A record key that was already written makes the call a no-op.
type LoyaltyLedger interface {
	Account(ctx context.Context, userID uuid.UUID) (loyalty.Account, error)
	Debit(ctx context.Context, userID uuid.UUID, points int, rec loyalty.Record) (int, error)
	Credit(ctx context.Context, userID uuid.UUID, points int, rec loyalty.Record) (int, error)
}

// CheckoutRepository is the cross-page channel: the staged cart and the checkout
// draft per session, plus the index of refunds still owed.
type CheckoutRepository interface {
	LoadCart(ctx context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error)
	SaveCart(ctx context.Context, sessionID uuid.UUID, items []reservation.DraftSelection) error
	ClearCart(ctx context.Context, sessionID uuid.UUID) error

	// Load returns an infra NOT_FOUND error when the session has no draft.
	Load(ctx context.Context, sessionID uuid.UUID) (*checkout.Draft, error)
	Save(ctx context.Context, d *checkout.Draft) error
	Delete(ctx context.Context, sessionID uuid.UUID) error

	MarkRefundPending(ctx context.Context, r PendingRefund) error
	PendingRefunds(ctx context.Context) ([]PendingRefund, error)
	ClearRefundPending(ctx context.Context, ticketID uuid.UUID) error
}

type PendingRefund struct {
	SessionID uuid.UUID `json:"sessionId"`
	UserID    uuid.UUID `json:"userId"`
	TicketID  uuid.UUID `json:"ticketId"`
	Since     time.Time `json:"since"`
}

type CatalogSnapshot struct {
	Rooms    []*room.Room
	Services []reservation.ServiceLine
	Vouchers []*voucher.Voucher
}

func (s CatalogSnapshot) ServiceByID(id string) (reservation.ServiceLine, bool) {
	for _, l := range s.Services {
		if l.ID == id {
			return l, true
		}
	}
	return reservation.ServiceLine{}, false
}

// Catalog is the read-only reference data. Snapshot never fails: a feed that cannot
// be read comes back empty.
type Catalog interface {
	Snapshot(ctx context.Context) CatalogSnapshot
	RoomByID(ctx context.Context, id room.ID) (*room.Room, error)
	VoucherByCode(ctx context.Context, code voucher.Code) (*voucher.Voucher, error)
}

const EventBookingCommitted = "booking.committed"

type BookingCommitted struct {
	SessionID    uuid.UUID   `json:"sessionId"`
	UserID       uuid.UUID   `json:"userId"`
	BookingIDs   []uuid.UUID `json:"bookingIds"`
	Total        int64       `json:"total"`
	RewardPoints int         `json:"rewardPoints"`
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	CommittedAt  time.Time   `json:"committedAt"`
}

type EventPublisher interface {
	PublishBookingCommitted(ctx context.Context, evt BookingCommitted) error
}

type Metrics interface {
	SelectionRejected(reason string)
	CheckoutFinished(state checkout.State)
	RedemptionConfirmed()
	RefundAttempted(ok bool)
}
