package commands

import (
	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

// Session identifies one checkout conversation and the customer driving it.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

type ServiceChoice struct {
	ID       string
	Quantity int
}

type AddItemParams struct {
	Session  Session
	RoomID   room.ID
	Date     string
	Start    string
	End      string
	Services []ServiceChoice
}

type ContactParams struct {
	Name  string
	Phone string
	Email string
}

type CheckoutResult struct {
	Draft *checkout.Draft
	Quote pricing.Quote
}

type RedeemResult struct {
	Balance  int
	Checkout *CheckoutResult
}

type AbandonResult struct {
	Refunded      bool
	RefundPending bool
	Balance       *int
}

type CommitResult struct {
	Bookings []*booking.Booking
	Quote    pricing.Quote
}
