//go:build unit || e2e

package builder

import (
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	SessionID    uuid.UUID
	UserID       uuid.UUID
	Reservations []reservation.ConsolidatedReservation
	Contact      checkout.ContactInfo
	Now          time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		SessionID:    uuid.New(),
		UserID:       uuid.New(),
		Reservations: []reservation.ConsolidatedReservation{NewDraftBuilder().Consolidated()},
		Contact:      ValidContact(),
		Now:          time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) WithReservations(rs ...reservation.ConsolidatedReservation) *CheckoutBuilder {
	b.Reservations = rs
	return b
}

func (b *CheckoutBuilder) WithoutContact() *CheckoutBuilder {
	b.Contact = checkout.ContactInfo{}
	return b
}

func (b *CheckoutBuilder) Build() *checkout.Draft {
	d, err := checkout.NewDraft(b.SessionID, b.UserID, b.Reservations, b.Now)
	if err != nil {
		panic(err)
	}
	d.Contact = b.Contact
	return d
}

func ValidContact() checkout.ContactInfo {
	return checkout.ContactInfo{Name: "Nguyen Van An", Phone: "0901234567", Email: "an@example.com"}
}
