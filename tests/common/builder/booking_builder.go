//go:build unit || e2e

package builder

import (
	"time"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
)

type BookingBuilder struct {
	Checkout *CheckoutBuilder
	Share    pricing.Share
	Location *time.Location
	Status   reservation.Status
}

func NewBookingBuilder() *BookingBuilder {
	r := NewDraftBuilder().Consolidated()
	gross := r.Gross()
	return &BookingBuilder{
		Checkout: NewCheckoutBuilder().WithReservations(r),
		Share: pricing.Share{
			Reservation:  r,
			Gross:        gross,
			Total:        gross,
			RewardPoints: int(gross / 1_000),
		},
		Location: time.UTC,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s reservation.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithTotal(total money.Money) *BookingBuilder {
	b.Share.Total = total
	b.Share.RewardPoints = int(total / 1_000)
	return b
}

func (b *BookingBuilder) Build() *booking.Booking {
	d := b.Checkout.Build()
	bk, err := booking.FromShare(d, b.Share, b.Location, b.Checkout.Now)
	if err != nil {
		panic(err)
	}
	if b.Status == "" || b.Status == reservation.StatusPending {
		return bk
	}
	s := bk.Snapshot()
	s.Status = b.Status
	return booking.Reconstruct(s)
}
