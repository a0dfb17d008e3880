package pricing

import (
	"time"

	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/voucher"
)

type Input struct {
	Reservations []reservation.ConsolidatedReservation
	// Services are checkout-level selections on top of the per-reservation lines.
	Services        []reservation.ServiceLine
	Voucher         *voucher.Voucher
	RedeemPoints    bool
	AvailablePoints int
	Now             time.Time
	Location        *time.Location
}

// Quote is the result of one pricing pass. VoucherDiscount and PointsDiscount are
// the nominal values the voucher and the redemption are worth; they may exceed
// what is left to pay, in which case Total stops at zero.
type Quote struct {
	Subtotal         money.Money
	VoucherDiscount  money.Money
	PointsDiscount   money.Money
	Total            money.Money
	RewardPoints     int
	PointsRedeemed   int
	VoucherApplied   bool
	VoucherRejection error
}

func (q Quote) AfterVoucher() money.Money {
	return q.Subtotal.Sub(q.VoucherDiscount)
}

// AppliedVoucher is the part of the voucher discount that came off the subtotal.
func (q Quote) AppliedVoucher() money.Money {
	return money.Min(q.VoucherDiscount, q.Subtotal)
}

// AppliedPoints is the part of the points discount that came off after the voucher.
func (q Quote) AppliedPoints() money.Money {
	return money.Min(q.PointsDiscount, q.AfterVoucher())
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Price runs subtotal, voucher, points and accrual in that order. It reads nothing
// besides its input.
func (e *Engine) Price(in Input) Quote {
	var q Quote

	for _, r := range in.Reservations {
		q.Subtotal = q.Subtotal.Add(r.Gross())
	}
	q.Subtotal = q.Subtotal.Add(reservation.SumLines(in.Services))

	if in.Voucher != nil {
		discount, err := in.Voucher.DiscountFor(q.Subtotal, in.Now, in.Location)
		if err != nil {
			q.VoucherRejection = err
		} else {
			q.VoucherApplied = true
			q.VoucherDiscount = discount
		}
	}
	afterVoucher := q.Subtotal.Sub(q.VoucherDiscount)

	if in.RedeemPoints && in.AvailablePoints >= loyalty.RedemptionCost {
		q.PointsRedeemed = loyalty.RedemptionCost
		q.PointsDiscount = loyalty.RedemptionValue
	}
	q.Total = afterVoucher.Sub(q.PointsDiscount)
	q.RewardPoints = loyalty.Accrual(q.Total)

	return q
}
