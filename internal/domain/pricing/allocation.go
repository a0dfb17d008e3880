package pricing

import (
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
)

// Share is the slice of a quote that lands on one persisted booking.
type Share struct {
	Reservation     reservation.ConsolidatedReservation
	Services        []reservation.ServiceLine
	Gross           money.Money
	VoucherDiscount money.Money
	PointsDiscount  money.Money
	UsePoints       bool
	Total           money.Money
	RewardPoints    int
}

// Allocate spreads a quote across its reservations. Checkout-level services go to
// the first reservation. Recorded discounts are the quote's nominal values spread
// by gross; totals come from the applied amounts and never go below zero. Totals,
// discounts and reward points add up to the quote exactly.
func Allocate(q Quote, reservations []reservation.ConsolidatedReservation, services []reservation.ServiceLine) []Share {
	if len(reservations) == 0 {
		return nil
	}

	shares := make([]Share, len(reservations))
	gross := make([]money.Money, len(reservations))
	for i, r := range reservations {
		lines := r.Services
		if i == 0 && len(services) > 0 {
			lines = reservation.AggregateLines(r.Services, services)
		}
		shares[i] = Share{
			Reservation: r,
			Services:    lines,
			Gross:       r.BasePriceSum.Add(reservation.SumLines(lines)),
		}
		gross[i] = shares[i].Gross
	}

	voucherParts := split(q.AppliedVoucher(), gross)
	remaining := make([]money.Money, len(gross))
	for i := range gross {
		remaining[i] = gross[i].Sub(voucherParts[i])
	}
	pointsParts := split(q.AppliedPoints(), remaining)

	voucherNominal := spread(q.VoucherDiscount, gross)
	pointsNominal := spread(q.PointsDiscount, gross)

	assigned := 0
	for i := range shares {
		shares[i].VoucherDiscount = voucherNominal[i]
		shares[i].PointsDiscount = pointsNominal[i]
		shares[i].UsePoints = q.PointsRedeemed > 0
		shares[i].Total = remaining[i].Sub(pointsParts[i])
		if i < len(shares)-1 {
			shares[i].RewardPoints = loyalty.Accrual(shares[i].Total)
			assigned += shares[i].RewardPoints
		}
	}
	last := len(shares) - 1
	shares[last].RewardPoints = max(q.RewardPoints-assigned, 0)

	return shares
}

// split divides amount over weights: floor shares first, then the remainder fills
// whatever capacity is left, starting from the last entry.
func split(amount money.Money, weights []money.Money) []money.Money {
	parts := make([]money.Money, len(weights))
	whole := money.Sum(weights...)
	if amount <= 0 || whole <= 0 {
		return parts
	}
	amount = money.Min(amount, whole)

	var given money.Money
	for i, w := range weights {
		parts[i] = money.Min(amount.Share(w, whole), w)
		given += parts[i]
	}

	left := amount - given
	for i := len(weights) - 1; i >= 0 && left > 0; i-- {
		capacity := weights[i] - parts[i]
		take := money.Min(capacity, left)
		parts[i] += take
		left -= take
	}
	return parts
}

// spread divides amount over weights with no capacity limit. The rounding
// remainder goes to the last entry, as does everything when weights sum to zero.
func spread(amount money.Money, weights []money.Money) []money.Money {
	parts := make([]money.Money, len(weights))
	if amount <= 0 || len(weights) == 0 {
		return parts
	}
	whole := money.Sum(weights...)
	var given money.Money
	if whole > 0 {
		for i, w := range weights {
			parts[i] = amount.Share(w, whole)
			given += parts[i]
		}
	}
	parts[len(parts)-1] += amount - given
	return parts
}
