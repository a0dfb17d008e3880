package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/infra"

	"github.com/google/uuid"
)

var ErrVoucherNotFound = errors.New("voucher not found")

// QuoteBuilder prices a checkout draft against the current catalog and balance.
type QuoteBuilder struct {
	catalog Catalog
	ledger  LoyaltyLedger
	engine  *pricing.Engine
	loc     *time.Location
}

func NewQuoteBuilder(catalog Catalog, ledger LoyaltyLedger, engine *pricing.Engine, loc *time.Location) *QuoteBuilder {
	return &QuoteBuilder{catalog: catalog, ledger: ledger, engine: engine, loc: loc}
}

func (b *QuoteBuilder) Location() *time.Location { return b.loc }

// Build resolves the voucher and available points, then runs the engine. A voucher
// that cannot be found is reported through Quote.VoucherRejection.
func (b *QuoteBuilder) Build(ctx context.Context, d *checkout.Draft, now time.Time) (pricing.Quote, error) {
	in := pricing.Input{
		Reservations: d.Reservations,
		Services:     d.SelectedServices(),
		RedeemPoints: d.PointsRedeemed,
		Now:          now,
		Location:     b.loc,
	}

	var missing bool
	if d.VoucherCode != "" {
		in.Voucher = b.lookupVoucher(ctx, d.VoucherCode)
		missing = in.Voucher == nil
	}

	if d.PointsRedeemed {
		// the 50 points are already held by the draft
		in.AvailablePoints = loyalty.RedemptionCost
	} else if d.UserID != uuid.Nil {
		acct, err := b.ledger.Account(ctx, d.UserID)
		if err != nil {
			return pricing.Quote{}, err
		}
		in.AvailablePoints = acct.AvailablePoints
	}

	q := b.engine.Price(in)
	if missing {
		q.VoucherRejection = ErrVoucherNotFound
	}
	return q, nil
}

// Preview prices d with v applied and no redemption, without touching d.
func (b *QuoteBuilder) Preview(ctx context.Context, d *checkout.Draft, v *voucher.Voucher, now time.Time) pricing.Quote {
	return b.engine.Price(pricing.Input{
		Reservations: d.Reservations,
		Services:     d.SelectedServices(),
		Voucher:      v,
		Now:          now,
		Location:     b.loc,
	})
}

// lookupVoucher treats an unreachable catalog like an unknown code.
func (b *QuoteBuilder) lookupVoucher(ctx context.Context, raw string) *voucher.Voucher {
	code, err := voucher.NewCode(raw)
	if err != nil {
		return nil
	}
	v, err := b.catalog.VoucherByCode(ctx, code)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("voucher lookup failed", "code", string(code), "error", err.Error())
		}
		return nil
	}
	return v
}
