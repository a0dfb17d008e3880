package queries

import (
	"context"

	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCheckoutNotFound = errs.New("checkout not found")
	ErrCheckoutAccess   = errs.New("checkout belongs to another customer")
)

type CheckoutQueries interface {
	Get(ctx context.Context, sessionID, userID uuid.UUID) (*CheckoutView, error)
	Quote(ctx context.Context, sessionID, userID uuid.UUID) (pricing.Quote, error)
	Loyalty(ctx context.Context, userID uuid.UUID) (*LoyaltyView, error)
}

type checkoutQueriesImpl struct {
	store  shared.CheckoutRepository
	quotes *shared.QuoteBuilder
	ledger shared.LoyaltyLedger
	clock  clock.Clock
}

func NewCheckoutQueries(store shared.CheckoutRepository, quotes *shared.QuoteBuilder, ledger shared.LoyaltyLedger, clock clock.Clock) CheckoutQueries {
	return &checkoutQueriesImpl{store: store, quotes: quotes, ledger: ledger, clock: clock}
}

// Get returns the persisted draft repriced against the current catalog.
func (q *checkoutQueriesImpl) Get(ctx context.Context, sessionID, userID uuid.UUID) (*CheckoutView, error) {
	d, err := q.store.Load(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrCheckoutNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if d.UserID != userID {
		return nil, errs.Mark(ErrCheckoutAccess, errs.ErrForbidden)
	}

	quote, err := q.quotes.Build(ctx, d, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CheckoutView{Draft: d, Quote: quote}, nil
}

func (q *checkoutQueriesImpl) Quote(ctx context.Context, sessionID, userID uuid.UUID) (pricing.Quote, error) {
	view, err := q.Get(ctx, sessionID, userID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return view.Quote, nil
}

func (q *checkoutQueriesImpl) Loyalty(ctx context.Context, userID uuid.UUID) (*LoyaltyView, error) {
	acct, err := q.ledger.Account(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &LoyaltyView{
		AvailablePoints: acct.AvailablePoints,
		StarTier:        string(acct.StarTier),
		CanRedeem:       acct.CanRedeem(),
	}, nil
}
