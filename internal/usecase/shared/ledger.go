package shared

import (
	"context"

	"wellness-booking/internal/domain/loyalty"

	"github.com/google/uuid"
)

// ApplyLedger runs one ledger step on repo: lock the account, skip if rec was
// already written, move the balance by delta and append rec. It returns the
// balance after the step. A redemption whose ticket was already refunded fails
// with loyalty.ErrTicketSettled.
func ApplyLedger(ctx context.Context, repo LedgerRepository, userID uuid.UUID, delta int, rec loyalty.Record) (int, error) {
	acct, err := repo.LockAccount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if key := rec.VoidedBy(); key != "" {
		voided, err := repo.HasRecord(ctx, key)
		if err != nil {
			return 0, err
		}
		if voided {
			return acct.AvailablePoints, loyalty.ErrTicketSettled
		}
	}

	seen, err := repo.HasRecord(ctx, rec.Key)
	if err != nil {
		return 0, err
	}
	if seen {
		return acct.AvailablePoints, nil
	}

	next, err := loyalty.Apply(acct.AvailablePoints, delta)
	if err != nil {
		return acct.AvailablePoints, err
	}
	if err := repo.SetBalance(ctx, userID, next, loyalty.TierFor(next)); err != nil {
		return 0, err
	}
	if err := repo.AppendRecord(ctx, userID, rec); err != nil {
		return 0, err
	}
	return next, nil
}

type loyaltyLedger struct {
	uow UnitOfWork
}

func NewLoyaltyLedger(uow UnitOfWork) LoyaltyLedger {
	return &loyaltyLedger{uow: uow}
}

func (l *loyaltyLedger) Account(ctx context.Context, userID uuid.UUID) (loyalty.Account, error) {
	var acct loyalty.Account
	err := l.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		acct, err = tx.Ledger().LockAccount(ctx, userID)
		return err
	})
	return acct, err
}

func (l *loyaltyLedger) Debit(ctx context.Context, userID uuid.UUID, points int, rec loyalty.Record) (int, error) {
	return l.apply(ctx, userID, -points, rec)
}

func (l *loyaltyLedger) Credit(ctx context.Context, userID uuid.UUID, points int, rec loyalty.Record) (int, error) {
	return l.apply(ctx, userID, points, rec)
}

func (l *loyaltyLedger) apply(ctx context.Context, userID uuid.UUID, delta int, rec loyalty.Record) (int, error) {
	var balance int
	err := l.uow.WithinSerializable(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		balance, err = ApplyLedger(ctx, tx.Ledger(), userID, delta, rec)
		return err
	})
	return balance, err
}
