package commands

import (
	"context"
	"log/slog"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, status string) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clock clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clock}
}

// TransitionStatus is a locked read-modify-write of the status column. Completing a
// booking credits its reward points in the same transaction.
func (b *bookingCommandsImpl) TransitionStatus(ctx context.Context, bookingID uuid.UUID, raw string) (*booking.Booking, error) {
	status, err := reservation.ParseStatus(raw)
	if err != nil {
		return nil, classify(err)
	}

	var updated *booking.Booking
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		now := b.clock.Now()
		completed, err := bk.TransitionTo(status, now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, bk); err != nil {
			return err
		}

		if completed && bk.UserID() != nil && bk.RewardPointsEarned() > 0 {
			rec := loyalty.AccrualRecord(bk.ID(), bk.RewardPointsEarned(), now)
			balance, err := shared.ApplyLedger(ctx, tx.Ledger(), *bk.UserID(), bk.RewardPointsEarned(), rec)
			if err != nil {
				return err
			}
			slog.Info("reward points credited",
				"booking_id", bk.ID(),
				"points", bk.RewardPointsEarned(),
				"balance", balance)
		}

		updated = bk
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("booking status changed", "booking_id", bookingID, "status", status.String())
	return updated, nil
}
