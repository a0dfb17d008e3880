package commands

import (
	"errors"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/shared"
)

var (
	ErrRoomNotFound     = errs.New("room not found")
	ErrCheckoutNotFound = errs.New("checkout not found")
	ErrCartItemNotFound = errs.New("cart item not found")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrNotDraftOwner    = errs.New("checkout belongs to another customer")
)

var validationErrors = []error{
	reservation.ErrPastDate,
	reservation.ErrPastTime,
	reservation.ErrLeadTimeNotMet,
	reservation.ErrInvalidDate,
	reservation.ErrInvalidInterval,
	reservation.ErrInvalidClock,
	reservation.ErrInvalidQuantity,
	reservation.ErrInvalidStatus,
	room.ErrEmptyRoomID,
	room.ErrUnsupportedRoomID,
	voucher.ErrInvalidVoucherCode,
	voucher.ErrVoucherExpired,
	voucher.ErrVoucherNotYetValid,
	checkout.ErrEmptyContactName,
	checkout.ErrInvalidEmail,
	checkout.ErrInvalidPhone,
	checkout.ErrEmptyDraft,
	checkout.ErrNotRedeemed,
	checkout.ErrNoPendingRedemption,
	loyalty.ErrTicketExpired,
	loyalty.ErrTicketMismatch,
	booking.ErrMissingContact,
}

var conflictErrors = []error{
	reservation.ErrSlotConflict,
	checkout.ErrRedemptionPending,
	checkout.ErrAlreadyRedeemed,
	checkout.ErrDraftClosed,
	booking.ErrInvalidTransition,
	loyalty.ErrTicketSettled,
}

var insufficientErrors = []error{
	loyalty.ErrInsufficientPoints,
	voucher.ErrVoucherMinOrderNotMet,
}

var notFoundErrors = []error{
	ErrRoomNotFound,
	ErrCheckoutNotFound,
	ErrCartItemNotFound,
	ErrBookingNotFound,
	shared.ErrVoucherNotFound,
	checkout.ErrUnknownService,
}

// classify attaches the category marker the HTTP layer maps to a status code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errs.IsAny(err, conflictErrors...):
		return errs.Mark(err, errs.ErrConflict)
	case errs.IsAny(err, insufficientErrors...):
		return errs.Mark(err, errs.ErrInsufficientResource)
	case errs.IsAny(err, notFoundErrors...) || infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case errs.Is(err, ErrNotDraftOwner):
		return errs.Mark(err, errs.ErrForbidden)
	case errs.IsAny(err, validationErrors...):
		return errs.Mark(err, errs.ErrValidation)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrConflict)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func conflictFor(b *booking.Booking) error {
	return &reservation.ConflictError{RoomID: b.RoomID(), RoomName: b.RoomName(), Window: b.Interval()}
}

func isConflict(err error) bool {
	var c *reservation.ConflictError
	return errors.As(err, &c) || infra.IsKind(err, infra.KindConflict)
}
