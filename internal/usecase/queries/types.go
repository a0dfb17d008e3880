package queries

import (
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// BookingView is the read-side shape of a persisted booking.
type BookingView struct {
	ID                 uuid.UUID
	UserID             *uuid.UUID
	RoomID             string
	RoomName           string
	Date               string
	Range              string
	BasePrice          int64
	Services           []reservation.ServiceLine
	StartTime          time.Time
	EndTime            time.Time
	CheckInTime        time.Time
	CheckOutTime       time.Time
	VoucherCode        *string
	DiscountValue      int64
	UsePoints          bool
	PointsDiscount     int64
	TotalPrice         int64
	Status             string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	RewardPointsEarned int
	CreatedAt          time.Time
}

type CheckoutView struct {
	Draft *checkout.Draft
	Quote pricing.Quote
}

type LoyaltyView struct {
	AvailablePoints int
	StarTier        string
	CanRedeem       bool
}
