package booking

import (
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

// Snapshot is the flat form used by storage.
type Snapshot struct {
	ID                 uuid.UUID
	UserID             *uuid.UUID
	SessionID          uuid.UUID
	RoomID             room.ID
	RoomName           string
	Interval           reservation.TimeInterval
	BasePrice          money.Money
	Services           []reservation.ServiceLine
	StartTime          time.Time
	EndTime            time.Time
	CheckInTime        time.Time
	CheckOutTime       time.Time
	VoucherCode        *string
	Discount           money.Money
	UsePoints          bool
	PointsDiscount     money.Money
	TotalPrice         money.Money
	Status             reservation.Status
	Customer           checkout.ContactInfo
	RewardPointsEarned int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		UserID:             b.userID,
		SessionID:          b.sessionID,
		RoomID:             b.roomID,
		RoomName:           b.roomName,
		Interval:           b.interval,
		BasePrice:          b.basePrice,
		Services:           b.services,
		StartTime:          b.startTime,
		EndTime:            b.endTime,
		CheckInTime:        b.checkInTime,
		CheckOutTime:       b.checkOutTime,
		VoucherCode:        b.voucherCode,
		Discount:           b.discount,
		UsePoints:          b.usePoints,
		PointsDiscount:     b.pointsValue,
		TotalPrice:         b.totalPrice,
		Status:             b.status,
		Customer:           b.customer,
		RewardPointsEarned: b.rewardPoints,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

// Reconstruct rebuilds a booking read back from storage without re-validating it.
func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:           s.ID,
		userID:       s.UserID,
		sessionID:    s.SessionID,
		roomID:       s.RoomID,
		roomName:     s.RoomName,
		interval:     s.Interval,
		basePrice:    s.BasePrice,
		services:     s.Services,
		startTime:    s.StartTime,
		endTime:      s.EndTime,
		checkInTime:  s.CheckInTime,
		checkOutTime: s.CheckOutTime,
		voucherCode:  s.VoucherCode,
		discount:     s.Discount,
		usePoints:    s.UsePoints,
		pointsValue:  s.PointsDiscount,
		totalPrice:   s.TotalPrice,
		status:       s.Status,
		customer:     s.Customer,
		rewardPoints: s.RewardPointsEarned,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}
