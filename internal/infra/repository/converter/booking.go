package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list matching BookingRow.ScanTargets.
var BookingColumns = []string{
	"id", "user_id", "session_id", "room_id", "room_name",
	"booking_date", "start_minute", "end_minute", "base_price", "services",
	"start_time", "end_time", "check_in_time", "check_out_time",
	"voucher_code", "discount_value", "use_points", "points_discount", "total_price",
	"status", "customer_name", "customer_phone", "customer_email",
	"reward_points_earned", "created_at", "updated_at",
}

type BookingRow struct {
	ID                 uuid.UUID
	UserID             pgtype.UUID
	SessionID          uuid.UUID
	RoomID             string
	RoomName           string
	BookingDate        time.Time
	StartMinute        int32
	EndMinute          int32
	BasePrice          int64
	Services           []byte
	StartTime          time.Time
	EndTime            time.Time
	CheckInTime        time.Time
	CheckOutTime       time.Time
	VoucherCode        pgtype.Text
	DiscountValue      int64
	UsePoints          bool
	PointsDiscount     int64
	TotalPrice         int64
	Status             string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	RewardPointsEarned int32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r *BookingRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.UserID, &r.SessionID, &r.RoomID, &r.RoomName,
		&r.BookingDate, &r.StartMinute, &r.EndMinute, &r.BasePrice, &r.Services,
		&r.StartTime, &r.EndTime, &r.CheckInTime, &r.CheckOutTime,
		&r.VoucherCode, &r.DiscountValue, &r.UsePoints, &r.PointsDiscount, &r.TotalPrice,
		&r.Status, &r.CustomerName, &r.CustomerPhone, &r.CustomerEmail,
		&r.RewardPointsEarned, &r.CreatedAt, &r.UpdatedAt,
	}
}

// Values follows BookingColumns order.
func (r BookingRow) Values() []any {
	return []any{
		r.ID, r.UserID, r.SessionID, r.RoomID, r.RoomName,
		r.BookingDate, r.StartMinute, r.EndMinute, r.BasePrice, r.Services,
		r.StartTime, r.EndTime, r.CheckInTime, r.CheckOutTime,
		r.VoucherCode, r.DiscountValue, r.UsePoints, r.PointsDiscount, r.TotalPrice,
		r.Status, r.CustomerName, r.CustomerPhone, r.CustomerEmail,
		r.RewardPointsEarned, r.CreatedAt, r.UpdatedAt,
	}
}

func BookingToRow(b *booking.Booking) (BookingRow, error) {
	s := b.Snapshot()

	services := s.Services
	if services == nil {
		services = []reservation.ServiceLine{}
	}
	raw, err := json.Marshal(services)
	if err != nil {
		return BookingRow{}, fmt.Errorf("encode booking services: %w", err)
	}

	return BookingRow{
		ID:                 s.ID,
		UserID:             pgconv.UUIDPtrToPgtype(s.UserID),
		SessionID:          s.SessionID,
		RoomID:             s.RoomID.String(),
		RoomName:           s.RoomName,
		BookingDate:        DateToTime(s.Interval.Date),
		StartMinute:        int32(s.Interval.StartMinute), // #nosec G115 -- bounded to a day
		EndMinute:          int32(s.Interval.EndMinute),   // #nosec G115 -- bounded to a day
		BasePrice:          s.BasePrice.Int64(),
		Services:           raw,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		CheckInTime:        s.CheckInTime,
		CheckOutTime:       s.CheckOutTime,
		VoucherCode:        pgconv.StringPtrToPgtype(s.VoucherCode),
		DiscountValue:      s.Discount.Int64(),
		UsePoints:          s.UsePoints,
		PointsDiscount:     s.PointsDiscount.Int64(),
		TotalPrice:         s.TotalPrice.Int64(),
		Status:             s.Status.String(),
		CustomerName:       s.Customer.Name,
		CustomerPhone:      s.Customer.Phone,
		CustomerEmail:      s.Customer.Email,
		RewardPointsEarned: int32(s.RewardPointsEarned), // #nosec G115 -- floor(total/1000)
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}

func RowToBooking(r BookingRow) (*booking.Booking, error) {
	services, err := DecodeServices(r.Services)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}

	return booking.Reconstruct(booking.Snapshot{
		ID:                 r.ID,
		UserID:             pgconv.UUIDPtrFromPgtype(r.UserID),
		SessionID:          r.SessionID,
		RoomID:             room.ID(r.RoomID),
		RoomName:           r.RoomName,
		Interval:           r.Interval(),
		BasePrice:          money.Money(r.BasePrice),
		Services:           services,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		CheckInTime:        r.CheckInTime,
		CheckOutTime:       r.CheckOutTime,
		VoucherCode:        pgconv.StringPtrFromPgtype(r.VoucherCode),
		Discount:           money.Money(r.DiscountValue),
		UsePoints:          r.UsePoints,
		PointsDiscount:     money.Money(r.PointsDiscount),
		TotalPrice:         money.Money(r.TotalPrice),
		Status:             status,
		Customer:           checkout.ContactInfo{Name: r.CustomerName, Phone: r.CustomerPhone, Email: r.CustomerEmail},
		RewardPointsEarned: int(r.RewardPointsEarned),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}), nil
}

func (r BookingRow) Interval() reservation.TimeInterval {
	return reservation.TimeInterval{
		Date:        reservation.DateOf(r.BookingDate),
		StartMinute: int(r.StartMinute),
		EndMinute:   int(r.EndMinute),
	}
}

func DecodeServices(raw []byte) ([]reservation.ServiceLine, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var lines []reservation.ServiceLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode booking services: %w", err)
	}
	return lines, nil
}

// DateToTime pins a civil date to UTC midnight for the date column.
func DateToTime(d reservation.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
