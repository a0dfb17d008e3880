package booking

import (
	"errors"
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

// TimeLayout renders booking times as HH:MM DD/MM/YYYY.
const TimeLayout = "15:04 02/01/2006"

var (
	ErrInvalidTransition = errors.New("booking status transition is not allowed")
	ErrMissingContact    = errors.New("booking requires customer contact details")
)

// Booking is one persisted reservation. Once written, only its status moves; the
// financial snapshot stays as it was at submission.
type Booking struct {
	id           uuid.UUID
	userID       *uuid.UUID
	sessionID    uuid.UUID
	roomID       room.ID
	roomName     string
	interval     reservation.TimeInterval
	basePrice    money.Money
	services     []reservation.ServiceLine
	startTime    time.Time
	endTime      time.Time
	checkInTime  time.Time
	checkOutTime time.Time
	voucherCode  *string
	discount     money.Money
	usePoints    bool
	pointsValue  money.Money
	totalPrice   money.Money
	status       reservation.Status
	customer     checkout.ContactInfo
	rewardPoints int
	createdAt    time.Time
	updatedAt    time.Time
}

// FromShare builds a pending booking for one allocated slice of a committed checkout.
func FromShare(d *checkout.Draft, share pricing.Share, loc *time.Location, now time.Time) (*Booking, error) {
	if err := d.Contact.Validate(); err != nil {
		return nil, errors.Join(ErrMissingContact, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	r := share.Reservation
	start := r.Interval.StartAt(loc)
	end := r.Interval.EndAt(loc)

	b := &Booking{
		id:           uuid.New(),
		sessionID:    d.SessionID,
		roomID:       r.RoomID,
		roomName:     r.RoomName,
		interval:     r.Interval,
		basePrice:    r.BasePriceSum,
		services:     share.Services,
		startTime:    start,
		endTime:      end,
		checkInTime:  start,
		checkOutTime: end,
		discount:     share.VoucherDiscount,
		usePoints:    share.UsePoints,
		pointsValue:  share.PointsDiscount,
		totalPrice:   share.Total,
		status:       reservation.StatusPending,
		customer:     d.Contact,
		rewardPoints: share.RewardPoints,
		createdAt:    now,
		updatedAt:    now,
	}
	if d.UserID != uuid.Nil {
		uid := d.UserID
		b.userID = &uid
	}
	if d.VoucherCode != "" && share.VoucherDiscount > 0 {
		code := d.VoucherCode
		b.voucherCode = &code
	}
	return b, nil
}

var transitions = map[reservation.Status][]reservation.Status{
	reservation.StatusPending:   {reservation.StatusConfirmed, reservation.StatusCancelled, reservation.StatusNoShow},
	reservation.StatusConfirmed: {reservation.StatusCompleted, reservation.StatusCancelled, reservation.StatusNoShow},
}

func CanTransition(from, to reservation.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the status and reports whether the booking just completed.
func (b *Booking) TransitionTo(to reservation.Status, now time.Time) (bool, error) {
	if !to.IsValid() {
		return false, reservation.ErrInvalidStatus
	}
	if !CanTransition(b.status, to) {
		return false, ErrInvalidTransition
	}
	b.status = to
	b.updatedAt = now
	return to == reservation.StatusCompleted, nil
}

func (b *Booking) Occupancy() reservation.Occupancy {
	return reservation.Occupancy{RefID: b.id, RoomID: b.roomID, Interval: b.interval, Status: b.status}
}

func FormatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimeLayout)
}

func (b *Booking) ID() uuid.UUID                       { return b.id }
func (b *Booking) UserID() *uuid.UUID                  { return b.userID }
func (b *Booking) SessionID() uuid.UUID                { return b.sessionID }
func (b *Booking) RoomID() room.ID                     { return b.roomID }
func (b *Booking) RoomName() string                    { return b.roomName }
func (b *Booking) Interval() reservation.TimeInterval  { return b.interval }
func (b *Booking) BasePrice() money.Money              { return b.basePrice }
func (b *Booking) Services() []reservation.ServiceLine { return b.services }
func (b *Booking) StartTime() time.Time                { return b.startTime }
func (b *Booking) EndTime() time.Time                  { return b.endTime }
func (b *Booking) CheckInTime() time.Time              { return b.checkInTime }
func (b *Booking) CheckOutTime() time.Time             { return b.checkOutTime }
func (b *Booking) VoucherCode() *string                { return b.voucherCode }
func (b *Booking) Discount() money.Money               { return b.discount }
func (b *Booking) UsePoints() bool                     { return b.usePoints }
func (b *Booking) PointsDiscount() money.Money         { return b.pointsValue }
func (b *Booking) TotalPrice() money.Money             { return b.totalPrice }
func (b *Booking) Status() reservation.Status          { return b.status }
func (b *Booking) Customer() checkout.ContactInfo      { return b.customer }
func (b *Booking) RewardPointsEarned() int             { return b.rewardPoints }
func (b *Booking) CreatedAt() time.Time                { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                { return b.updatedAt }
