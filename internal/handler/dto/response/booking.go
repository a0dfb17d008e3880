package response

import (
	"time"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// BookingResponse renders instants as "HH:MM DD/MM/YYYY" in the venue time zone.
type BookingResponse struct {
	ID                 uuid.UUID             `json:"id"`
	RoomID             string                `json:"roomId"`
	RoomName           string                `json:"roomName"`
	Date               string                `json:"date"`
	Range              string                `json:"range"`
	BasePrice          int64                 `json:"basePrice"`
	Lines              []ServiceLineResponse `json:"services"`
	Start              string                `json:"startTime"`
	End                string                `json:"endTime"`
	CheckIn            string                `json:"checkInTime"`
	CheckOut           string                `json:"checkOutTime"`
	VoucherCode        *string               `json:"voucherCode,omitempty"`
	DiscountValue      int64                 `json:"discountValue"`
	UsePoints          bool                  `json:"usePoints"`
	PointsDiscount     int64                 `json:"pointsDiscount"`
	TotalPrice         int64                 `json:"totalPrice"`
	Status             string                `json:"status"`
	CustomerName       string                `json:"customerName"`
	CustomerPhone      string                `json:"customerPhone"`
	CustomerEmail      string                `json:"customerEmail"`
	RewardPointsEarned int                   `json:"rewardPointsEarned"`
	CreatedAt          time.Time             `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

type CommitResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Quote    QuoteResponse      `json:"quote"`
}

func FromBooking(b *booking.Booking, loc *time.Location) *BookingResponse {
	interval := b.Interval()
	customer := b.Customer()
	return &BookingResponse{
		ID:                 b.ID(),
		RoomID:             b.RoomID().String(),
		RoomName:           b.RoomName(),
		Date:               interval.Date.String(),
		Range:              interval.String(),
		BasePrice:          b.BasePrice().Int64(),
		Lines:              FromServiceLines(b.Services()),
		Start:              booking.FormatTime(b.StartTime(), loc),
		End:                booking.FormatTime(b.EndTime(), loc),
		CheckIn:            booking.FormatTime(b.CheckInTime(), loc),
		CheckOut:           booking.FormatTime(b.CheckOutTime(), loc),
		VoucherCode:        b.VoucherCode(),
		DiscountValue:      b.Discount().Int64(),
		UsePoints:          b.UsePoints(),
		PointsDiscount:     b.PointsDiscount().Int64(),
		TotalPrice:         b.TotalPrice().Int64(),
		Status:             string(b.Status()),
		CustomerName:       customer.Name,
		CustomerPhone:      customer.Phone,
		CustomerEmail:      customer.Email,
		RewardPointsEarned: b.RewardPointsEarned(),
		CreatedAt:          b.CreatedAt(),
	}
}

func FromBookingView(v *queries.BookingView, loc *time.Location) (*BookingResponse, error) {
	var resp BookingResponse
	// same-named scalar fields; the formatted and nested ones are set below
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	resp.Lines = FromServiceLines(v.Services)
	resp.Start = booking.FormatTime(v.StartTime, loc)
	resp.End = booking.FormatTime(v.EndTime, loc)
	resp.CheckIn = booking.FormatTime(v.CheckInTime, loc)
	resp.CheckOut = booking.FormatTime(v.CheckOutTime, loc)
	return &resp, nil
}

func FromBookingViews(views []*queries.BookingView, next *queries.Cursor, loc *time.Location) (*BookingListResponse, error) {
	resp := &BookingListResponse{Items: make([]*BookingResponse, len(views))}
	for i, v := range views {
		item, err := FromBookingView(v, loc)
		if err != nil {
			return nil, err
		}
		resp.Items[i] = item
	}
	if next != nil && next.After != "" {
		resp.NextCursor = &next.After
	}
	return resp, nil
}

func FromCommit(bookings []*booking.Booking, q pricing.Quote, loc *time.Location) *CommitResponse {
	resp := &CommitResponse{
		Bookings: make([]*BookingResponse, len(bookings)),
		Quote:    FromQuote(q),
	}
	for i, b := range bookings {
		resp.Bookings[i] = FromBooking(b, loc)
	}
	return resp
}
