package response

import (
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/pkg/patch"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteResponse struct {
	Subtotal        int64  `json:"subtotal"`
	VoucherDiscount int64  `json:"voucherDiscount"`
	PointsDiscount  int64  `json:"pointsDiscount"`
	Total           int64  `json:"total"`
	RewardPoints    int    `json:"rewardPoints"`
	PointsRedeemed  int    `json:"pointsRedeemed"`
	VoucherApplied  bool   `json:"voucherApplied"`
	VoucherMessage  string `json:"voucherMessage,omitempty"`
}

type ReservationResponse struct {
	RoomID    string                `json:"roomId"`
	RoomName  string                `json:"roomName"`
	Date      string                `json:"date"`
	Start     string                `json:"start"`
	End       string                `json:"end"`
	BasePrice int64                 `json:"basePrice"`
	Services  []ServiceLineResponse `json:"services"`
	SourceIDs []uuid.UUID           `json:"sourceIds"`
}

type ServiceSelectionResponse struct {
	ServiceLineResponse
	Selected bool `json:"selected"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type TicketResponse struct {
	ID        uuid.UUID `json:"id"`
	Points    int       `json:"points"`
	Discount  int64     `json:"discount"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CheckoutResponse struct {
	SessionID      uuid.UUID                  `json:"sessionId"`
	State          string                     `json:"state"`
	Reservations   []ReservationResponse      `json:"reservations"`
	Services       []ServiceSelectionResponse `json:"services"`
	VoucherCode    *string                    `json:"voucherCode,omitempty"`
	Contact        ContactResponse            `json:"contact"`
	PointsRedeemed bool                       `json:"pointsRedeemed"`
	PendingTicket  *TicketResponse            `json:"pendingTicket,omitempty"`
	RefundPending  bool                       `json:"refundPending"`
	Quote          QuoteResponse              `json:"quote"`
}

type RedeemResponse struct {
	Balance  int               `json:"balance"`
	Checkout *CheckoutResponse `json:"checkout"`
}

type AbandonResponse struct {
	Refunded      bool `json:"refunded"`
	RefundPending bool `json:"refundPending"`
	Balance       *int `json:"balance,omitempty"`
}

type LoyaltyResponse struct {
	AvailablePoints int    `json:"availablePoints"`
	StarTier        string `json:"starTier"`
	CanRedeem       bool   `json:"canRedeem"`
}

func FromQuote(q pricing.Quote) QuoteResponse {
	resp := QuoteResponse{
		Subtotal:        q.Subtotal.Int64(),
		VoucherDiscount: q.VoucherDiscount.Int64(),
		PointsDiscount:  q.PointsDiscount.Int64(),
		Total:           q.Total.Int64(),
		RewardPoints:    q.RewardPoints,
		PointsRedeemed:  q.PointsRedeemed,
		VoucherApplied:  q.VoucherApplied,
	}
	if q.VoucherRejection != nil {
		resp.VoucherMessage = q.VoucherRejection.Error()
	}
	return resp
}

func FromReservation(r reservation.ConsolidatedReservation) ReservationResponse {
	return ReservationResponse{
		RoomID:    r.RoomID.String(),
		RoomName:  r.RoomName,
		Date:      r.Interval.Date.String(),
		Start:     reservation.FormatClock(r.Interval.StartMinute),
		End:       reservation.FormatClock(r.Interval.EndMinute),
		BasePrice: r.BasePriceSum.Int64(),
		Services:  FromServiceLines(r.Services),
		SourceIDs: r.SourceIDs,
	}
}

func FromTicket(t *loyalty.RedemptionTicket) *TicketResponse {
	if t == nil {
		return nil
	}
	return &TicketResponse{
		ID:        t.ID,
		Points:    t.Points,
		Discount:  t.Discount.Int64(),
		ExpiresAt: t.ExpiresAt,
	}
}

func FromCheckout(d *checkout.Draft, q pricing.Quote) *CheckoutResponse {
	resp := &CheckoutResponse{
		SessionID:      d.SessionID,
		State:          string(d.State),
		Reservations:   make([]ReservationResponse, len(d.Reservations)),
		Services:       make([]ServiceSelectionResponse, len(d.Services)),
		VoucherCode:    patch.Ptr(d.VoucherCode, true),
		PointsRedeemed: d.PointsRedeemed,
		PendingTicket:  FromTicket(d.PendingTicket),
		RefundPending:  d.RefundPending,
		Quote:          FromQuote(q),
		Contact: ContactResponse{
			Name:  d.Contact.Name,
			Phone: d.Contact.Phone,
			Email: d.Contact.Email,
		},
	}
	for i, r := range d.Reservations {
		resp.Reservations[i] = FromReservation(r)
	}
	for i, s := range d.Services {
		resp.Services[i] = ServiceSelectionResponse{
			ServiceLineResponse: FromServiceLines([]reservation.ServiceLine{s.Line})[0],
			Selected:            s.Selected,
		}
	}
	return resp
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return FromCheckout(r.Draft, r.Quote)
}

func FromCheckoutView(v *queries.CheckoutView) *CheckoutResponse {
	return FromCheckout(v.Draft, v.Quote)
}

func FromRedeemResult(r *commands.RedeemResult) *RedeemResponse {
	resp := &RedeemResponse{Balance: r.Balance}
	if r.Checkout != nil {
		resp.Checkout = FromCheckoutResult(r.Checkout)
	}
	return resp
}

func FromAbandonResult(r *commands.AbandonResult) *AbandonResponse {
	return &AbandonResponse{
		Refunded:      r.Refunded,
		RefundPending: r.RefundPending,
		Balance:       r.Balance,
	}
}

func FromLoyaltyView(v *queries.LoyaltyView) *LoyaltyResponse {
	return &LoyaltyResponse{
		AvailablePoints: v.AvailablePoints,
		StarTier:        v.StarTier,
		CanRedeem:       v.CanRedeem,
	}
}
