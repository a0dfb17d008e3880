package response

import (
	"time"

	"wellness-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type ServiceLineResponse struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
}

type CartItemResponse struct {
	ID        uuid.UUID             `json:"id"`
	RoomID    string                `json:"roomId"`
	RoomName  string                `json:"roomName"`
	Date      string                `json:"date"`
	Start     string                `json:"start"`
	End       string                `json:"end"`
	BasePrice int64                 `json:"basePrice"`
	Services  []ServiceLineResponse `json:"services"`
	Gross     int64                 `json:"gross"`
	CreatedAt time.Time             `json:"createdAt"`
}

type CartResponse struct {
	Items []*CartItemResponse `json:"items"`
	Total int64               `json:"total"`
}

func FromServiceLines(lines []reservation.ServiceLine) []ServiceLineResponse {
	out := make([]ServiceLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ServiceLineResponse{
			ID:        l.ID,
			Name:      l.Name,
			Category:  string(l.Category),
			UnitPrice: l.UnitPrice.Int64(),
			Quantity:  l.Quantity,
			Total:     l.Total().Int64(),
		}
	}
	return out
}

func FromDraftSelection(d *reservation.DraftSelection) *CartItemResponse {
	return &CartItemResponse{
		ID:        d.ID,
		RoomID:    d.RoomID.String(),
		RoomName:  d.RoomName,
		Date:      d.Interval.Date.String(),
		Start:     reservation.FormatClock(d.Interval.StartMinute),
		End:       reservation.FormatClock(d.Interval.EndMinute),
		BasePrice: d.BasePrice.Int64(),
		Services:  FromServiceLines(d.Services),
		Gross:     d.Gross().Int64(),
		CreatedAt: d.CreatedAt,
	}
}

func FromCart(items []reservation.DraftSelection) *CartResponse {
	resp := &CartResponse{Items: make([]*CartItemResponse, len(items))}
	for i := range items {
		resp.Items[i] = FromDraftSelection(&items[i])
		resp.Total += resp.Items[i].Gross
	}
	return resp
}
