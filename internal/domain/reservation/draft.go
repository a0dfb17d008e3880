package reservation

import (
	"errors"
	"strings"
	"time"

	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

var ErrNegativeBasePrice = errors.New("base price cannot be negative")

// DraftSelection is one staged cart entry.
type DraftSelection struct {
	ID        uuid.UUID     `json:"id"`
	RoomID    room.ID       `json:"roomId"`
	RoomName  string        `json:"roomName"`
	Interval  TimeInterval  `json:"interval"`
	BasePrice money.Money   `json:"basePrice"`
	Services  []ServiceLine `json:"services,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	// MergedFrom is set when the draft stands for an already consolidated reservation.
	MergedFrom []uuid.UUID `json:"mergedFrom,omitempty"`
}

func NewDraftSelection(r *room.Room, interval TimeInterval, services []ServiceLine, now time.Time) (*DraftSelection, error) {
	if _, err := NewTimeInterval(interval.Date, interval.StartMinute, interval.EndMinute); err != nil {
		return nil, err
	}
	return &DraftSelection{
		ID:        uuid.New(),
		RoomID:    r.ID(),
		RoomName:  strings.TrimSpace(r.Name()),
		Interval:  interval,
		BasePrice: r.PriceFor(interval.Minutes()),
		Services:  AggregateLines(services),
		CreatedAt: now,
	}, nil
}

// Sources returns the ids of the staged selections this draft represents.
func (d DraftSelection) Sources() []uuid.UUID {
	if len(d.MergedFrom) > 0 {
		return d.MergedFrom
	}
	return []uuid.UUID{d.ID}
}

func (d DraftSelection) Gross() money.Money {
	return d.BasePrice.Add(SumLines(d.Services))
}

func (d DraftSelection) Occupancy() Occupancy {
	return Occupancy{RefID: d.ID, RoomID: d.RoomID, Interval: d.Interval, Status: StatusPending}
}

// ConsolidatedReservation is the union of one or more touching or overlapping drafts
// for the same room and date.
type ConsolidatedReservation struct {
	RoomID       room.ID       `json:"roomId"`
	RoomName     string        `json:"roomName"`
	Interval     TimeInterval  `json:"interval"`
	BasePriceSum money.Money   `json:"basePriceSum"`
	Services     []ServiceLine `json:"services,omitempty"`
	SourceIDs    []uuid.UUID   `json:"sourceIds"`
}

func (c ConsolidatedReservation) Gross() money.Money {
	return c.BasePriceSum.Add(SumLines(c.Services))
}

// AsDraft turns the reservation back into a single draft so it can be merged again.
func (c ConsolidatedReservation) AsDraft() DraftSelection {
	var id uuid.UUID
	if len(c.SourceIDs) > 0 {
		id = c.SourceIDs[0]
	}
	return DraftSelection{
		ID:         id,
		RoomID:     c.RoomID,
		RoomName:   c.RoomName,
		Interval:   c.Interval,
		BasePrice:  c.BasePriceSum,
		Services:   c.Services,
		MergedFrom: c.SourceIDs,
	}
}

func (c ConsolidatedReservation) Occupancy() Occupancy {
	var id uuid.UUID
	if len(c.SourceIDs) > 0 {
		id = c.SourceIDs[0]
	}
	return Occupancy{RefID: id, RoomID: c.RoomID, Interval: c.Interval, Status: StatusPending}
}

func AsDrafts(rs []ConsolidatedReservation) []DraftSelection {
	out := make([]DraftSelection, len(rs))
	for i, r := range rs {
		out[i] = r.AsDraft()
	}
	return out
}
