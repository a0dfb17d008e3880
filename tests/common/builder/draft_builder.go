//go:build unit || e2e

package builder

import (
	"time"

	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	reqdto "wellness-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

type DraftBuilder struct {
	ID        uuid.UUID
	RoomID    room.ID
	RoomName  string
	Date      reservation.Date
	Start     string
	End       string
	BasePrice int64
	Services  []reservation.ServiceLine
	CreatedAt time.Time
}

func NewDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		ID:        uuid.New(),
		RoomID:    "R1",
		RoomName:  "Sauna Suite",
		Date:      reservation.Date{Year: 2030, Month: time.March, Day: 14},
		Start:     "09:00",
		End:       "10:00",
		BasePrice: 200_000,
		CreatedAt: time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(b)
	return b
}

func (b *DraftBuilder) WithWindow(start, end string) *DraftBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *DraftBuilder) WithRoom(id room.ID, name string) *DraftBuilder {
	b.RoomID, b.RoomName = id, name
	return b
}

func (b *DraftBuilder) WithDate(d reservation.Date) *DraftBuilder {
	b.Date = d
	return b
}

func (b *DraftBuilder) WithBasePrice(p int64) *DraftBuilder {
	b.BasePrice = p
	return b
}

func (b *DraftBuilder) WithServices(lines ...reservation.ServiceLine) *DraftBuilder {
	b.Services = append(b.Services, lines...)
	return b
}

func (b *DraftBuilder) Interval() reservation.TimeInterval {
	iv, err := reservation.ParseTimeInterval(b.Date.String(), b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return iv
}

func (b *DraftBuilder) Build() reservation.DraftSelection {
	return reservation.DraftSelection{
		ID:        b.ID,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		Interval:  b.Interval(),
		BasePrice: money.Money(b.BasePrice),
		Services:  reservation.AggregateLines(b.Services),
		CreatedAt: b.CreatedAt,
	}
}

// Expert and Extra panic on invalid input; they are meant for fixed fixtures.
func Expert(id, name string, price int64) reservation.ServiceLine {
	l, err := reservation.NewExpertLine(id, name, price)
	if err != nil {
		panic(err)
	}
	return l
}

func Extra(id, name string, price int64, qty int) reservation.ServiceLine {
	l, err := reservation.NewExtraLine(id, name, price, qty)
	if err != nil {
		panic(err)
	}
	return l
}

// Consolidated returns the draft as a single-source consolidated reservation.
func (b *DraftBuilder) Consolidated() reservation.ConsolidatedReservation {
	return reservation.Merge([]reservation.DraftSelection{b.Build()})[0]
}

func (b *DraftBuilder) BuildAddItemRequestDTO() reqdto.AddItemRequest {
	return reqdto.AddItemRequest{
		RoomID: string(b.RoomID),
		Date:   b.Date.String(),
		Start:  b.Start,
		End:    b.End,
	}
}
