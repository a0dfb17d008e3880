package request

import (
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type ServiceChoiceRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1,max=10"`
}

// AddItemRequest is shared by the cart and book-now endpoints.
// RoomID arrives as a string or a number depending on the catalog the client read it from.
type AddItemRequest struct {
	RoomID   any                    `json:"roomId" binding:"required"`
	Date     string                 `json:"date" binding:"required"`
	Start    string                 `json:"start" binding:"required"`
	End      string                 `json:"end" binding:"required"`
	Services []ServiceChoiceRequest `json:"services" binding:"omitempty,dive"`
}

func (r AddItemRequest) ToParams(s commands.Session) (commands.AddItemParams, error) {
	roomID, err := room.NormalizeID(r.RoomID)
	if err != nil {
		return commands.AddItemParams{}, err
	}

	var choices []commands.ServiceChoice
	if err := copier.Copy(&choices, &r.Services); err != nil {
		return commands.AddItemParams{}, err
	}
	for i := range choices {
		if choices[i].Quantity == 0 {
			choices[i].Quantity = 1
		}
	}

	return commands.AddItemParams{
		Session:  s,
		RoomID:   roomID,
		Date:     r.Date,
		Start:    r.Start,
		End:      r.End,
		Services: choices,
	}, nil
}
