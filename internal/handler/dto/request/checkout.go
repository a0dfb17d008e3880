package request

import (
	"wellness-booking/internal/pkg/patch"
	"wellness-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type ToggleServiceRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Selected  *bool  `json:"selected" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1,max=10"`
}

// GetQuantity defaults to a single unit.
func (r ToggleServiceRequest) GetQuantity() int {
	return patch.Coalesce(r.Quantity, 1)
}

type VoucherRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

type ContactRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (r ContactRequest) ToParams() (commands.ContactParams, error) {
	var p commands.ContactParams
	if err := copier.Copy(&p, &r); err != nil {
		return commands.ContactParams{}, err
	}
	return p, nil
}
