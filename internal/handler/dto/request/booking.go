package request

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled no-show"`
}

type ListBookingsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	After string `form:"after"`
}
