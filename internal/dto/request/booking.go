package request

type BookingRequest struct {
	TourID    string `json:"tourId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	FullName  string `json:"fullName" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,phone10"`
	GuestSize int    `json:"guestSize" validate:"required,min=1,max=50"`
	BookAt    string `json:"bookAt" validate:"required,date"`
	// TotalPrice is accepted for compatibility with existing clients and
	// ignored; the total is always computed from the tour price.
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	Status     string   `json:"status,omitempty" validate:"omitempty,oneof=pending"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingFilterRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,oneof=pending confirmed cancelled"`
	TourID string
	UserID string
	Search string
}
