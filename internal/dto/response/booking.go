package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	TourID     string               `json:"tourId"`
	UserID     string               `json:"userId"`
	FullName   string               `json:"fullName"`
	Phone      string               `json:"phone"`
	GuestSize  int                  `json:"guestSize"`
	BookAt     time.Time            `json:"bookAt"`
	TotalPrice float64              `json:"totalPrice"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// BookingTour and BookingUser are the populated references of a booking
// detail. They are nil when the referenced document no longer exists.
type BookingTour struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type BookingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingDetailResponse struct {
	BookingResponse
	Tour *BookingTour `json:"tour"`
	User *BookingUser `json:"user"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		TourID:     booking.TourID.String(),
		UserID:     booking.UserID.String(),
		FullName:   booking.FullName,
		Phone:      booking.Phone,
		GuestSize:  booking.GuestSize,
		BookAt:     booking.BookAt,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

func BookingToDetailResponse(booking *entity.Booking, tour *entity.Tour, user *entity.User) BookingDetailResponse {
	detail := BookingDetailResponse{BookingResponse: BookingToResponse(booking)}
	if tour != nil {
		detail.Tour = &BookingTour{
			ID:          tour.ID.String(),
			Description: tour.Description,
			Price:       tour.Price,
		}
	}
	if user != nil {
		detail.User = &BookingUser{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		}
	}
	return detail
}
