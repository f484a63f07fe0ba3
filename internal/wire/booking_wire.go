package wire

import (
	"github.com/go-chi/chi/v5"

	"tour-booking/internal/adaptor"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.GetBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
