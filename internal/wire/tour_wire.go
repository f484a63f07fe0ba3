package wire

import (
	"github.com/go-chi/chi/v5"

	"tour-booking/internal/adaptor"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler) {
	r.Route("/tours", func(r chi.Router) {
		r.Get("/", tourHandler.GetTours)
		r.Post("/", tourHandler.CreateTour)
		r.Get("/{id}", tourHandler.GetTourByID)
		r.Patch("/{id}", tourHandler.UpdateTour)
		r.Delete("/{id}", tourHandler.DeleteTour)
	})
}
