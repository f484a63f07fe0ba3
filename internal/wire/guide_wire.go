package wire

import (
	"github.com/go-chi/chi/v5"

	"tour-booking/internal/adaptor"
)

func wireGuide(r chi.Router, guideHandler *adaptor.GuideHandler) {
	r.Route("/guides", func(r chi.Router) {
		r.Get("/", guideHandler.GetGuides)
		r.Post("/", guideHandler.CreateGuide)

		// static segment, matched before {id}
		r.Get("/statistics", guideHandler.GetStatistics)

		r.Get("/{id}", guideHandler.GetGuideByID)
		r.Patch("/{id}", guideHandler.UpdateGuide)
		r.Delete("/{id}", guideHandler.DeleteGuide)
		r.Post("/{id}/rating", guideHandler.AddRating)
		r.Post("/{id}/history", guideHandler.AddHistory)
	})
}
