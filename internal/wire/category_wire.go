package wire

import (
	"github.com/go-chi/chi/v5"

	"tour-booking/internal/adaptor"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.GetCategories)
		r.Post("/", categoryHandler.CreateCategory)
		r.Get("/{id}", categoryHandler.GetCategoryByID)
		r.Delete("/{id}", categoryHandler.DeleteCategory)
	})
}
