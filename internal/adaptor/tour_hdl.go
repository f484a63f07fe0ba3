package adaptor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetTours handles GET /api/v1/tours
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TourFilterRequest{
		PaginatedRequest: request.NewPaginatedRequest(query),
		Status:           query.Get("status"),
		CategoryID:       query.Get("category_id"),
		Search:           query.Get("search"),
	}

	tours, err := h.service.GetTours(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get tours")
		return
	}

	utils.ResponseList(w, listData("tours", tours.Data), len(tours.Data), tours.Pagination)
}

// GetTourByID handles GET /api/v1/tours/{id}
func (h *TourHandler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	tour, err := h.service.GetTourByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get tour by ID")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"tour": tour})
}

// CreateTour handles POST /api/v1/tours
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create tour")
		return
	}

	tour, err := h.service.CreateTour(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create tour")
		return
	}

	utils.ResponseCreated(w, map[string]any{"tour": tour})
}

// UpdateTour handles PATCH /api/v1/tours/{id}
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update tour")
		return
	}

	tour, err := h.service.UpdateTour(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update tour")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"tour": tour})
}

// DeleteTour handles DELETE /api/v1/tours/{id}
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTour(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete tour")
		return
	}

	utils.ResponseNoContent(w)
}
