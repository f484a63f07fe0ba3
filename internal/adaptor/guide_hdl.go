package adaptor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"
)

type GuideHandler struct {
	service usecase.GuideService
	log     *zap.Logger
}

func NewGuideHandler(service usecase.GuideService, log *zap.Logger) *GuideHandler {
	return &GuideHandler{
		service: service,
		log:     log.With(zap.String("handler", "guide")),
	}
}

// GetGuides handles GET /api/v1/guides
func (h *GuideHandler) GetGuides(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.GuideFilterRequest{
		PaginatedRequest: request.NewPaginatedRequest(query),
		GroupType:        query.Get("group_type"),
		HealthStatus:     query.Get("health_status"),
		Language:         query.Get("language"),
		Search:           query.Get("search"),
	}

	guides, err := h.service.GetGuides(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get guides")
		return
	}

	utils.ResponseList(w, listData("guides", guides.Data), len(guides.Data), guides.Pagination)
}

// GetGuideByID handles GET /api/v1/guides/{id}
func (h *GuideHandler) GetGuideByID(w http.ResponseWriter, r *http.Request) {
	guide, err := h.service.GetGuideByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get guide by ID")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"guide": guide})
}

// CreateGuide handles POST /api/v1/guides
func (h *GuideHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	var req request.GuideRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create guide")
		return
	}

	guide, err := h.service.CreateGuide(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create guide")
		return
	}

	utils.ResponseCreated(w, map[string]any{"guide": guide})
}

// UpdateGuide handles PATCH /api/v1/guides/{id}
func (h *GuideHandler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	var req request.GuideUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update guide")
		return
	}

	guide, err := h.service.UpdateGuide(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update guide")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"guide": guide})
}

// DeleteGuide handles DELETE /api/v1/guides/{id}
func (h *GuideHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGuide(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete guide")
		return
	}

	utils.ResponseNoContent(w)
}

// AddRating handles POST /api/v1/guides/{id}/rating
func (h *GuideHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	var req request.RatingRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "add guide rating")
		return
	}

	guide, err := h.service.AddRating(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add guide rating")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"guide": guide})
}

// AddHistory handles POST /api/v1/guides/{id}/history
func (h *GuideHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	var req request.HistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "add guide history")
		return
	}

	guide, err := h.service.AddHistory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add guide history")
		return
	}

	utils.ResponseSuccess(w, map[string]any{"guide": guide})
}

// GetStatistics handles GET /api/v1/guides/statistics
func (h *GuideHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get guide statistics")
		return
	}

	utils.ResponseSuccess(w, stats)
}
