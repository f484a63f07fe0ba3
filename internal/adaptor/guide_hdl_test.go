package adaptor

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/apperror"
)

type mockGuideService struct {
	usecase.GuideService

	addRatingFn     func(ctx context.Context, guideID string, req *request.RatingRequest) (*response.GuideResponse, error)
	getStatisticsFn func(ctx context.Context) (*response.GuideStatisticsResponse, error)
}

func (m *mockGuideService) AddRating(ctx context.Context, guideID string, req *request.RatingRequest) (*response.GuideResponse, error) {
	return m.addRatingFn(ctx, guideID, req)
}

func (m *mockGuideService) GetStatistics(ctx context.Context) (*response.GuideStatisticsResponse, error) {
	return m.getStatisticsFn(ctx)
}

func newGuideRouter(svc usecase.GuideService) http.Handler {
	h := NewGuideHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/guides/statistics", h.GetStatistics)
	r.Post("/guides/{id}/rating", h.AddRating)
	return r
}

func TestGuideHandler_AddRating(t *testing.T) {
	svc := &mockGuideService{
		addRatingFn: func(_ context.Context, guideID string, req *request.RatingRequest) (*response.GuideResponse, error) {
			if guideID == "missing" {
				return nil, apperror.NotFound("Guide not found")
			}
			if req.Score > 5 {
				return nil, apperror.Validation("Score must be between 1 and 5")
			}
			return &response.GuideResponse{
				ID:     guideID,
				Rating: response.RatingResponse{Average: float64(req.Score), TotalReviews: 1},
			}, nil
		},
	}
	router := newGuideRouter(svc)

	rec, env := serve(t, router, http.MethodPost, "/guides/g1/rating", `{"score":4,"comment":"Great"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	guide := env["data"].(map[string]any)["guide"].(map[string]any)
	rating := guide["rating"].(map[string]any)
	assert.Equal(t, float64(4), rating["average"])
	assert.Equal(t, float64(1), rating["totalReviews"])

	rec, env = serve(t, router, http.MethodPost, "/guides/g1/rating", `{"score":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Score must be between 1 and 5", env["message"])

	rec, env = serve(t, router, http.MethodPost, "/guides/missing/rating", `{"score":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "fail", env["status"])

	rec, _ = serve(t, router, http.MethodPost, "/guides/g1/rating", `{"score":3,"stars":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuideHandler_GetStatistics(t *testing.T) {
	svc := &mockGuideService{
		getStatisticsFn: func(context.Context) (*response.GuideStatisticsResponse, error) {
			return &response.GuideStatisticsResponse{
				GroupStats:  []entity.GroupStat{{GroupType: entity.GroupDomestic, Count: 3, AverageRating: 4.5}},
				HealthStats: []entity.HealthStat{{HealthStatus: entity.HealthHealthy, Count: 3}},
			}, nil
		},
	}

	rec, env := serve(t, newGuideRouter(svc), http.MethodGet, "/guides/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := env["data"].(map[string]any)
	groups := data["groupStats"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, map[string]any{"_id": "domestic", "count": float64(3), "averageRating": 4.5}, groups[0])
	assert.Len(t, data["healthStats"], 1)
}
