package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID          string               `json:"id"`
	CategoryID  *string              `json:"category_id"`
	Description string               `json:"description"`
	Duration    int                  `json:"duration_"`
	Price       float64              `json:"price"`
	Status      entity.TourStatus    `json:"status"`
	Schedule    []entity.ScheduleDay `json:"schedule"`
	Images      []string             `json:"images"`
	Prices      []entity.PriceTier   `json:"prices"`
	Policies    []string             `json:"policies"`
	Suppliers   []string             `json:"suppliers"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func TourToResponse(tour *entity.Tour) TourResponse {
	schedule := nonNil(tour.Schedule)
	for i := range schedule {
		schedule[i].Activities = nonNil(schedule[i].Activities)
	}

	return TourResponse{
		ID:          tour.ID.String(),
		CategoryID:  idPtr(tour.CategoryID),
		Description: tour.Description,
		Duration:    tour.Duration,
		Price:       tour.Price,
		Status:      tour.Status,
		Schedule:    schedule,
		Images:      nonNil(tour.Images),
		Prices:      nonNil(tour.Prices),
		Policies:    nonNil(tour.Policies),
		Suppliers:   nonNil(tour.Suppliers),
		CreatedAt:   tour.CreatedAt,
		UpdatedAt:   tour.UpdatedAt,
	}
}
