package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/apperror"
	"tour-booking/pkg/utils"
)

type TourService interface {
	GetTours(ctx context.Context, req *request.TourFilterRequest) (*response.PaginatedResponse[response.TourResponse], error)
	GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error)
	CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error)
	UpdateTour(ctx context.Context, tourID string, req *request.TourUpdateRequest) (*response.TourResponse, error)
	DeleteTour(ctx context.Context, tourID string) error
}

type tourService struct {
	repo   *repository.Repository
	events events
	log    *zap.Logger
}

func NewTourService(repo *repository.Repository, ev events, log *zap.Logger) TourService {
	return &tourService{
		repo:   repo,
		events: ev,
		log:    log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) GetTours(ctx context.Context, req *request.TourFilterRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.TourFilter{
		Status: req.Status,
		Search: strings.TrimSpace(req.Search),
	}
	if req.CategoryID != "" {
		categoryID, err := entity.ParseID(req.CategoryID, "category")
		if err != nil {
			return nil, err
		}
		filter.CategoryID = categoryID.String()
	}

	page := repository.Page{Limit: req.Limit, Offset: req.Offset()}
	tours, total, err := findPage(ctx,
		func(ctx context.Context) ([]*entity.Tour, error) { return s.repo.Tour.FindAll(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return s.repo.Tour.Count(ctx, filter) },
	)
	if err != nil {
		return nil, fmt.Errorf("get tours: %w", err)
	}

	items := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		items[i] = response.TourToResponse(tour)
	}

	s.log.Debug("Tours retrieved",
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
	)
	return response.NewPaginatedResponse(items, req.Page, req.Limit, total), nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error) {
	tour, err := s.findTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) findTour(ctx context.Context, tourID string) (*entity.Tour, error) {
	id, err := entity.ParseID(tourID, "tour")
	if err != nil {
		return nil, err
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tour by id: %w", err)
	}
	if tour == nil {
		return nil, apperror.NotFound("Tour not found")
	}
	return tour, nil
}

// resolveCategory returns nil for an empty reference and rejects ids that
// do not name an existing category.
func (s *tourService) resolveCategory(ctx context.Context, raw *string) (*entity.ID, error) {
	id, err := entity.ParseOptionalID(raw, "category")
	if err != nil || id == nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, apperror.Validation("Category not found")
	}
	return id, nil
}

func (s *tourService) CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create tour validation failed", zap.Error(err))
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	status := entity.TourStatusDraft
	if req.Status != "" {
		status = entity.TourStatus(req.Status)
	}

	tour := &entity.Tour{
		Base:        entity.NewBase(),
		CategoryID:  categoryID,
		Description: strings.TrimSpace(req.Description),
		Duration:    *req.Duration,
		Price:       *req.Price,
		Status:      status,
		Schedule:    scheduleFromRequest(req.Schedule),
		Images:      utils.NormalizeStrings(req.Images),
		Prices:      pricesFromRequest(req.Prices),
		Policies:    utils.NormalizeStrings(req.Policies),
		Suppliers:   utils.NormalizeStrings(req.Suppliers),
	}
	if err := tour.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.log.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("status", string(tour.Status)),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) UpdateTour(ctx context.Context, tourID string, req *request.TourUpdateRequest) (*response.TourResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update tour validation failed", zap.Error(err))
		return nil, err
	}

	tour, err := s.findTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		tour.CategoryID = categoryID
		updated = true
	}
	if req.Description != nil {
		tour.Description = strings.TrimSpace(*req.Description)
		updated = true
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
		updated = true
	}
	if req.Price != nil {
		tour.Price = *req.Price
		updated = true
	}
	if req.Status != nil {
		tour.Status = entity.TourStatus(*req.Status)
		updated = true
	}
	if req.Schedule != nil {
		tour.Schedule = scheduleFromRequest(*req.Schedule)
		updated = true
	}
	if req.Images != nil {
		tour.Images = utils.NormalizeStrings(*req.Images)
		updated = true
	}
	if req.Prices != nil {
		tour.Prices = pricesFromRequest(*req.Prices)
		updated = true
	}
	if req.Policies != nil {
		tour.Policies = utils.NormalizeStrings(*req.Policies)
		updated = true
	}
	if req.Suppliers != nil {
		tour.Suppliers = utils.NormalizeStrings(*req.Suppliers)
		updated = true
	}

	if updated {
		if err := tour.Validate(); err != nil {
			return nil, err
		}
		tour.Touch()
		if err := s.repo.Tour.Update(ctx, tour); err != nil {
			return nil, storeErr(err, "update tour", "Tour not found", "")
		}
	}

	s.log.Info("Tour updated",
		zap.String("tour_id", tour.ID.String()),
		zap.Bool("was_updated", updated),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) DeleteTour(ctx context.Context, tourID string) error {
	id, err := entity.ParseID(tourID, "tour")
	if err != nil {
		return err
	}

	if err := s.repo.Tour.Delete(ctx, id); err != nil {
		return storeErr(err, "delete tour", "Tour not found", "")
	}

	s.log.Info("Tour deleted", zap.String("tour_id", tourID))
	s.events.emit(ctx, EventTourDeleted, map[string]string{"tourId": tourID})
	return nil
}

func scheduleFromRequest(days []request.ScheduleDayRequest) []entity.ScheduleDay {
	schedule := make([]entity.ScheduleDay, 0, len(days))
	for _, day := range days {
		schedule = append(schedule, entity.ScheduleDay{
			Day:        day.Day,
			Title:      strings.TrimSpace(day.Title),
			Activities: utils.NormalizeStrings(day.Activities),
		})
	}
	return schedule
}

func pricesFromRequest(tiers []request.PriceTierRequest) []entity.PriceTier {
	prices := make([]entity.PriceTier, 0, len(tiers))
	for _, tier := range tiers {
		prices = append(prices, entity.PriceTier{
			Title:  strings.TrimSpace(tier.Title),
			Amount: *tier.Amount,
			Note:   strings.TrimSpace(tier.Note),
		})
	}
	return prices
}
