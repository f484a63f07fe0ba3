package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const tableTours = "tours"

type pgTourRepository struct {
	docs pgDocs[entity.Tour]
}

func NewPgTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &pgTourRepository{
		docs: newPgDocs[entity.Tour](db, tableTours, log.With(zap.String("repository", "tour"))),
	}
}

func (r *pgTourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	if err := r.docs.insert(ctx, tour.Base, tour); err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

func (r *pgTourRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Tour, error) {
	tour, err := r.docs.findByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}
	return tour, nil
}

func (r *pgTourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	if err := r.docs.replace(ctx, tour.Base, tour); err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	return nil
}

func (r *pgTourRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.docs.delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	return nil
}

func (r *pgTourRepository) FindAll(ctx context.Context, filter TourFilter, page Page) ([]*entity.Tour, error) {
	tours, err := r.docs.list(ctx, tourWhere(filter), pgNewestFirst, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find tours: %w", err)
	}
	return tours, nil
}

func (r *pgTourRepository) Count(ctx context.Context, filter TourFilter) (int64, error) {
	total, err := r.docs.count(ctx, tourWhere(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count tours: %w", err)
	}
	return total, nil
}

func tourWhere(filter TourFilter) pgWhere {
	var where pgWhere
	if filter.Status != "" {
		where.field("status", filter.Status)
	}
	if filter.CategoryID != "" {
		where.field("category_id", filter.CategoryID)
	}
	if filter.Search != "" {
		where.search(filter.Search, "description")
	}
	return where
}
