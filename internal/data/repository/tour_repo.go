package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id entity.ID) (*entity.Tour, error)
	Update(ctx context.Context, tour *entity.Tour) error
	Delete(ctx context.Context, id entity.ID) error
	FindAll(ctx context.Context, filter TourFilter, page Page) ([]*entity.Tour, error)
	Count(ctx context.Context, filter TourFilter) (int64, error)
}

type tourRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewTourRepository(db *mongo.Database, log *zap.Logger) TourRepository {
	return &tourRepository{
		coll: db.Collection(collTours),
		log:  log.With(zap.String("repository", "tour")),
	}
}

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	if _, err := r.coll.InsertOne(ctx, tour); err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("failed to create tour: %w", mongoWriteErr(err))
	}
	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Tour, error) {
	var tour entity.Tour
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tour)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}
	return &tour, nil
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tour.ID}, tour)
	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("failed to update tour: %w", mongoWriteErr(err))
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id entity.ID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.log.Info("Tour deleted", zap.String("tour_id", id.String()))
	return nil
}

func (r *tourRepository) FindAll(ctx context.Context, filter TourFilter, page Page) ([]*entity.Tour, error) {
	cursor, err := r.coll.Find(ctx, tourQuery(filter), pageOptions(page))
	if err != nil {
		r.log.Error("Failed to find tours",
			zap.Error(err),
			zap.Int("offset", page.Offset),
			zap.Int("limit", page.Limit),
		)
		return nil, fmt.Errorf("failed to find tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := make([]*entity.Tour, 0, page.Limit)
	if err := cursor.All(ctx, &tours); err != nil {
		r.log.Error("Failed to decode tours", zap.Error(err))
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}

	r.log.Debug("Tours found",
		zap.Int("count", len(tours)),
		zap.Int("offset", page.Offset),
		zap.Int("limit", page.Limit),
	)
	return tours, nil
}

func (r *tourRepository) Count(ctx context.Context, filter TourFilter) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, tourQuery(filter))
	if err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("failed to count tours: %w", err)
	}
	return total, nil
}

func tourQuery(filter TourFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.Search != "" {
		query["description"] = containsRegex(filter.Search)
	}
	return query
}
