package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id entity.ID) (*entity.Category, error)
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	// FindAll returns every category sorted by name.
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id entity.ID) error
}

type categoryRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewCategoryRepository(db *mongo.Database, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		coll: db.Collection(collCategories),
		log:  log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		err = mongoWriteErr(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create category",
				zap.Error(err),
				zap.String("name", category.Name),
			)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *categoryRepository) findOne(ctx context.Context, query bson.M) (*entity.Category, error) {
	var category entity.Category
	err := r.coll.FindOne(ctx, query).Decode(&category)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category", zap.Error(err), zap.Any("query", query))
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err))
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []*entity.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		r.log.Error("Failed to decode categories", zap.Error(err))
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id entity.ID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete category",
			zap.Error(err),
			zap.String("category_id", id.String()),
		)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
