package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const tableCategories = "categories"

type pgCategoryRepository struct {
	docs pgDocs[entity.Category]
}

func NewPgCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &pgCategoryRepository{
		docs: newPgDocs[entity.Category](db, tableCategories, log.With(zap.String("repository", "category"))),
	}
}

func (r *pgCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := r.docs.insert(ctx, category.Base, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *pgCategoryRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	category, err := r.docs.findByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (r *pgCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var where pgWhere
	where.field("name", name)

	category, err := r.docs.findOne(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (r *pgCategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	categories, err := r.docs.list(ctx, pgWhere{}, "doc->>'name' ASC", Page{})
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (r *pgCategoryRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.docs.delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
