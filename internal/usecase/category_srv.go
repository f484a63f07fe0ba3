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
)

type CategoryService interface {
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	// DeleteCategory leaves tours that reference the category untouched.
	DeleteCategory(ctx context.Context, categoryID string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	items := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		items[i] = response.CategoryToResponse(category)
	}
	return items, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*response.CategoryResponse, error) {
	id, err := entity.ParseID(categoryID, "category")
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	if category == nil {
		return nil, apperror.NotFound("Category not found")
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Category.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if existing != nil {
		s.log.Warn("Category name already exists", zap.String("name", req.Name))
		return nil, apperror.Conflict("Category name already exists")
	}

	category := &entity.Category{
		Base: entity.NewBase(),
		Name: req.Name,
	}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		return nil, storeErr(err, "create category", "", "Category name already exists")
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := entity.ParseID(categoryID, "category")
	if err != nil {
		return err
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		return storeErr(err, "delete category", "Category not found", "")
	}

	s.log.Info("Category deleted", zap.String("category_id", categoryID))
	return nil
}
