package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-booking/internal/dto/request"
	"tour-booking/pkg/apperror"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.Category.CreateCategory(ctx, &request.CategoryRequest{Name: "  Beach  "})
	require.NoError(t, err)
	assert.Equal(t, "Beach", created.Name)

	_, err = svc.Category.CreateCategory(ctx, &request.CategoryRequest{Name: "Beach"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.EqualError(t, err, "Category name already exists")

	_, err = svc.Category.CreateCategory(ctx, &request.CategoryRequest{Name: "   "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCategoryService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, name := range []string{"Trekking", "Beach"} {
		_, err := svc.Category.CreateCategory(ctx, &request.CategoryRequest{Name: name})
		require.NoError(t, err)
	}

	all, err := svc.Category.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beach", all[0].Name)

	got, err := svc.Category.GetCategoryByID(ctx, all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Trekking", got.Name)

	require.NoError(t, svc.Category.DeleteCategory(ctx, got.ID))
	_, err = svc.Category.GetCategoryByID(ctx, got.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCategoryService_DeleteKeepsTours(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	category, err := svc.Category.CreateCategory(ctx, &request.CategoryRequest{Name: "Culture"})
	require.NoError(t, err)

	req := validTourRequest()
	req.CategoryID = &category.ID
	tour, err := svc.Tour.CreateTour(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Category.DeleteCategory(ctx, category.ID))

	got, err := svc.Tour.GetTourByID(ctx, tour.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, category.ID, *got.CategoryID)
}
