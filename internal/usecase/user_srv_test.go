package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/apperror"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	user, err := svc.User.CreateUser(ctx, &request.UserRequest{
		Name:     "Tran Thi B",
		Email:    "  B@Example.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", user.Email)
	assert.Equal(t, entity.RoleCustomer, user.Role)

	stored, err := repo.User.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	_, err = svc.User.CreateUser(ctx, &request.UserRequest{
		Name:     "Someone Else",
		Email:    "b@example.com",
		Password: "another1",
	})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.User.CreateUser(context.Background(), &request.UserRequest{
		Name:     "Short",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
}

func TestUserService_GetUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.User.CreateUser(ctx, &request.UserRequest{Name: "User", Email: email, Password: "secret123"})
		require.NoError(t, err)
	}
	_, err := svc.User.CreateUser(ctx, &request.UserRequest{Name: "Admin", Email: "root@example.com", Password: "secret123", Role: "admin"})
	require.NoError(t, err)

	admins, err := svc.User.GetUsers(ctx, &request.UserFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, Limit: 10},
		Role:             "admin",
	})
	require.NoError(t, err)
	require.Len(t, admins.Data, 1)
	assert.Equal(t, "root@example.com", admins.Data[0].Email)

	_, err = svc.User.GetUserByID(ctx, entity.NewID().String())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
