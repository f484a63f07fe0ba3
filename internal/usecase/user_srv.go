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

type UserService interface {
	GetUsers(ctx context.Context, req *request.UserFilterRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetUsers(ctx context.Context, req *request.UserFilterRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.UserFilter{
		Role:   req.Role,
		Search: strings.TrimSpace(req.Search),
	}
	page := repository.Page{Limit: req.Limit, Offset: req.Offset()}

	users, total, err := findPage(ctx,
		func(ctx context.Context) ([]*entity.User, error) { return us.userRepo.FindAll(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return us.userRepo.Count(ctx, filter) },
	)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = response.UserToResponse(user)
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit, total), nil
}

func (us *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := entity.ParseID(userID, "user")
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID))
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		us.log.Warn("Create user validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := entity.RoleCustomer
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	user := &entity.User{
		Base:         entity.NewBase(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
	}
	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, storeErr(err, "create user", "", "Email already exists")
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
