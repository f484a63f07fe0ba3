package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const tableUsers = "users"

type pgUserRepository struct {
	docs pgDocs[entity.User]
}

func NewPgUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &pgUserRepository{
		docs: newPgDocs[entity.User](db, tableUsers, log.With(zap.String("repository", "user"))),
	}
}

func (r *pgUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.docs.insert(ctx, user.Base, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id entity.ID) (*entity.User, error) {
	user, err := r.docs.findByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var where pgWhere
	where.field("email", email)

	user, err := r.docs.findOne(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindAll(ctx context.Context, filter UserFilter, page Page) ([]*entity.User, error) {
	users, err := r.docs.list(ctx, userWhere(filter), pgNewestFirst, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	total, err := r.docs.count(ctx, userWhere(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func userWhere(filter UserFilter) pgWhere {
	var where pgWhere
	if filter.Role != "" {
		where.field("role", filter.Role)
	}
	if filter.Search != "" {
		where.search(filter.Search, "name", "email", "phone")
	}
	return where
}
