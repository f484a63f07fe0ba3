package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/apperror"
	"tour-booking/pkg/utils"
)

type Service struct {
	Tour     TourService
	Category CategoryService
	Guide    GuideService
	Booking  BookingService
	User     UserService
}

// NewService builds every service over repo. pub may be nil.
func NewService(repo *repository.Repository, pub EventPublisher, log *zap.Logger) *Service {
	ev := events{pub: pub, log: log.With(zap.String("component", "events"))}
	return &Service{
		Tour:     NewTourService(repo, ev, log),
		Category: NewCategoryService(repo, log),
		Guide:    NewGuideService(repo, ev, log),
		Booking:  NewBookingService(repo, ev, log),
		User:     NewUserService(repo.User, log),
	}
}

// validateRequest runs the struct validator and reports failures per field.
func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.ValidationFields("Validation failed", errs)
	}
	return nil
}

// findPage runs the page query and the count concurrently.
func findPage[T any](
	ctx context.Context,
	find func(ctx context.Context) ([]T, error),
	count func(ctx context.Context) (int64, error),
) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = find(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// storeErr translates repository sentinels into the error taxonomy.
func storeErr(err error, op, notFound, duplicate string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound) && notFound != "":
		return apperror.NotFound("%s", notFound)
	case errors.Is(err, repository.ErrDuplicate) && duplicate != "":
		return apperror.Conflict("%s", duplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
