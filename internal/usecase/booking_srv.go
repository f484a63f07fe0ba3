package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/apperror"
)

const msgBookingNotFound = "Booking not found"

type BookingService interface {
	GetBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	// CreateBooking prices the booking from the tour; any client total is ignored.
	CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.BookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo   *repository.Repository
	events events
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, ev events, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		events: ev,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{
		Status: req.Status,
		Search: strings.TrimSpace(req.Search),
	}
	if req.TourID != "" {
		tourID, err := entity.ParseID(req.TourID, "tour")
		if err != nil {
			return nil, err
		}
		filter.TourID = tourID.String()
	}
	if req.UserID != "" {
		userID, err := entity.ParseID(req.UserID, "user")
		if err != nil {
			return nil, err
		}
		filter.UserID = userID.String()
	}
	page := repository.Page{Limit: req.Limit, Offset: req.Offset()}

	bookings, total, err := findPage(ctx,
		func(ctx context.Context) ([]*entity.Booking, error) { return s.repo.Booking.FindAll(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return s.repo.Booking.Count(ctx, filter) },
	)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	tour, user, err := s.loadRefs(ctx, booking.TourID, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("populate booking: %w", err)
	}

	resp := response.BookingToDetailResponse(booking, tour, user)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := entity.ParseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	if booking == nil {
		return nil, apperror.NotFound(msgBookingNotFound)
	}
	return booking, nil
}

// loadRefs fetches the referenced tour and user concurrently. Either may be
// nil when the document no longer exists.
func (s *bookingService) loadRefs(ctx context.Context, tourID, userID entity.ID) (*entity.Tour, *entity.User, error) {
	var (
		tour *entity.Tour
		user *entity.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tour, err = s.repo.Tour.FindByID(gctx, tourID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.repo.User.FindByID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tour, user, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	tourID, err := entity.ParseID(req.TourID, "tour")
	if err != nil {
		return nil, err
	}
	userID, err := entity.ParseID(req.UserID, "user")
	if err != nil {
		return nil, err
	}
	bookAt, err := parseDate(req.BookAt, "bookAt")
	if err != nil {
		return nil, err
	}

	tour, user, err := s.loadRefs(ctx, tourID, userID)
	if err != nil {
		return nil, fmt.Errorf("load booking references: %w", err)
	}
	if tour == nil {
		return nil, apperror.Validation("Tour not found")
	}
	if user == nil {
		return nil, apperror.Validation("User not found")
	}

	booking := &entity.Booking{
		Base:       entity.NewBase(),
		UserID:     userID,
		TourID:     tourID,
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      req.Phone,
		GuestSize:  req.GuestSize,
		BookAt:     bookAt,
		TotalPrice: entity.TotalPrice(tour.Price, req.GuestSize),
		Status:     entity.BookingStatusPending,
	}

	if req.TotalPrice != nil && *req.TotalPrice != booking.TotalPrice {
		s.log.Warn("Ignoring client supplied total price",
			zap.Float64("client_total", *req.TotalPrice),
			zap.Float64("total", booking.TotalPrice),
		)
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("tour_id", tourID.String()),
		zap.Int("guests", booking.GuestSize),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	s.events.emit(ctx, EventBookingCreated, resp)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.BookingStatusRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from, to := booking.Status, entity.BookingStatus(req.Status)
	if !from.CanTransitionTo(to) {
		return nil, apperror.Validation("Cannot change booking status from %s to %s", from, to)
	}

	booking.Status = to
	booking.Touch()
	if err := s.repo.Booking.UpdateStatus(ctx, booking, from); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted or moved to another status since it was read.
			return nil, apperror.Conflict("Booking was modified by another request, reload and retry")
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	s.events.emit(ctx, EventBookingStatusChanged, map[string]string{
		"bookingId": bookingID,
		"from":      string(from),
		"to":        string(to),
	})

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := entity.ParseID(bookingID, "booking")
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		return storeErr(err, "delete booking", msgBookingNotFound, "")
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}
