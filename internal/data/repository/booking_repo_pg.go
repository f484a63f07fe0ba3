package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const tableBookings = "bookings"

type pgBookingRepository struct {
	docs pgDocs[entity.Booking]
}

func NewPgBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &pgBookingRepository{
		docs: newPgDocs[entity.Booking](db, tableBookings, log.With(zap.String("repository", "booking"))),
	}
}

func (r *pgBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if err := r.docs.insert(ctx, booking.Base, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *pgBookingRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Booking, error) {
	booking, err := r.docs.findByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

func (r *pgBookingRepository) UpdateStatus(ctx context.Context, booking *entity.Booking, from entity.BookingStatus) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	query := `UPDATE bookings SET doc = $3, updated_at = $4 WHERE id = $1 AND doc->>'status' = $2`
	result, err := r.docs.db.Exec(ctx, query, booking.ID.String(), string(from), data, booking.UpdatedAt)
	if err != nil {
		r.docs.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgBookingRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.docs.delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (r *pgBookingRepository) FindAll(ctx context.Context, filter BookingFilter, page Page) ([]*entity.Booking, error) {
	bookings, err := r.docs.list(ctx, bookingWhere(filter), pgNewestFirst, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return bookings, nil
}

func (r *pgBookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	total, err := r.docs.count(ctx, bookingWhere(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return total, nil
}

func bookingWhere(filter BookingFilter) pgWhere {
	var where pgWhere
	if filter.Status != "" {
		where.field("status", filter.Status)
	}
	if filter.TourID != "" {
		where.field("tourId", filter.TourID)
	}
	if filter.UserID != "" {
		where.field("userId", filter.UserID)
	}
	if filter.Search != "" {
		where.search(filter.Search, "fullName", "phone")
	}
	return where
}
