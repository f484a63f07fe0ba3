package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id entity.ID) (*entity.Booking, error)
	// UpdateStatus writes booking only if the stored status still equals from;
	// otherwise it returns ErrNotFound.
	UpdateStatus(ctx context.Context, booking *entity.Booking, from entity.BookingStatus) error
	Delete(ctx context.Context, id entity.ID) error
	FindAll(ctx context.Context, filter BookingFilter, page Page) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
}

type bookingRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewBookingRepository(db *mongo.Database, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		coll: db.Collection(collBookings),
		log:  log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("tour_id", booking.TourID.String()),
		)
		return fmt.Errorf("failed to create booking: %w", mongoWriteErr(err))
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *entity.Booking, from entity.BookingStatus) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": booking.ID, "status": from}, booking)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id entity.ID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, page Page) ([]*entity.Booking, error) {
	cursor, err := r.coll.Find(ctx, bookingQuery(filter), pageOptions(page))
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("offset", page.Offset),
			zap.Int("limit", page.Limit),
		)
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*entity.Booking, 0, page.Limit)
	if err := cursor.All(ctx, &bookings); err != nil {
		r.log.Error("Failed to decode bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	r.log.Debug("Bookings found", zap.Int("count", len(bookings)))
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bookingQuery(filter))
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return total, nil
}

func bookingQuery(filter BookingFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.TourID != "" {
		query["tourId"] = filter.TourID
	}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Search != "" {
		query["$or"] = searchAny(filter.Search, "fullName", "phone")
	}
	return query
}
