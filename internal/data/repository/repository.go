package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"tour-booking/pkg/database"
)

var (
	// ErrNotFound is returned by mutations that matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Page is an offset window over a sorted result set.
type Page struct {
	Limit  int
	Offset int
}

// TourFilter fields are ANDed; Search matches the description case-insensitively.
type TourFilter struct {
	Status     string
	CategoryID string
	Search     string
}

// GuideFilter fields are ANDed; Search matches name, phone or email.
type GuideFilter struct {
	GroupType    string
	HealthStatus string
	Language     string
	Search       string
}

// BookingFilter fields are ANDed; Search matches fullName or phone.
type BookingFilter struct {
	Status string
	TourID string
	UserID string
	Search string
}

// UserFilter Search matches name, email or phone.
type UserFilter struct {
	Role   string
	Search string
}

type Repository struct {
	Tour     TourRepository
	Category CategoryRepository
	Guide    GuideRepository
	Booking  BookingRepository
	User     UserRepository
}

func NewMongoRepository(db *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		Tour:     NewTourRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Guide:    NewGuideRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		User:     NewUserRepository(db, log),
	}
}

func NewPostgresRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tour:     NewPgTourRepository(db, log),
		Category: NewPgCategoryRepository(db, log),
		Guide:    NewPgGuideRepository(db, log),
		Booking:  NewPgBookingRepository(db, log),
		User:     NewPgUserRepository(db, log),
	}
}
