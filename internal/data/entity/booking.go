package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

const (
	MinGuestSize = 1
	MaxGuestSize = 50
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in s may move to next.
// Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	}
	return false
}

type Booking struct {
	Base       `bson:",inline"`
	UserID     ID            `bson:"userId" json:"userId"`
	TourID     ID            `bson:"tourId" json:"tourId"`
	FullName   string        `bson:"fullName" json:"fullName"`
	Phone      string        `bson:"phone" json:"phone"`
	GuestSize  int           `bson:"guestSize" json:"guestSize"`
	BookAt     time.Time     `bson:"bookAt" json:"bookAt"`
	TotalPrice float64       `bson:"totalPrice" json:"totalPrice"`
	Status     BookingStatus `bson:"status" json:"status"`
}

// TotalPrice is the amount charged for guests on a tour with the given unit price.
func TotalPrice(unitPrice float64, guests int) float64 {
	return unitPrice * float64(guests)
}
