package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/apperror"
)

type bookingFixture struct {
	svc  *Service
	pub  *recordingPublisher
	tour *response.TourResponse
	user *response.UserResponse
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()
	ctx := context.Background()
	svc, _, pub := newTestService(t)

	tourReq := validTourRequest()
	tourReq.Price = floatPtr(250)
	tour, err := svc.Tour.CreateTour(ctx, tourReq)
	require.NoError(t, err)

	user, err := svc.User.CreateUser(ctx, &request.UserRequest{
		Name:     "Nguyen Van A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	return bookingFixture{svc: svc, pub: pub, tour: tour, user: user}
}

func (f bookingFixture) request(guests int) *request.BookingRequest {
	return &request.BookingRequest{
		TourID:    f.tour.ID,
		UserID:    f.user.ID,
		FullName:  "Nguyen Van A",
		Phone:     "0901234567",
		GuestSize: guests,
		BookAt:    "2025-06-01",
	}
}

func TestBookingService_CreateBooking_ComputesTotal(t *testing.T) {
	f := newBookingFixture(t)

	req := f.request(4)
	req.TotalPrice = floatPtr(1)
	booking, err := f.svc.Booking.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, float64(1000), booking.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, []string{EventBookingCreated}, f.pub.routingKeys())
}

func TestBookingService_CreateBooking_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f bookingFixture, req *request.BookingRequest)
		message string
	}{
		{"unknown tour", func(_ bookingFixture, r *request.BookingRequest) { r.TourID = entity.NewID().String() }, "Tour not found"},
		{"unknown user", func(_ bookingFixture, r *request.BookingRequest) { r.UserID = entity.NewID().String() }, "User not found"},
		{"malformed tour id", func(_ bookingFixture, r *request.BookingRequest) { r.TourID = "abc" }, "Invalid tour ID format"},
		{"too many guests", func(_ bookingFixture, r *request.BookingRequest) { r.GuestSize = 51 }, "Validation failed"},
		{"zero guests", func(_ bookingFixture, r *request.BookingRequest) { r.GuestSize = 0 }, "Validation failed"},
		{"short phone", func(_ bookingFixture, r *request.BookingRequest) { r.Phone = "12345" }, "Validation failed"},
		{"non pending status", func(_ bookingFixture, r *request.BookingRequest) { r.Status = "confirmed" }, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := f.request(2)
			tt.mutate(f, req)

			_, err := f.svc.Booking.CreateBooking(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.EqualError(t, err, tt.message)
			assert.Empty(t, f.pub.routingKeys())
		})
	}
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	booking, err := f.svc.Booking.CreateBooking(ctx, f.request(2))
	require.NoError(t, err)

	confirmed, err := f.svc.Booking.UpdateBookingStatus(ctx, booking.ID, &request.BookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, confirmed.Status)

	_, err = f.svc.Booking.UpdateBookingStatus(ctx, booking.ID, &request.BookingStatusRequest{Status: "pending"})
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot change booking status from confirmed to pending")

	cancelled, err := f.svc.Booking.UpdateBookingStatus(ctx, booking.ID, &request.BookingStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	_, err = f.svc.Booking.UpdateBookingStatus(ctx, booking.ID, &request.BookingStatusRequest{Status: "confirmed"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Equal(t, []string{
		EventBookingCreated,
		EventBookingStatusChanged,
		EventBookingStatusChanged,
	}, f.pub.routingKeys())
}

func TestBookingService_GetBookingByID_Populates(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	booking, err := f.svc.Booking.CreateBooking(ctx, f.request(1))
	require.NoError(t, err)

	detail, err := f.svc.Booking.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Tour)
	require.NotNil(t, detail.User)
	assert.Equal(t, f.tour.ID, detail.Tour.ID)
	assert.Equal(t, "a@example.com", detail.User.Email)

	// a deleted tour leaves the booking readable
	require.NoError(t, f.svc.Tour.DeleteTour(ctx, f.tour.ID))
	detail, err = f.svc.Booking.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Tour)
}

func TestBookingService_GetBookings_FilterByTour(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	for i := 1; i <= 3; i++ {
		_, err := f.svc.Booking.CreateBooking(ctx, f.request(i))
		require.NoError(t, err)
	}

	page, err := f.svc.Booking.GetBookings(ctx, &request.BookingFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, Limit: 10},
		TourID:           f.tour.ID,
	})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	// newest first
	assert.Equal(t, 3, page.Data[0].GuestSize)

	page, err = f.svc.Booking.GetBookings(ctx, &request.BookingFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, Limit: 10},
		TourID:           entity.NewID().String(),
	})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Pagination.Total)
}

func TestBookingService_DeleteBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	booking, err := f.svc.Booking.CreateBooking(ctx, f.request(2))
	require.NoError(t, err)

	require.NoError(t, f.svc.Booking.DeleteBooking(ctx, booking.ID))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(f.svc.Booking.DeleteBooking(ctx, booking.ID)))
}
