package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewMemoryRepository(zap.NewNop())
}

func newTour(desc string, status entity.TourStatus) *entity.Tour {
	return &entity.Tour{
		Base:        entity.NewBase(),
		Description: desc,
		Duration:    3,
		Price:       100,
		Status:      status,
	}
}

func newGuide(name, phone string) *entity.Guide {
	return &entity.Guide{
		Base:         entity.NewBase(),
		Name:         name,
		Phone:        phone,
		Languages:    []string{"Vietnamese"},
		GroupType:    entity.GroupDomestic,
		HealthStatus: entity.HealthHealthy,
	}
}

func TestMemoryTour_PaginationNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Tour.Create(ctx, newTour(fmt.Sprintf("tour-%02d", i), entity.TourStatusActive)))
	}

	page2, err := repo.Tour.FindAll(ctx, TourFilter{}, Page{Limit: 10, Offset: 10})
	require.NoError(t, err)
	require.Len(t, page2, 10)
	assert.Equal(t, "tour-15", page2[0].Description)
	assert.Equal(t, "tour-06", page2[9].Description)

	page3, err := repo.Tour.FindAll(ctx, TourFilter{}, Page{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	beyond, err := repo.Tour.FindAll(ctx, TourFilter{}, Page{Limit: 10, Offset: 30})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	for _, offset := range []int{-10, math.MaxInt} {
		rows, err := repo.Tour.FindAll(ctx, TourFilter{}, Page{Limit: 10, Offset: offset})
		require.NoError(t, err)
		assert.Empty(t, rows)
	}

	total, err := repo.Tour.Count(ctx, TourFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}

func TestMemoryTour_FiltersAreAnded(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	category := entity.NewID()
	withCategory := newTour("Ha Long Bay cruise", entity.TourStatusActive)
	withCategory.CategoryID = &category

	require.NoError(t, repo.Tour.Create(ctx, withCategory))
	require.NoError(t, repo.Tour.Create(ctx, newTour("Ha Long day trip", entity.TourStatusDraft)))
	require.NoError(t, repo.Tour.Create(ctx, newTour("Sapa trekking", entity.TourStatusActive)))

	tests := []struct {
		name   string
		filter TourFilter
		want   int64
	}{
		{"no filter", TourFilter{}, 3},
		{"status", TourFilter{Status: "active"}, 2},
		{"search is case-insensitive", TourFilter{Search: "HA LONG"}, 2},
		{"status and search", TourFilter{Status: "active", Search: "long"}, 1},
		{"category", TourFilter{CategoryID: category.String()}, 1},
		{"no match", TourFilter{Search: "Da Nang"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Tour.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryTour_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	tour := newTour("Hue heritage", entity.TourStatusDraft)
	require.NoError(t, repo.Tour.Create(ctx, tour))
	tour.Description = "changed after create"

	got, err := repo.Tour.FindByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hue heritage", got.Description)

	got.Price = 999
	again, err := repo.Tour.FindByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), again.Price)
}

func TestMemoryRepository_NotFoundConventions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	missing := entity.NewID()

	tour, err := repo.Tour.FindByID(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, tour)

	assert.ErrorIs(t, repo.Tour.Update(ctx, newTour("ghost", entity.TourStatusDraft)), ErrNotFound)
	assert.ErrorIs(t, repo.Tour.Delete(ctx, missing), ErrNotFound)
	assert.ErrorIs(t, repo.Guide.Delete(ctx, missing), ErrNotFound)

	_, err = repo.Guide.AddReview(ctx, missing, entity.Review{Score: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGuide_UniquePhoneAndIdentityCard(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	card := "012345678901"
	first := newGuide("Nguyen Van A", "0901234567")
	first.IdentityCard = &card
	require.NoError(t, repo.Guide.Create(ctx, first))

	assert.ErrorIs(t, repo.Guide.Create(ctx, newGuide("Tran Thi B", "0901234567")), ErrDuplicate)

	sameCard := newGuide("Le Van C", "0907654321")
	sameCard.IdentityCard = &card
	assert.ErrorIs(t, repo.Guide.Create(ctx, sameCard), ErrDuplicate)

	// guides without an identity card never collide on it
	require.NoError(t, repo.Guide.Create(ctx, newGuide("Pham D", "0911111111")))
	require.NoError(t, repo.Guide.Create(ctx, newGuide("Hoang E", "0922222222")))

	found, err := repo.Guide.FindByIdentityCard(ctx, card)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	// updating a guide onto another guide's phone is rejected
	other, err := repo.Guide.FindByPhone(ctx, "0911111111")
	require.NoError(t, err)
	other.Phone = "0901234567"
	_, err = repo.Guide.UpdateProfile(ctx, other)
	assert.ErrorIs(t, err, ErrDuplicate)

	stored, err := repo.Guide.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "0911111111", stored.Phone)
}

func TestMemoryGuide_UpdateProfileKeepsRatingAndHistory(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	guide := newGuide("Nguyen Van A", "0901234567")
	require.NoError(t, repo.Guide.Create(ctx, guide))

	// stale copy read before the review and history were written
	stale, err := repo.Guide.FindByID(ctx, guide.ID)
	require.NoError(t, err)

	_, err = repo.Guide.AddReview(ctx, guide.ID, entity.Review{Score: 5, Date: entity.Now()})
	require.NoError(t, err)
	_, err = repo.Guide.AppendHistory(ctx, guide.ID, entity.HistoryEntry{TourName: "Sapa", StartDate: entity.Now(), EndDate: entity.Now()})
	require.NoError(t, err)

	stale.Address = "12 Hang Bac, Ha Noi"
	updated, err := repo.Guide.UpdateProfile(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, "12 Hang Bac, Ha Noi", updated.Address)
	assert.Equal(t, 1, updated.Rating.TotalReviews)
	assert.Len(t, updated.History, 1)

	_, err = repo.Guide.UpdateProfile(ctx, newGuide("Ghost", "0999999999"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGuide_ConcurrentReviewsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	guide := newGuide("Nguyen Van A", "0901234567")
	require.NoError(t, repo.Guide.Create(ctx, guide))

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := repo.Guide.AddReview(ctx, guide.ID, entity.Review{Score: score, Date: entity.Now()})
			assert.NoError(t, err)
		}(i%5 + 1)
	}
	wg.Wait()

	got, err := repo.Guide.FindByID(ctx, guide.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.Rating.TotalReviews)
	assert.Len(t, got.Rating.Reviews, n)
	// scores cycle 1..5 evenly
	assert.InDelta(t, 3.0, got.Rating.Average, 1e-9)
}

func TestMemoryGuide_LanguageFilterAndStats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := newGuide("Nguyen Van A", "0901234567")
	a.Languages = []string{"Vietnamese", "English"}
	a.Rating = entity.Rating{Average: 4}
	b := newGuide("Tran Thi B", "0907654321")
	b.GroupType = entity.GroupInternational
	b.HealthStatus = entity.HealthSick
	b.Rating = entity.Rating{Average: 2}
	c := newGuide("Le Van C", "0911111111")
	c.Rating = entity.Rating{Average: 5}

	for _, g := range []*entity.Guide{a, b, c} {
		require.NoError(t, repo.Guide.Create(ctx, g))
	}

	english, err := repo.Guide.FindAll(ctx, GuideFilter{Language: "English"}, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, english, 1)
	assert.Equal(t, a.ID, english[0].ID)

	byPhone, err := repo.Guide.Count(ctx, GuideFilter{Search: "7654"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byPhone)

	groups, err := repo.Guide.GroupStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.GroupStat{
		{GroupType: entity.GroupDomestic, Count: 2, AverageRating: 4.5},
		{GroupType: entity.GroupInternational, Count: 1, AverageRating: 2},
	}, groups)

	health, err := repo.Guide.HealthStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.HealthStat{
		{HealthStatus: entity.HealthHealthy, Count: 2},
		{HealthStatus: entity.HealthSick, Count: 1},
	}, health)
}

func TestMemoryBooking_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	booking := &entity.Booking{
		Base:      entity.NewBase(),
		UserID:    entity.NewID(),
		TourID:    entity.NewID(),
		FullName:  "Nguyen Van A",
		Phone:     "0901234567",
		GuestSize: 2,
		BookAt:    entity.Now(),
		Status:    entity.BookingStatusPending,
	}
	require.NoError(t, repo.Booking.Create(ctx, booking))

	confirmed := *booking
	confirmed.Status = entity.BookingStatusConfirmed
	require.NoError(t, repo.Booking.UpdateStatus(ctx, &confirmed, entity.BookingStatusPending))

	// a second writer that read "pending" loses
	cancelled := *booking
	cancelled.Status = entity.BookingStatusCancelled
	assert.ErrorIs(t, repo.Booking.UpdateStatus(ctx, &cancelled, entity.BookingStatusPending), ErrNotFound)

	got, err := repo.Booking.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, got.Status)

	n, err := repo.Booking.Count(ctx, BookingFilter{TourID: booking.TourID.String(), Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCategory_SortedByNameAndUnique(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, name := range []string{"Trekking", "Beach", "Culture"} {
		require.NoError(t, repo.Category.Create(ctx, &entity.Category{Base: entity.NewBase(), Name: name}))
	}
	assert.ErrorIs(t, repo.Category.Create(ctx, &entity.Category{Base: entity.NewBase(), Name: "Beach"}), ErrDuplicate)

	all, err := repo.Category.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Beach", all[0].Name)
	assert.Equal(t, "Culture", all[1].Name)
	assert.Equal(t, "Trekking", all[2].Name)
}
