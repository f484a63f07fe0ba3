package repository

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

// NewMemoryRepository keeps every collection in process memory. It backs
// the test suites and DB_DRIVER=memory.
func NewMemoryRepository(log *zap.Logger) *Repository {
	log.Info("Using in-memory repository; data is lost on restart")
	return &Repository{
		Tour:     &memTourRepository{store: newMemStore(func(t *entity.Tour) *entity.Base { return &t.Base }, nil)},
		Category: &memCategoryRepository{store: newMemStore(func(c *entity.Category) *entity.Base { return &c.Base }, categoryKeys)},
		Guide:    &memGuideRepository{store: newMemStore(func(g *entity.Guide) *entity.Base { return &g.Base }, guideKeys)},
		Booking:  &memBookingRepository{store: newMemStore(func(b *entity.Booking) *entity.Base { return &b.Base }, nil)},
		User:     &memUserRepository{store: newMemStore(func(u *entity.User) *entity.Base { return &u.Base }, userKeys)},
	}
}

func categoryKeys(c *entity.Category) []string {
	return []string{"name:" + c.Name}
}

func guideKeys(g *entity.Guide) []string {
	keys := []string{"phone:" + g.Phone}
	if g.IdentityCard != nil && *g.IdentityCard != "" {
		keys = append(keys, "identityCard:"+*g.IdentityCard)
	}
	return keys
}

func userKeys(u *entity.User) []string {
	return []string{"email:" + u.Email}
}

type memTourRepository struct {
	store *memStore[entity.Tour]
}

func (r *memTourRepository) Create(_ context.Context, tour *entity.Tour) error {
	return r.store.insert(tour)
}

func (r *memTourRepository) FindByID(_ context.Context, id entity.ID) (*entity.Tour, error) {
	return r.store.findByID(id), nil
}

func (r *memTourRepository) Update(_ context.Context, tour *entity.Tour) error {
	return r.store.replace(tour, nil)
}

func (r *memTourRepository) Delete(_ context.Context, id entity.ID) error {
	return r.store.delete(id)
}

func (r *memTourRepository) FindAll(_ context.Context, filter TourFilter, page Page) ([]*entity.Tour, error) {
	return r.store.list(tourMatch(filter), page), nil
}

func (r *memTourRepository) Count(_ context.Context, filter TourFilter) (int64, error) {
	return r.store.count(tourMatch(filter)), nil
}

func tourMatch(filter TourFilter) func(*entity.Tour) bool {
	return func(t *entity.Tour) bool {
		if filter.Status != "" && string(t.Status) != filter.Status {
			return false
		}
		if filter.CategoryID != "" && (t.CategoryID == nil || t.CategoryID.String() != filter.CategoryID) {
			return false
		}
		if filter.Search != "" && !containsFold(filter.Search, t.Description) {
			return false
		}
		return true
	}
}

type memCategoryRepository struct {
	store *memStore[entity.Category]
}

func (r *memCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	return r.store.insert(category)
}

func (r *memCategoryRepository) FindByID(_ context.Context, id entity.ID) (*entity.Category, error) {
	return r.store.findByID(id), nil
}

func (r *memCategoryRepository) FindByName(_ context.Context, name string) (*entity.Category, error) {
	return r.store.findOne(func(c *entity.Category) bool { return c.Name == name }), nil
}

func (r *memCategoryRepository) FindAll(_ context.Context) ([]*entity.Category, error) {
	categories := r.store.list(nil, Page{})
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *memCategoryRepository) Delete(_ context.Context, id entity.ID) error {
	return r.store.delete(id)
}

type memGuideRepository struct {
	store *memStore[entity.Guide]
}

func (r *memGuideRepository) Create(_ context.Context, guide *entity.Guide) error {
	return r.store.insert(guide)
}

func (r *memGuideRepository) FindByID(_ context.Context, id entity.ID) (*entity.Guide, error) {
	return r.store.findByID(id), nil
}

func (r *memGuideRepository) FindByPhone(_ context.Context, phone string) (*entity.Guide, error) {
	return r.store.findOne(func(g *entity.Guide) bool { return g.Phone == phone }), nil
}

func (r *memGuideRepository) FindByIdentityCard(_ context.Context, card string) (*entity.Guide, error) {
	return r.store.findOne(func(g *entity.Guide) bool {
		return g.IdentityCard != nil && *g.IdentityCard == card
	}), nil
}

func (r *memGuideRepository) UpdateProfile(_ context.Context, guide *entity.Guide) (*entity.Guide, error) {
	return r.store.update(guide.ID, func(g *entity.Guide) {
		g.CopyProfile(guide)
	})
}

func (r *memGuideRepository) Delete(_ context.Context, id entity.ID) error {
	return r.store.delete(id)
}

func (r *memGuideRepository) FindAll(_ context.Context, filter GuideFilter, page Page) ([]*entity.Guide, error) {
	return r.store.list(guideMatch(filter), page), nil
}

func (r *memGuideRepository) Count(_ context.Context, filter GuideFilter) (int64, error) {
	return r.store.count(guideMatch(filter)), nil
}

func (r *memGuideRepository) AddReview(_ context.Context, id entity.ID, review entity.Review) (*entity.Guide, error) {
	return r.store.update(id, func(g *entity.Guide) {
		g.Rating.AddReview(review)
		g.Touch()
	})
}

func (r *memGuideRepository) AppendHistory(_ context.Context, id entity.ID, entry entity.HistoryEntry) (*entity.Guide, error) {
	return r.store.update(id, func(g *entity.Guide) {
		g.History = append(g.History, entry)
		g.Touch()
	})
}

func (r *memGuideRepository) GroupStats(_ context.Context) ([]entity.GroupStat, error) {
	type acc struct {
		count int64
		sum   float64
	}
	groups := map[entity.GroupType]*acc{}
	for _, g := range r.store.list(nil, Page{}) {
		a, ok := groups[g.GroupType]
		if !ok {
			a = &acc{}
			groups[g.GroupType] = a
		}
		a.count++
		a.sum += g.Rating.Average
	}

	stats := make([]entity.GroupStat, 0, len(groups))
	for groupType, a := range groups {
		stats = append(stats, entity.GroupStat{
			GroupType:     groupType,
			Count:         a.count,
			AverageRating: a.sum / float64(a.count),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].GroupType < stats[j].GroupType })
	return stats, nil
}

func (r *memGuideRepository) HealthStats(_ context.Context) ([]entity.HealthStat, error) {
	counts := map[entity.HealthStatus]int64{}
	for _, g := range r.store.list(nil, Page{}) {
		counts[g.HealthStatus]++
	}

	stats := make([]entity.HealthStat, 0, len(counts))
	for status, n := range counts {
		stats = append(stats, entity.HealthStat{HealthStatus: status, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].HealthStatus < stats[j].HealthStatus })
	return stats, nil
}

func guideMatch(filter GuideFilter) func(*entity.Guide) bool {
	return func(g *entity.Guide) bool {
		if filter.GroupType != "" && string(g.GroupType) != filter.GroupType {
			return false
		}
		if filter.HealthStatus != "" && string(g.HealthStatus) != filter.HealthStatus {
			return false
		}
		if filter.Language != "" && !containsString(g.Languages, filter.Language) {
			return false
		}
		if filter.Search != "" && !containsFold(filter.Search, g.Name, g.Phone, g.Email) {
			return false
		}
		return true
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type memBookingRepository struct {
	store *memStore[entity.Booking]
}

func (r *memBookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	return r.store.insert(booking)
}

func (r *memBookingRepository) FindByID(_ context.Context, id entity.ID) (*entity.Booking, error) {
	return r.store.findByID(id), nil
}

func (r *memBookingRepository) UpdateStatus(_ context.Context, booking *entity.Booking, from entity.BookingStatus) error {
	return r.store.replace(booking, func(current *entity.Booking) bool {
		return current.Status == from
	})
}

func (r *memBookingRepository) Delete(_ context.Context, id entity.ID) error {
	return r.store.delete(id)
}

func (r *memBookingRepository) FindAll(_ context.Context, filter BookingFilter, page Page) ([]*entity.Booking, error) {
	return r.store.list(bookingMatch(filter), page), nil
}

func (r *memBookingRepository) Count(_ context.Context, filter BookingFilter) (int64, error) {
	return r.store.count(bookingMatch(filter)), nil
}

func bookingMatch(filter BookingFilter) func(*entity.Booking) bool {
	return func(b *entity.Booking) bool {
		if filter.Status != "" && string(b.Status) != filter.Status {
			return false
		}
		if filter.TourID != "" && b.TourID.String() != filter.TourID {
			return false
		}
		if filter.UserID != "" && b.UserID.String() != filter.UserID {
			return false
		}
		if filter.Search != "" && !containsFold(filter.Search, b.FullName, b.Phone) {
			return false
		}
		return true
	}
}

type memUserRepository struct {
	store *memStore[entity.User]
}

func (r *memUserRepository) Create(_ context.Context, user *entity.User) error {
	return r.store.insert(user)
}

func (r *memUserRepository) FindByID(_ context.Context, id entity.ID) (*entity.User, error) {
	return r.store.findByID(id), nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.store.findOne(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *memUserRepository) FindAll(_ context.Context, filter UserFilter, page Page) ([]*entity.User, error) {
	return r.store.list(userMatch(filter), page), nil
}

func (r *memUserRepository) Count(_ context.Context, filter UserFilter) (int64, error) {
	return r.store.count(userMatch(filter)), nil
}

func userMatch(filter UserFilter) func(*entity.User) bool {
	return func(u *entity.User) bool {
		if filter.Role != "" && string(u.Role) != filter.Role {
			return false
		}
		if filter.Search != "" && !containsFold(filter.Search, u.Name, u.Email, u.Phone) {
			return false
		}
		return true
	}
}
