package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/apperror"
	"tour-booking/pkg/utils"
)

const (
	msgGuideNotFound        = "Guide not found"
	msgPhoneExists          = "Phone number already exists"
	msgIdentityCardExists   = "Identity card already exists"
	msgGuideUniqueViolation = "Phone number or identity card already exists"

	userLookupConcurrency = 8
)

type GuideService interface {
	GetGuides(ctx context.Context, req *request.GuideFilterRequest) (*response.PaginatedResponse[response.GuideDetailResponse], error)
	GetGuideByID(ctx context.Context, guideID string) (*response.GuideDetailResponse, error)
	CreateGuide(ctx context.Context, req *request.GuideRequest) (*response.GuideResponse, error)
	UpdateGuide(ctx context.Context, guideID string, req *request.GuideUpdateRequest) (*response.GuideResponse, error)
	DeleteGuide(ctx context.Context, guideID string) error

	// AddRating appends a review and recomputes the rating aggregate.
	AddRating(ctx context.Context, guideID string, req *request.RatingRequest) (*response.GuideResponse, error)
	AddHistory(ctx context.Context, guideID string, req *request.HistoryRequest) (*response.GuideResponse, error)
	GetStatistics(ctx context.Context) (*response.GuideStatisticsResponse, error)
}

type guideService struct {
	repo   *repository.Repository
	events events
	log    *zap.Logger
}

func NewGuideService(repo *repository.Repository, ev events, log *zap.Logger) GuideService {
	return &guideService{
		repo:   repo,
		events: ev,
		log:    log.With(zap.String("service", "guide")),
	}
}

func (s *guideService) GetGuides(ctx context.Context, req *request.GuideFilterRequest) (*response.PaginatedResponse[response.GuideDetailResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.GuideFilter{
		GroupType:    req.GroupType,
		HealthStatus: req.HealthStatus,
		Language:     req.Language,
		Search:       strings.TrimSpace(req.Search),
	}
	page := repository.Page{Limit: req.Limit, Offset: req.Offset()}

	guides, total, err := findPage(ctx,
		func(ctx context.Context) ([]*entity.Guide, error) { return s.repo.Guide.FindAll(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return s.repo.Guide.Count(ctx, filter) },
	)
	if err != nil {
		return nil, fmt.Errorf("get guides: %w", err)
	}

	users := s.linkedUsers(ctx, guides)
	items := make([]response.GuideDetailResponse, len(guides))
	for i, guide := range guides {
		var user *entity.User
		if guide.UserID != nil {
			user = users[*guide.UserID]
		}
		items[i] = response.GuideToDetailResponse(guide, user)
	}

	s.log.Debug("Guides retrieved",
		zap.Int("count", len(items)),
		zap.Int64("total", total),
	)
	return response.NewPaginatedResponse(items, req.Page, req.Limit, total), nil
}

// linkedUsers loads the accounts linked to guides. A lookup failure only
// drops that user from the result.
func (s *guideService) linkedUsers(ctx context.Context, guides []*entity.Guide) map[entity.ID]*entity.User {
	var (
		mu    sync.Mutex
		users = make(map[entity.ID]*entity.User)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(userLookupConcurrency)
	for _, guide := range guides {
		if guide.UserID == nil {
			continue
		}
		id := *guide.UserID
		mu.Lock()
		_, seen := users[id]
		users[id] = nil
		mu.Unlock()
		if seen {
			continue
		}

		g.Go(func() error {
			user, err := s.repo.User.FindByID(gctx, id)
			if err != nil {
				s.log.Warn("Failed to load guide user",
					zap.Error(err),
					zap.String("user_id", id.String()),
				)
				return nil
			}
			mu.Lock()
			users[id] = user
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return users
}

func (s *guideService) GetGuideByID(ctx context.Context, guideID string) (*response.GuideDetailResponse, error) {
	guide, err := s.findGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	if guide.UserID != nil {
		user, err = s.repo.User.FindByID(ctx, *guide.UserID)
		if err != nil {
			// The guide is still useful without its account.
			s.log.Warn("Failed to load guide user",
				zap.Error(err),
				zap.String("guide_id", guideID),
			)
		}
	}

	resp := response.GuideToDetailResponse(guide, user)
	return &resp, nil
}

func (s *guideService) findGuide(ctx context.Context, guideID string) (*entity.Guide, error) {
	id, err := entity.ParseID(guideID, "guide")
	if err != nil {
		return nil, err
	}

	guide, err := s.repo.Guide.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get guide by id: %w", err)
	}
	if guide == nil {
		return nil, apperror.NotFound(msgGuideNotFound)
	}
	return guide, nil
}

func (s *guideService) CreateGuide(ctx context.Context, req *request.GuideRequest) (*response.GuideResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create guide validation failed", zap.Error(err))
		return nil, err
	}

	userID, err := s.resolveUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	birthdate, err := parseDate(req.Birthdate, "birtdate")
	if err != nil {
		return nil, err
	}
	certificates, err := certificatesFromRequest(req.Certificates)
	if err != nil {
		return nil, err
	}

	languages := languagesOrDefault(req.Languages)
	groupType := entity.GroupDomestic
	if req.GroupType != "" {
		groupType = entity.GroupType(req.GroupType)
	}
	healthStatus := entity.HealthHealthy
	if req.HealthStatus != "" {
		healthStatus = entity.HealthStatus(req.HealthStatus)
	}

	guide := &entity.Guide{
		Base:         entity.NewBase(),
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Birthdate:    birthdate,
		Avatar:       strings.TrimSpace(req.Avatar),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		IdentityCard: normalizeIdentityCard(req.IdentityCard),
		Certificates: certificates,
		Languages:    languages,
		Experience:   experienceFromRequest(req.Experience),
		History:      []entity.HistoryEntry{},
		Rating:       entity.Rating{Reviews: []entity.Review{}},
		GroupType:    groupType,
		HealthStatus: healthStatus,
	}
	if err := guide.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, guide, true, true); err != nil {
		return nil, err
	}

	if err := s.repo.Guide.Create(ctx, guide); err != nil {
		return nil, storeErr(err, "create guide", "", msgGuideUniqueViolation)
	}

	s.log.Info("Guide created",
		zap.String("guide_id", guide.ID.String()),
		zap.String("group_type", string(guide.GroupType)),
	)

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

func (s *guideService) UpdateGuide(ctx context.Context, guideID string, req *request.GuideUpdateRequest) (*response.GuideResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update guide validation failed", zap.Error(err))
		return nil, err
	}

	guide, err := s.findGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	updated := false
	phoneChanged, cardChanged := false, false

	if req.Name != nil {
		guide.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Birthdate != nil {
		if guide.Birthdate, err = parseDate(*req.Birthdate, "birtdate"); err != nil {
			return nil, err
		}
		updated = true
	}
	if req.Avatar != nil {
		guide.Avatar = strings.TrimSpace(*req.Avatar)
		updated = true
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		phoneChanged = phone != guide.Phone
		guide.Phone = phone
		updated = true
	}
	if req.Email != nil {
		guide.Email = strings.TrimSpace(*req.Email)
		updated = true
	}
	if req.Address != nil {
		guide.Address = strings.TrimSpace(*req.Address)
		updated = true
	}
	if req.IdentityCard != nil {
		card := normalizeIdentityCard(req.IdentityCard)
		cardChanged = card != nil && (guide.IdentityCard == nil || *card != *guide.IdentityCard)
		guide.IdentityCard = card
		updated = true
	}
	if req.Certificates != nil {
		if guide.Certificates, err = certificatesFromRequest(*req.Certificates); err != nil {
			return nil, err
		}
		updated = true
	}
	if req.Languages != nil {
		guide.Languages = languagesOrDefault(*req.Languages)
		updated = true
	}
	if req.Experience != nil {
		guide.Experience = experienceFromRequest(req.Experience)
		updated = true
	}
	if req.GroupType != nil {
		guide.GroupType = entity.GroupType(*req.GroupType)
		updated = true
	}
	if req.HealthStatus != nil {
		guide.HealthStatus = entity.HealthStatus(*req.HealthStatus)
		updated = true
	}

	if updated {
		if err := guide.Validate(); err != nil {
			return nil, err
		}
		if err := s.checkUnique(ctx, guide, phoneChanged, cardChanged); err != nil {
			return nil, err
		}

		guide.Touch()
		if guide, err = s.repo.Guide.UpdateProfile(ctx, guide); err != nil {
			return nil, storeErr(err, "update guide", msgGuideNotFound, msgGuideUniqueViolation)
		}
	}

	s.log.Info("Guide updated",
		zap.String("guide_id", guide.ID.String()),
		zap.Bool("was_updated", updated),
	)

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

// checkUnique rejects a phone or identity card already held by another guide.
func (s *guideService) checkUnique(ctx context.Context, guide *entity.Guide, phone, card bool) error {
	if phone {
		other, err := s.repo.Guide.FindByPhone(ctx, guide.Phone)
		if err != nil {
			return fmt.Errorf("check guide phone: %w", err)
		}
		if other != nil && other.ID != guide.ID {
			s.log.Warn("Duplicate guide phone", zap.String("phone", guide.Phone))
			return apperror.Conflict(msgPhoneExists)
		}
	}

	if card && guide.IdentityCard != nil {
		other, err := s.repo.Guide.FindByIdentityCard(ctx, *guide.IdentityCard)
		if err != nil {
			return fmt.Errorf("check guide identity card: %w", err)
		}
		if other != nil && other.ID != guide.ID {
			s.log.Warn("Duplicate guide identity card", zap.String("guide_id", guide.ID.String()))
			return apperror.Conflict(msgIdentityCardExists)
		}
	}
	return nil
}

func (s *guideService) resolveUser(ctx context.Context, raw *string) (*entity.ID, error) {
	id, err := entity.ParseOptionalID(raw, "user")
	if err != nil || id == nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperror.Validation("User not found")
	}
	return id, nil
}

func (s *guideService) DeleteGuide(ctx context.Context, guideID string) error {
	id, err := entity.ParseID(guideID, "guide")
	if err != nil {
		return err
	}

	if err := s.repo.Guide.Delete(ctx, id); err != nil {
		return storeErr(err, "delete guide", msgGuideNotFound, "")
	}

	s.log.Info("Guide deleted", zap.String("guide_id", guideID))
	return nil
}

func (s *guideService) AddRating(ctx context.Context, guideID string, req *request.RatingRequest) (*response.GuideResponse, error) {
	id, err := entity.ParseID(guideID, "guide")
	if err != nil {
		return nil, err
	}
	if req.Score < entity.MinReviewScore || req.Score > entity.MaxReviewScore {
		return nil, apperror.Validation("Score must be between %d and %d", entity.MinReviewScore, entity.MaxReviewScore)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	review := entity.Review{
		Score:      req.Score,
		Comment:    strings.TrimSpace(req.Comment),
		Date:       entity.Now(),
		ReviewedBy: strings.TrimSpace(req.ReviewedBy),
	}

	guide, err := s.repo.Guide.AddReview(ctx, id, review)
	if err != nil {
		return nil, storeErr(err, "add rating", msgGuideNotFound, "")
	}

	s.log.Info("Guide rated",
		zap.String("guide_id", guideID),
		zap.Int("score", review.Score),
		zap.Float64("average", guide.Rating.Average),
		zap.Int("total_reviews", guide.Rating.TotalReviews),
	)
	s.events.emit(ctx, EventGuideRated, map[string]any{
		"guideId":      guideID,
		"score":        review.Score,
		"average":      guide.Rating.Average,
		"totalReviews": guide.Rating.TotalReviews,
	})

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

func (s *guideService) AddHistory(ctx context.Context, guideID string, req *request.HistoryRequest) (*response.GuideResponse, error) {
	id, err := entity.ParseID(guideID, "guide")
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start, err := parseDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperror.Validation("endDate must not be before startDate")
	}

	tourID, err := entity.ParseOptionalID(req.TourID, "tour")
	if err != nil {
		return nil, err
	}
	if tourID != nil {
		tour, err := s.repo.Tour.FindByID(ctx, *tourID)
		if err != nil {
			return nil, fmt.Errorf("find tour: %w", err)
		}
		if tour == nil {
			return nil, apperror.Validation("Tour not found")
		}
	}

	entry := entity.HistoryEntry{
		TourID:    tourID,
		TourName:  strings.TrimSpace(req.TourName),
		StartDate: start,
		EndDate:   end,
		GroupSize: req.GroupSize,
	}

	guide, err := s.repo.Guide.AppendHistory(ctx, id, entry)
	if err != nil {
		return nil, storeErr(err, "add tour history", msgGuideNotFound, "")
	}

	s.log.Info("Guide history appended",
		zap.String("guide_id", guideID),
		zap.String("tour_name", entry.TourName),
	)

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

func (s *guideService) GetStatistics(ctx context.Context) (*response.GuideStatisticsResponse, error) {
	var stats response.GuideStatisticsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.GroupStats, err = s.repo.Guide.GroupStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.HealthStats, err = s.repo.Guide.HealthStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("get guide statistics: %w", err)
	}

	return &stats, nil
}

func languagesOrDefault(raw []string) []string {
	languages := utils.NormalizeStrings(raw)
	if len(languages) == 0 {
		return []string{entity.DefaultLanguage}
	}
	return languages
}

func normalizeIdentityCard(raw *string) *string {
	if raw == nil {
		return nil
	}
	card := strings.TrimSpace(*raw)
	if card == "" {
		return nil
	}
	return &card
}

func experienceFromRequest(req *request.ExperienceRequest) entity.Experience {
	return entity.Experience{
		Years:          *req.Years,
		Specialization: strings.TrimSpace(req.Specialization),
		Description:    strings.TrimSpace(req.Description),
	}
}

func certificatesFromRequest(reqs []request.CertificateRequest) ([]entity.Certificate, error) {
	certificates := make([]entity.Certificate, 0, len(reqs))
	for _, c := range reqs {
		issued, err := parseDate(c.IssueDate, "issueDate")
		if err != nil {
			return nil, err
		}

		var expiry *time.Time
		if c.ExpiryDate != nil && strings.TrimSpace(*c.ExpiryDate) != "" {
			t, err := parseDate(*c.ExpiryDate, "expiryDate")
			if err != nil {
				return nil, err
			}
			expiry = &t
		}

		certificates = append(certificates, entity.Certificate{
			Name:        strings.TrimSpace(c.Name),
			IssueDate:   issued,
			ExpiryDate:  expiry,
			DocumentURL: strings.TrimSpace(c.DocumentURL),
		})
	}
	return certificates, nil
}

// parseDate normalizes to UTC so every backend stores the same instant.
func parseDate(raw, field string) (time.Time, error) {
	t, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperror.ValidationFields("Validation failed", map[string]string{
			field: "Must be a date (YYYY-MM-DD or RFC3339)",
		})
	}
	return t.UTC(), nil
}
