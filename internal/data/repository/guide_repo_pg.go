package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const tableGuides = "guides"

type pgGuideRepository struct {
	docs pgDocs[entity.Guide]
}

func NewPgGuideRepository(db database.PgxIface, log *zap.Logger) GuideRepository {
	return &pgGuideRepository{
		docs: newPgDocs[entity.Guide](db, tableGuides, log.With(zap.String("repository", "guide"))),
	}
}

func (r *pgGuideRepository) Create(ctx context.Context, guide *entity.Guide) error {
	if err := r.docs.insert(ctx, guide.Base, guide); err != nil {
		return fmt.Errorf("failed to create guide: %w", err)
	}
	return nil
}

func (r *pgGuideRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Guide, error) {
	guide, err := r.docs.findByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find guide: %w", err)
	}
	return guide, nil
}

func (r *pgGuideRepository) FindByPhone(ctx context.Context, phone string) (*entity.Guide, error) {
	return r.findByField(ctx, "phone", phone)
}

func (r *pgGuideRepository) FindByIdentityCard(ctx context.Context, card string) (*entity.Guide, error) {
	return r.findByField(ctx, "identityCard", card)
}

func (r *pgGuideRepository) findByField(ctx context.Context, field, value string) (*entity.Guide, error) {
	var where pgWhere
	where.field(field, value)

	guide, err := r.docs.findOne(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("failed to find guide: %w", err)
	}
	return guide, nil
}

// UpdateProfile merges the profile into the locked row so a review or
// history entry written meanwhile is kept.
func (r *pgGuideRepository) UpdateProfile(ctx context.Context, guide *entity.Guide) (*entity.Guide, error) {
	stored, err := r.docs.update(ctx, guide.ID, func(g *entity.Guide) time.Time {
		g.CopyProfile(guide)
		return g.UpdatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update guide: %w", err)
	}
	return stored, nil
}

func (r *pgGuideRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.docs.delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete guide: %w", err)
	}
	return nil
}

func (r *pgGuideRepository) FindAll(ctx context.Context, filter GuideFilter, page Page) ([]*entity.Guide, error) {
	guides, err := r.docs.list(ctx, guideWhere(filter), pgNewestFirst, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find guides: %w", err)
	}
	return guides, nil
}

func (r *pgGuideRepository) Count(ctx context.Context, filter GuideFilter) (int64, error) {
	total, err := r.docs.count(ctx, guideWhere(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count guides: %w", err)
	}
	return total, nil
}

// AddReview locks the row so concurrent reviews serialize.
func (r *pgGuideRepository) AddReview(ctx context.Context, id entity.ID, review entity.Review) (*entity.Guide, error) {
	guide, err := r.docs.update(ctx, id, func(g *entity.Guide) time.Time {
		g.Rating.AddReview(review)
		g.Touch()
		return g.UpdatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	return guide, nil
}

func (r *pgGuideRepository) AppendHistory(ctx context.Context, id entity.ID, entry entity.HistoryEntry) (*entity.Guide, error) {
	guide, err := r.docs.update(ctx, id, func(g *entity.Guide) time.Time {
		g.History = append(g.History, entry)
		g.Touch()
		return g.UpdatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	return guide, nil
}

func (r *pgGuideRepository) GroupStats(ctx context.Context) ([]entity.GroupStat, error) {
	query := `
		SELECT doc->>'group_type', COUNT(*), COALESCE(AVG((doc->'rating'->>'average')::float8), 0)
		FROM guides
		GROUP BY doc->>'group_type'
		ORDER BY doc->>'group_type'`

	rows, err := r.docs.db.Query(ctx, query)
	if err != nil {
		r.docs.log.Error("Failed to aggregate group stats", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate group stats: %w", err)
	}
	defer rows.Close()

	stats := []entity.GroupStat{}
	for rows.Next() {
		var stat entity.GroupStat
		if err := rows.Scan(&stat.GroupType, &stat.Count, &stat.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan group stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *pgGuideRepository) HealthStats(ctx context.Context) ([]entity.HealthStat, error) {
	query := `
		SELECT doc->>'health_status', COUNT(*)
		FROM guides
		GROUP BY doc->>'health_status'
		ORDER BY doc->>'health_status'`

	rows, err := r.docs.db.Query(ctx, query)
	if err != nil {
		r.docs.log.Error("Failed to aggregate health stats", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate health stats: %w", err)
	}
	defer rows.Close()

	stats := []entity.HealthStat{}
	for rows.Next() {
		var stat entity.HealthStat
		if err := rows.Scan(&stat.HealthStatus, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan health stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func guideWhere(filter GuideFilter) pgWhere {
	var where pgWhere
	if filter.GroupType != "" {
		where.field("group_type", filter.GroupType)
	}
	if filter.HealthStatus != "" {
		where.field("health_status", filter.HealthStatus)
	}
	if filter.Language != "" {
		where.contains("languages", filter.Language)
	}
	if filter.Search != "" {
		where.search(filter.Search, "name", "phone", "email")
	}
	return where
}
