package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *entity.Guide) error
	FindByID(ctx context.Context, id entity.ID) (*entity.Guide, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Guide, error)
	FindByIdentityCard(ctx context.Context, card string) (*entity.Guide, error)
	// UpdateProfile writes the profile fields of guide (see
	// entity.Guide.CopyProfile) and returns the stored document. Rating and
	// history are only changed through AddReview and AppendHistory.
	UpdateProfile(ctx context.Context, guide *entity.Guide) (*entity.Guide, error)
	Delete(ctx context.Context, id entity.ID) error
	FindAll(ctx context.Context, filter GuideFilter, page Page) ([]*entity.Guide, error)
	Count(ctx context.Context, filter GuideFilter) (int64, error)

	// AddReview appends review and recomputes rating.average and
	// rating.totalReviews in one atomic write. Returns the updated guide.
	AddReview(ctx context.Context, id entity.ID, review entity.Review) (*entity.Guide, error)
	AppendHistory(ctx context.Context, id entity.ID, entry entity.HistoryEntry) (*entity.Guide, error)

	GroupStats(ctx context.Context) ([]entity.GroupStat, error)
	HealthStats(ctx context.Context) ([]entity.HealthStat, error)
}

type guideRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewGuideRepository(db *mongo.Database, log *zap.Logger) GuideRepository {
	return &guideRepository{
		coll: db.Collection(collGuides),
		log:  log.With(zap.String("repository", "guide")),
	}
}

func (r *guideRepository) Create(ctx context.Context, guide *entity.Guide) error {
	if _, err := r.coll.InsertOne(ctx, guide); err != nil {
		err = mongoWriteErr(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create guide",
				zap.Error(err),
				zap.String("guide_id", guide.ID.String()),
			)
		}
		return fmt.Errorf("failed to create guide: %w", err)
	}
	return nil
}

func (r *guideRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Guide, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *guideRepository) FindByPhone(ctx context.Context, phone string) (*entity.Guide, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *guideRepository) FindByIdentityCard(ctx context.Context, card string) (*entity.Guide, error) {
	return r.findOne(ctx, bson.M{"identityCard": card})
}

func (r *guideRepository) findOne(ctx context.Context, query bson.M) (*entity.Guide, error) {
	var guide entity.Guide
	err := r.coll.FindOne(ctx, query).Decode(&guide)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guide", zap.Error(err), zap.Any("query", query))
		return nil, fmt.Errorf("failed to find guide: %w", err)
	}
	return &guide, nil
}

func (r *guideRepository) UpdateProfile(ctx context.Context, guide *entity.Guide) (*entity.Guide, error) {
	set := bson.M{
		"updated_at":    guide.UpdatedAt,
		"name":          guide.Name,
		"birtdate":      guide.Birthdate,
		"avatar":        guide.Avatar,
		"phone":         guide.Phone,
		"email":         guide.Email,
		"address":       guide.Address,
		"certificate":   guide.Certificates,
		"languages":     guide.Languages,
		"experience":    guide.Experience,
		"group_type":    guide.GroupType,
		"health_status": guide.HealthStatus,
	}
	unset := bson.M{}
	if guide.UserID != nil {
		set["user_id"] = guide.UserID
	} else {
		unset["user_id"] = ""
	}
	// identityCard stays absent when empty so the sparse unique index skips it
	if guide.IdentityCard != nil {
		set["identityCard"] = guide.IdentityCard
	} else {
		unset["identityCard"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	stored, err := r.findOneAndUpdate(ctx, guide.ID, update)
	if err != nil {
		err = mongoWriteErr(err)
		return nil, fmt.Errorf("failed to update guide: %w", err)
	}
	return stored, nil
}

func (r *guideRepository) Delete(ctx context.Context, id entity.ID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete guide",
			zap.Error(err),
			zap.String("guide_id", id.String()),
		)
		return fmt.Errorf("failed to delete guide: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.log.Info("Guide deleted", zap.String("guide_id", id.String()))
	return nil
}

func (r *guideRepository) FindAll(ctx context.Context, filter GuideFilter, page Page) ([]*entity.Guide, error) {
	cursor, err := r.coll.Find(ctx, guideQuery(filter), pageOptions(page))
	if err != nil {
		r.log.Error("Failed to find guides",
			zap.Error(err),
			zap.Int("offset", page.Offset),
			zap.Int("limit", page.Limit),
		)
		return nil, fmt.Errorf("failed to find guides: %w", err)
	}
	defer cursor.Close(ctx)

	guides := make([]*entity.Guide, 0, page.Limit)
	if err := cursor.All(ctx, &guides); err != nil {
		r.log.Error("Failed to decode guides", zap.Error(err))
		return nil, fmt.Errorf("failed to decode guides: %w", err)
	}

	r.log.Debug("Guides found", zap.Int("count", len(guides)))
	return guides, nil
}

func (r *guideRepository) Count(ctx context.Context, filter GuideFilter) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, guideQuery(filter))
	if err != nil {
		r.log.Error("Failed to count guides", zap.Error(err))
		return 0, fmt.Errorf("failed to count guides: %w", err)
	}
	return total, nil
}

func (r *guideRepository) AddReview(ctx context.Context, id entity.ID, review entity.Review) (*entity.Guide, error) {
	// Append and aggregate in the same update pipeline so concurrent reviews
	// cannot overwrite each other. $literal keeps "$..." comments from being
	// read as field paths.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating.reviews", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$rating.reviews", bson.A{}}}},
				bson.A{bson.D{{Key: "$literal", Value: review}}},
			}}}},
			{Key: "updated_at", Value: entity.Now()},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "rating.totalReviews", Value: bson.D{{Key: "$size", Value: "$rating.reviews"}}},
			{Key: "rating.average", Value: bson.D{{Key: "$avg", Value: "$rating.reviews.score"}}},
		}}},
	}

	guide, err := r.findOneAndUpdate(ctx, id, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	return guide, nil
}

func (r *guideRepository) AppendHistory(ctx context.Context, id entity.ID, entry entity.HistoryEntry) (*entity.Guide, error) {
	update := bson.M{
		"$push": bson.M{"history": entry},
		"$set":  bson.M{"updated_at": entity.Now()},
	}

	guide, err := r.findOneAndUpdate(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	return guide, nil
}

func (r *guideRepository) findOneAndUpdate(ctx context.Context, id entity.ID, update any) (*entity.Guide, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var guide entity.Guide
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&guide)
	if isNoDocuments(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update guide",
			zap.Error(err),
			zap.String("guide_id", id.String()),
		)
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) GroupStats(ctx context.Context) ([]entity.GroupStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$group_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating.average"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	stats := []entity.GroupStat{}
	if err := r.aggregate(ctx, pipeline, &stats); err != nil {
		return nil, fmt.Errorf("failed to aggregate group stats: %w", err)
	}
	return stats, nil
}

func (r *guideRepository) HealthStats(ctx context.Context) ([]entity.HealthStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$health_status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	stats := []entity.HealthStat{}
	if err := r.aggregate(ctx, pipeline, &stats); err != nil {
		return nil, fmt.Errorf("failed to aggregate health stats: %w", err)
	}
	return stats, nil
}

func (r *guideRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.log.Error("Failed to aggregate guides", zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func guideQuery(filter GuideFilter) bson.M {
	query := bson.M{}
	if filter.GroupType != "" {
		query["group_type"] = filter.GroupType
	}
	if filter.HealthStatus != "" {
		query["health_status"] = filter.HealthStatus
	}
	if filter.Language != "" {
		// matches array membership
		query["languages"] = filter.Language
	}
	if filter.Search != "" {
		query["$or"] = searchAny(filter.Search, "name", "phone", "email")
	}
	return query
}
