package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type RatingResponse struct {
	Average      float64         `json:"average"`
	TotalReviews int             `json:"totalReviews"`
	Reviews      []entity.Review `json:"reviews"`
}

type GuideResponse struct {
	ID           string                `json:"id"`
	UserID       *string               `json:"user_id"`
	Name         string                `json:"name"`
	Birthdate    time.Time             `json:"birtdate"`
	Avatar       string                `json:"avatar,omitempty"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email,omitempty"`
	Address      string                `json:"address,omitempty"`
	IdentityCard *string               `json:"identityCard,omitempty"`
	Certificates []entity.Certificate  `json:"certificate"`
	Languages    []string              `json:"languages"`
	Experience   entity.Experience     `json:"experience"`
	History      []entity.HistoryEntry `json:"history"`
	Rating       RatingResponse        `json:"rating"`
	GroupType    entity.GroupType      `json:"group_type"`
	HealthStatus entity.HealthStatus   `json:"health_status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"update_at"`
}

// GuideDetailResponse embeds the linked user account when there is one.
type GuideDetailResponse struct {
	GuideResponse
	User *UserResponse `json:"user,omitempty"`
}

type GuideStatisticsResponse struct {
	GroupStats  []entity.GroupStat  `json:"groupStats"`
	HealthStats []entity.HealthStat `json:"healthStats"`
}

func GuideToResponse(guide *entity.Guide) GuideResponse {
	return GuideResponse{
		ID:           guide.ID.String(),
		UserID:       idPtr(guide.UserID),
		Name:         guide.Name,
		Birthdate:    guide.Birthdate,
		Avatar:       guide.Avatar,
		Phone:        guide.Phone,
		Email:        guide.Email,
		Address:      guide.Address,
		IdentityCard: guide.IdentityCard,
		Certificates: nonNil(guide.Certificates),
		Languages:    nonNil(guide.Languages),
		Experience:   guide.Experience,
		History:      nonNil(guide.History),
		Rating: RatingResponse{
			Average:      guide.Rating.Average,
			TotalReviews: guide.Rating.TotalReviews,
			Reviews:      nonNil(guide.Rating.Reviews),
		},
		GroupType:    guide.GroupType,
		HealthStatus: guide.HealthStatus,
		CreatedAt:    guide.CreatedAt,
		UpdatedAt:    guide.UpdatedAt,
	}
}

func GuideToDetailResponse(guide *entity.Guide, user *entity.User) GuideDetailResponse {
	detail := GuideDetailResponse{GuideResponse: GuideToResponse(guide)}
	if user != nil {
		u := UserToResponse(user)
		detail.User = &u
	}
	return detail
}
