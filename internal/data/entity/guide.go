package entity

import (
	"time"

	"tour-booking/pkg/apperror"
)

type GroupType string

const (
	GroupDomestic        GroupType = "domestic"
	GroupInternational   GroupType = "international"
	GroupSpecializedLine GroupType = "specialized_line"
	GroupSpecialist      GroupType = "group_specialist"
)

func (g GroupType) IsValid() bool {
	switch g {
	case GroupDomestic, GroupInternational, GroupSpecializedLine, GroupSpecialist:
		return true
	}
	return false
}

type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthSick    HealthStatus = "sick"
	HealthOnLeave HealthStatus = "on_leave"
	HealthRetired HealthStatus = "retired"
)

func (h HealthStatus) IsValid() bool {
	switch h {
	case HealthHealthy, HealthSick, HealthOnLeave, HealthRetired:
		return true
	}
	return false
}

// Languages a guide may list.
var Languages = []string{
	"Vietnamese", "English", "French", "Chinese", "Japanese", "Korean",
	"German", "Spanish", "Russian", "Italian", "Thai",
}

const DefaultLanguage = "Vietnamese"

func IsSupportedLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

const (
	MinReviewScore = 1
	MaxReviewScore = 5
)

type Certificate struct {
	Name        string     `bson:"name" json:"name"`
	IssueDate   time.Time  `bson:"issueDate" json:"issueDate"`
	ExpiryDate  *time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	DocumentURL string     `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
}

type Experience struct {
	Years          int    `bson:"years" json:"years"`
	Specialization string `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
}

type HistoryEntry struct {
	TourID    *ID       `bson:"tourId,omitempty" json:"tourId,omitempty"`
	TourName  string    `bson:"tourName" json:"tourName"`
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	GroupSize *int      `bson:"groupSize,omitempty" json:"groupSize,omitempty"`
}

type Review struct {
	Score      int       `bson:"score" json:"score"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Date       time.Time `bson:"date" json:"date"`
	ReviewedBy string    `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
}

// Rating is an aggregate over Reviews: Average and TotalReviews are derived.
type Rating struct {
	Average      float64  `bson:"average" json:"average"`
	TotalReviews int      `bson:"totalReviews" json:"totalReviews"`
	Reviews      []Review `bson:"reviews" json:"reviews"`
}

// AddReview appends r and recomputes the aggregate.
func (r *Rating) AddReview(review Review) {
	r.Reviews = append(r.Reviews, review)
	r.Recompute()
}

func (r *Rating) Recompute() {
	r.TotalReviews = len(r.Reviews)
	if r.TotalReviews == 0 {
		r.Average = 0
		return
	}

	sum := 0
	for _, review := range r.Reviews {
		sum += review.Score
	}
	r.Average = float64(sum) / float64(r.TotalReviews)
}

type Guide struct {
	Base         `bson:",inline"`
	UserID       *ID            `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name         string         `bson:"name" json:"name"`
	Birthdate    time.Time      `bson:"birtdate" json:"birtdate"`
	Avatar       string         `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone        string         `bson:"phone" json:"phone"`
	Email        string         `bson:"email,omitempty" json:"email,omitempty"`
	Address      string         `bson:"address,omitempty" json:"address,omitempty"`
	IdentityCard *string        `bson:"identityCard,omitempty" json:"identityCard,omitempty"`
	Certificates []Certificate  `bson:"certificate" json:"certificate"`
	Languages    []string       `bson:"languages" json:"languages"`
	Experience   Experience     `bson:"experience" json:"experience"`
	History      []HistoryEntry `bson:"history" json:"history"`
	Rating       Rating         `bson:"rating" json:"rating"`
	GroupType    GroupType      `bson:"group_type" json:"group_type"`
	HealthStatus HealthStatus   `bson:"health_status" json:"health_status"`
}

// CopyProfile copies every field a guide update may change from src. The
// identity, creation time, rating and history of g are left alone.
func (g *Guide) CopyProfile(src *Guide) {
	g.UpdatedAt = src.UpdatedAt
	g.UserID = src.UserID
	g.Name = src.Name
	g.Birthdate = src.Birthdate
	g.Avatar = src.Avatar
	g.Phone = src.Phone
	g.Email = src.Email
	g.Address = src.Address
	g.IdentityCard = src.IdentityCard
	g.Certificates = src.Certificates
	g.Languages = src.Languages
	g.Experience = src.Experience
	g.GroupType = src.GroupType
	g.HealthStatus = src.HealthStatus
}

// Validate checks the invariants that must hold after every create or update.
func (g *Guide) Validate() error {
	if g.Name == "" {
		return apperror.Validation("Guide name is required")
	}
	if g.Phone == "" {
		return apperror.Validation("Guide phone is required")
	}
	if g.Birthdate.IsZero() {
		return apperror.Validation("Guide birthdate is required")
	}
	if g.Experience.Years < 0 {
		return apperror.Validation("Experience years must not be negative")
	}
	if !g.GroupType.IsValid() {
		return apperror.Validation("Invalid group type %q", g.GroupType)
	}
	if !g.HealthStatus.IsValid() {
		return apperror.Validation("Invalid health status %q", g.HealthStatus)
	}
	for _, lang := range g.Languages {
		if !IsSupportedLanguage(lang) {
			return apperror.Validation("Unsupported language %q", lang)
		}
	}
	return nil
}

type GroupStat struct {
	GroupType     GroupType `bson:"_id" json:"_id"`
	Count         int64     `bson:"count" json:"count"`
	AverageRating float64   `bson:"averageRating" json:"averageRating"`
}

type HealthStat struct {
	HealthStatus HealthStatus `bson:"_id" json:"_id"`
	Count        int64        `bson:"count" json:"count"`
}
