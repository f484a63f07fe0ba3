package entity

import (
	"tour-booking/pkg/apperror"
)

type TourStatus string

const (
	TourStatusDraft    TourStatus = "draft"
	TourStatusActive   TourStatus = "active"
	TourStatusInactive TourStatus = "inactive"
)

func (s TourStatus) IsValid() bool {
	switch s {
	case TourStatusDraft, TourStatusActive, TourStatusInactive:
		return true
	}
	return false
}

type ScheduleDay struct {
	Day        int      `bson:"day" json:"day"`
	Title      string   `bson:"title" json:"title"`
	Activities []string `bson:"activities" json:"activities"`
}

type PriceTier struct {
	Title  string  `bson:"title" json:"title"`
	Amount float64 `bson:"amount" json:"amount"`
	Note   string  `bson:"note,omitempty" json:"note,omitempty"`
}

type Tour struct {
	Base        `bson:",inline"`
	CategoryID  *ID           `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Description string        `bson:"description" json:"description"`
	Duration    int           `bson:"duration" json:"duration"` // days
	Price       float64       `bson:"price" json:"price"`
	Status      TourStatus    `bson:"status" json:"status"`
	Schedule    []ScheduleDay `bson:"schedule" json:"schedule"`
	Images      []string      `bson:"images" json:"images"`
	Prices      []PriceTier   `bson:"prices" json:"prices"`
	Policies    []string      `bson:"policies" json:"policies"`
	Suppliers   []string      `bson:"suppliers" json:"suppliers"`
}

// Validate checks the invariants that must hold after every create or update.
func (t *Tour) Validate() error {
	if t.Description == "" {
		return apperror.Validation("Tour description is required")
	}
	if t.Duration < 1 {
		return apperror.Validation("Tour duration must be at least 1 day")
	}
	if t.Price < 0 {
		return apperror.Validation("Tour price must not be negative")
	}
	if !t.Status.IsValid() {
		return apperror.Validation("Tour status must be one of: draft, active, inactive")
	}
	for _, tier := range t.Prices {
		if tier.Amount < 0 {
			return apperror.Validation("Price tier %q must not be negative", tier.Title)
		}
	}
	return nil
}
