package request

type CertificateRequest struct {
	Name        string  `json:"name" validate:"required"`
	IssueDate   string  `json:"issueDate" validate:"required,date"`
	ExpiryDate  *string `json:"expiryDate,omitempty" validate:"omitempty,date"`
	DocumentURL string  `json:"documentUrl,omitempty"`
}

type ExperienceRequest struct {
	Years          *int   `json:"years" validate:"required,gte=0"`
	Specialization string `json:"specialization,omitempty"`
	Description    string `json:"description,omitempty"`
}

type GuideRequest struct {
	UserID       *string              `json:"user_id,omitempty"`
	Name         string               `json:"name" validate:"required,max=100"`
	Birthdate    string               `json:"birtdate" validate:"required,date"`
	Avatar       string               `json:"avatar,omitempty"`
	Phone        string               `json:"phone" validate:"required,max=20"`
	Email        string               `json:"email,omitempty" validate:"omitempty,email"`
	Address      string               `json:"address,omitempty"`
	IdentityCard *string              `json:"identityCard,omitempty"`
	Certificates []CertificateRequest `json:"certificate,omitempty" validate:"omitempty,dive"`
	Languages    []string             `json:"languages,omitempty" validate:"omitempty,dive,oneof=Vietnamese English French Chinese Japanese Korean German Spanish Russian Italian Thai"`
	Experience   *ExperienceRequest   `json:"experience" validate:"required"`
	GroupType    string               `json:"group_type,omitempty" validate:"omitempty,oneof=domestic international specialized_line group_specialist"`
	HealthStatus string               `json:"health_status,omitempty" validate:"omitempty,oneof=healthy sick on_leave retired"`
}

type GuideUpdateRequest struct {
	Name         *string               `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Birthdate    *string               `json:"birtdate,omitempty" validate:"omitempty,date"`
	Avatar       *string               `json:"avatar,omitempty"`
	Phone        *string               `json:"phone,omitempty" validate:"omitempty,min=1,max=20"`
	Email        *string               `json:"email,omitempty" validate:"omitempty,email"`
	Address      *string               `json:"address,omitempty"`
	IdentityCard *string               `json:"identityCard,omitempty"`
	Certificates *[]CertificateRequest `json:"certificate,omitempty" validate:"omitempty,dive"`
	Languages    *[]string             `json:"languages,omitempty" validate:"omitempty,dive,oneof=Vietnamese English French Chinese Japanese Korean German Spanish Russian Italian Thai"`
	Experience   *ExperienceRequest    `json:"experience,omitempty"`
	GroupType    *string               `json:"group_type,omitempty" validate:"omitempty,oneof=domestic international specialized_line group_specialist"`
	HealthStatus *string               `json:"health_status,omitempty" validate:"omitempty,oneof=healthy sick on_leave retired"`
}

type RatingRequest struct {
	Score      int    `json:"score" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty" validate:"max=1000"`
	ReviewedBy string `json:"reviewedBy,omitempty" validate:"max=100"`
}

type HistoryRequest struct {
	TourID    *string `json:"tourId,omitempty"`
	TourName  string  `json:"tourName" validate:"required"`
	StartDate string  `json:"startDate" validate:"required,date"`
	EndDate   string  `json:"endDate" validate:"required,date"`
	GroupSize *int    `json:"groupSize,omitempty" validate:"omitempty,min=1"`
}

type GuideFilterRequest struct {
	PaginatedRequest
	GroupType    string `validate:"omitempty,oneof=domestic international specialized_line group_specialist"`
	HealthStatus string `validate:"omitempty,oneof=healthy sick on_leave retired"`
	Language     string `validate:"omitempty,oneof=Vietnamese English French Chinese Japanese Korean German Spanish Russian Italian Thai"`
	Search       string
}
