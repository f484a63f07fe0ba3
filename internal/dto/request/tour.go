package request

type ScheduleDayRequest struct {
	Day        int      `json:"day" validate:"min=1"`
	Title      string   `json:"title" validate:"required,max=200"`
	Activities TextList `json:"activities"`
}

type PriceTierRequest struct {
	Title  string   `json:"title" validate:"required,max=200"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Note   string   `json:"note,omitempty"`
}

type TourRequest struct {
	CategoryID  *string              `json:"category_id,omitempty"`
	Description string               `json:"description" validate:"required"`
	Duration    *int                 `json:"duration_" validate:"required,min=1"`
	Price       *float64             `json:"price" validate:"required,gte=0"`
	Status      string               `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
	Schedule    []ScheduleDayRequest `json:"schedule,omitempty" validate:"omitempty,dive"`
	Images      []string             `json:"images,omitempty"`
	Prices      []PriceTierRequest   `json:"prices,omitempty" validate:"omitempty,dive"`
	Policies    TextList             `json:"policies,omitempty"`
	Suppliers   TextList             `json:"suppliers,omitempty"`
}

// TourUpdateRequest applies only the fields present in the body. An empty
// category_id clears the category.
type TourUpdateRequest struct {
	CategoryID  *string               `json:"category_id,omitempty"`
	Description *string               `json:"description,omitempty" validate:"omitempty,min=1"`
	Duration    *int                  `json:"duration_,omitempty" validate:"omitempty,min=1"`
	Price       *float64              `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status      *string               `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
	Schedule    *[]ScheduleDayRequest `json:"schedule,omitempty" validate:"omitempty,dive"`
	Images      *[]string             `json:"images,omitempty"`
	Prices      *[]PriceTierRequest   `json:"prices,omitempty" validate:"omitempty,dive"`
	Policies    *TextList             `json:"policies,omitempty"`
	Suppliers   *TextList             `json:"suppliers,omitempty"`
}

type TourFilterRequest struct {
	PaginatedRequest
	Status     string `validate:"omitempty,oneof=draft active inactive"`
	CategoryID string
	Search     string
}
