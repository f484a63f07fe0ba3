package request

type UserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone10"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer admin"`
}

type UserFilterRequest struct {
	PaginatedRequest
	Role   string `validate:"omitempty,oneof=customer admin"`
	Search string
}
