package bootcamps

// CreateBootcampRequest is the body of POST /bootcamps.
type CreateBootcampRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"omitempty,max=20"`
	Address     string   `json:"address" validate:"required"`
	Careers     []string `json:"careers" validate:"required,min=1"`
}

// UpdateBootcampRequest is the body of PUT /bootcamps/{id}; absent fields
// keep their current value.
type UpdateBootcampRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Website     *string   `json:"website,omitempty" validate:"omitempty,url"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address     *string   `json:"address,omitempty" validate:"omitempty,min=1"`
	Careers     *[]string `json:"careers,omitempty" validate:"omitempty,min=1"`
}
