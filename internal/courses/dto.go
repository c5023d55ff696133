package courses

// CreateCourseRequest is the body of POST /bootcamps/{bootcampID}/courses.
type CreateCourseRequest struct {
	Title                string  `json:"title" validate:"required"`
	Description          string  `json:"description" validate:"required"`
	Weeks                int     `json:"weeks" validate:"required,gte=1"`
	Tuition              float64 `json:"tuition" validate:"required,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

// UpdateCourseRequest is the body of PUT /courses/{id}; absent fields keep
// their current value.
type UpdateCourseRequest struct {
	Title                *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description          *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Weeks                *int     `json:"weeks,omitempty" validate:"omitempty,gte=1"`
	Tuition              *float64 `json:"tuition,omitempty" validate:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable,omitempty"`
}
