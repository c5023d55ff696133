package reviews

// CreateReviewRequest carries a new review for a bootcamp.
type CreateReviewRequest struct {
	Title  string `json:"title" validate:"required,max=100"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
}

// UpdateReviewRequest carries a partial review update. Absent fields keep
// their stored values.
type UpdateReviewRequest struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Text   *string `json:"text,omitempty"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
}
