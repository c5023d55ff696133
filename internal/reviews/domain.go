package reviews

import "time"

// Review is a rating a user leaves on a bootcamp. Each user may review a
// given bootcamp at most once.
type Review struct {
	ID         int64     `json:"id"`
	BootcampID int64     `json:"bootcamp"`
	UserID     int64     `json:"user"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
