package bootcamps

import "time"

// Bootcamp is a published training camp. UserID references the owning
// identity; a non-admin account owns at most one bootcamp.
type Bootcamp struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address"`
	Careers     []string  `json:"careers"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
