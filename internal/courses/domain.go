package courses

import "time"

// Course belongs to exactly one bootcamp and is owned by the identity that
// created it.
type Course struct {
	ID                   int64     `json:"id"`
	BootcampID           int64     `json:"bootcamp"`
	UserID               int64     `json:"user"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	// BootcampInfo is populated on reads that expand the owning bootcamp.
	BootcampInfo *BootcampRef `json:"bootcampInfo,omitempty"`
}

// BootcampRef is the read-only slice of a bootcamp expanded into course
// results.
type BootcampRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
