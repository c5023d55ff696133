package courses

import (
	"context"
	"errors"

	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/shared"
)

// BootcampDirectory exposes the bootcamp lookups course rules depend on.
type BootcampDirectory interface {
	Get(ctx context.Context, id int64) (*bootcamps.Bootcamp, error)
}

// Service wraps course business rules. Adding a course requires owning the
// parent bootcamp; mutating one requires owning the course.
type Service struct {
	repo      Repository
	bootcamps BootcampDirectory
}

// NewService constructs a new Service.
func NewService(repo Repository, bootcamps BootcampDirectory) *Service {
	return &Service{repo: repo, bootcamps: bootcamps}
}

// List returns one page of courses with their bootcamps expanded.
func (s *Service) List(ctx context.Context, params shared.PageParams) (shared.Page[Course], error) {
	return shared.Paginate(ctx, params, s.repo.List)
}

// ListByBootcamp returns every course of one bootcamp, unpaginated.
func (s *Service) ListByBootcamp(ctx context.Context, bootcampID int64) ([]Course, error) {
	return s.repo.ListByBootcamp(ctx, bootcampID)
}

// Get fetches a single course.
func (s *Service) Get(ctx context.Context, id int64) (*Course, error) {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return course, nil
}

// Create adds a course to a bootcamp. The bootcamp must exist (reported
// first) and belong to the caller unless the caller is an admin.
func (s *Service) Create(ctx context.Context, ident *shared.Identity, bootcampID int64, req CreateCourseRequest) (*Course, error) {
	if ident == nil {
		return nil, shared.ErrUnauthenticated
	}
	bootcamp, err := s.bootcamps.Get(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if !shared.OwnerOrAdmin(ident, bootcamp.UserID) {
		return nil, shared.Tagged(shared.ErrForbidden,
			"User %d is not authorized to add a course to bootcamp %d", ident.ID, bootcampID)
	}

	return s.repo.Create(ctx, &Course{
		BootcampID:           bootcampID,
		UserID:               ident.ID,
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
}

// Update mutates a course after the existence and ownership checks, in
// that order.
func (s *Service) Update(ctx context.Context, ident *shared.Identity, id int64, req UpdateCourseRequest) (*Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shared.OwnerOrAdmin(ident, course.UserID) {
		return nil, shared.Tagged(shared.ErrForbidden,
			"Not authorized to update course %d", id)
	}

	applyUpdate(course, req)
	return s.repo.Update(ctx, course)
}

// Delete removes a course after the existence and ownership checks.
func (s *Service) Delete(ctx context.Context, ident *shared.Identity, id int64) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !shared.OwnerOrAdmin(ident, course.UserID) {
		return shared.Tagged(shared.ErrForbidden,
			"Not authorized to delete course %d", id)
	}
	return s.repo.Delete(ctx, id)
}

func applyUpdate(c *Course, req UpdateCourseRequest) {
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Weeks != nil {
		c.Weeks = *req.Weeks
	}
	if req.Tuition != nil {
		c.Tuition = *req.Tuition
	}
	if req.MinimumSkill != nil {
		c.MinimumSkill = *req.MinimumSkill
	}
	if req.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *req.ScholarshipAvailable
	}
}

func notFound(id int64) error {
	return shared.Tagged(shared.ErrNotFound, "No course with the id of %d", id)
}
