package reviews

import (
	"context"
	"errors"

	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/shared"
)

// BootcampDirectory is the slice of the bootcamp service reviews depend on.
type BootcampDirectory interface {
	Get(ctx context.Context, id int64) (*bootcamps.Bootcamp, error)
}

// Service implements review business rules.
type Service struct {
	repo      Repository
	bootcamps BootcampDirectory
}

// NewService constructs a review Service.
func NewService(repo Repository, directory BootcampDirectory) *Service {
	return &Service{repo: repo, bootcamps: directory}
}

func notFound(id int64) error {
	return shared.Tagged(shared.ErrNotFound, "No review found with the id of %d", id)
}

// List returns one page of all reviews.
func (s *Service) List(ctx context.Context, params shared.PageParams) (shared.Page[Review], error) {
	return shared.Paginate(ctx, params, s.repo.List)
}

// ListByBootcamp returns every review left on the given bootcamp.
func (s *Service) ListByBootcamp(ctx context.Context, bootcampID int64) ([]Review, error) {
	if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.repo.ListByBootcamp(ctx, bootcampID)
}

// Get loads a single review.
func (s *Service) Get(ctx context.Context, id int64) (*Review, error) {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return review, nil
}

// Create adds a review to a bootcamp. The bootcamp must exist, and the
// repository enforces one review per user per bootcamp.
func (s *Service) Create(ctx context.Context, ident *shared.Identity, bootcampID int64, req CreateReviewRequest) (*Review, error) {
	if ident == nil {
		return nil, shared.ErrUnauthenticated
	}
	if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &Review{
		BootcampID: bootcampID,
		UserID:     ident.ID,
		Title:      req.Title,
		Text:       req.Text,
		Rating:     req.Rating,
	})
}

// Update edits a review owned by the caller. Admins may edit any review.
func (s *Service) Update(ctx context.Context, ident *shared.Identity, id int64, req UpdateReviewRequest) (*Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shared.OwnerOrAdmin(ident, review.UserID) {
		return nil, shared.Tagged(shared.ErrForbidden, "Not authorized to update review %d", id)
	}
	applyUpdate(review, req)
	return s.repo.Update(ctx, review)
}

// Delete removes a review owned by the caller. Admins may delete any review.
func (s *Service) Delete(ctx context.Context, ident *shared.Identity, id int64) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !shared.OwnerOrAdmin(ident, review.UserID) {
		return shared.Tagged(shared.ErrForbidden, "Not authorized to delete review %d", id)
	}
	return s.repo.Delete(ctx, id)
}

func applyUpdate(review *Review, req UpdateReviewRequest) {
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
}
