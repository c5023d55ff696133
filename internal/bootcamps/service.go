package bootcamps

import (
	"context"
	"errors"
	"fmt"

	"github.com/campdir/campdir/internal/shared"
)

// Service wraps bootcamp business rules: the one-bootcamp-per-publisher
// invariant and owner-or-admin mutation checks.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs a new Service. cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns one page of bootcamps, served from the list cache when warm.
func (s *Service) List(ctx context.Context, params shared.PageParams) (shared.Page[Bootcamp], error) {
	key := fmt.Sprintf("bootcamps:list:p%d:l%d:s%d:asc%t",
		params.Page, params.Limit, params.StartIndex, params.Ascending)
	var page shared.Page[Bootcamp]
	err := s.cache.FetchJSON(ctx, key, &page, func(ctx context.Context) (any, error) {
		return shared.Paginate(ctx, params, s.repo.List)
	})
	return page, err
}

// Get fetches a single bootcamp.
func (s *Service) Get(ctx context.Context, id int64) (*Bootcamp, error) {
	bootcamp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return bootcamp, nil
}

// Create publishes a bootcamp owned by the caller. Non-admin accounts may
// publish at most one.
func (s *Service) Create(ctx context.Context, ident *shared.Identity, req CreateBootcampRequest) (*Bootcamp, error) {
	if ident == nil {
		return nil, shared.ErrUnauthenticated
	}
	existing, err := s.repo.FindByOwner(ctx, ident.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && ident.Role != shared.RoleAdmin {
		return nil, shared.Tagged(shared.ErrDuplicate,
			"The user with ID %d has already published a bootcamp", ident.ID)
	}

	created, err := s.repo.Create(ctx, &Bootcamp{
		UserID:      ident.ID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Careers:     req.Careers,
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Bump(ctx)
	return created, nil
}

// Update mutates a bootcamp after the existence and ownership checks, in
// that order.
func (s *Service) Update(ctx context.Context, ident *shared.Identity, id int64, req UpdateBootcampRequest) (*Bootcamp, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shared.OwnerOrAdmin(ident, bootcamp.UserID) {
		return nil, shared.Tagged(shared.ErrForbidden,
			"Not authorized to update bootcamp %d", id)
	}

	applyUpdate(bootcamp, req)
	updated, err := s.repo.Update(ctx, bootcamp)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Bump(ctx)
	return updated, nil
}

// Delete removes a bootcamp after the existence and ownership checks.
func (s *Service) Delete(ctx context.Context, ident *shared.Identity, id int64) error {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !shared.OwnerOrAdmin(ident, bootcamp.UserID) {
		return shared.Tagged(shared.ErrForbidden,
			"Not authorized to delete bootcamp %d", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Bump(ctx)
	return nil
}

// AuthorizePhotoUpload runs the existence and ownership checks ahead of the
// actual file write.
func (s *Service) AuthorizePhotoUpload(ctx context.Context, ident *shared.Identity, id int64) (*Bootcamp, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shared.OwnerOrAdmin(ident, bootcamp.UserID) {
		return nil, shared.Tagged(shared.ErrForbidden,
			"Not authorized to update bootcamp %d", id)
	}
	return bootcamp, nil
}

// SetPhoto records the stored photo file name after a successful upload.
func (s *Service) SetPhoto(ctx context.Context, id int64, filename string) error {
	if err := s.repo.SetPhoto(ctx, id, filename); err != nil {
		return err
	}
	_ = s.cache.Bump(ctx)
	return nil
}

func applyUpdate(b *Bootcamp, req UpdateBootcampRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Website != nil {
		b.Website = *req.Website
	}
	if req.Email != nil {
		b.Email = *req.Email
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Careers != nil {
		b.Careers = *req.Careers
	}
}

func notFound(id int64) error {
	return shared.Tagged(shared.ErrNotFound, "Bootcamp not found with id of %d", id)
}
