package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/shared"
)

// Service implements the admin account management rules.
type Service struct {
	repo Repository
}

// NewService constructs a user Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func notFound(id int64) error {
	return shared.Tagged(shared.ErrNotFound, "No user with the id of %d", id)
}

// List returns one page of accounts.
func (s *Service) List(ctx context.Context, params shared.PageParams) (shared.Page[auth.User], error) {
	return shared.Paginate(ctx, params, s.repo.List)
}

// Get loads a single account.
func (s *Service) Get(ctx context.Context, id int64) (*auth.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return user, nil
}

// Create provisions an account with any role. The password is hashed with
// bcrypt before hitting storage.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*auth.User, error) {
	role := req.Role
	if role == "" {
		role = shared.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, &auth.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: string(hash),
	})
}

// Update edits an account. Absent fields keep their stored values.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*auth.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	return s.repo.Update(ctx, user)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return notFound(id)
		}
		return err
	}
	return nil
}
