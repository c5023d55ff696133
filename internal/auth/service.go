package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campdir/campdir/internal/shared"
)

const resetTokenLifetime = 10 * time.Minute

// Mailer delivers password reset instructions out of band.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// Service wraps account and credential business rules.
type Service struct {
	repo   Repository
	mailer Mailer
}

// NewService constructs a new Service.
func NewService(repo Repository, mailer Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// Register creates an account. Public registration can only mint user and
// publisher roles.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	if role != shared.RoleUser && role != shared.RolePublisher {
		return nil, shared.Tagged(shared.ErrValidation, "role must be one of: user, publisher")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	})
}

// Authenticate validates email/password credentials. Failures are uniform so
// callers cannot distinguish an unknown email from a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Me returns the account behind an identity.
func (s *Service) Me(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateDetails changes name and/or email; empty fields keep their current
// value.
func (s *Service) UpdateDetails(ctx context.Context, id int64, name, email string) (*User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}
	return s.repo.UpdateDetails(ctx, id, name, email)
}

// UpdatePassword replaces the password after checking the current one.
func (s *Service) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, shared.Tagged(shared.ErrUnauthenticated, "Password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a single-use reset token, persists its hash and
// mails the reset link. A delivery failure rolls the token back before the
// error is reported.
func (s *Service) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return shared.Tagged(shared.ErrNotFound, "There is no user with that email")
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(raw)

	if err := s.repo.SetResetToken(ctx, user.ID, hashResetToken(resetToken), time.Now().Add(resetTokenLifetime)); err != nil {
		return err
	}

	resetURL := resetURLBase + "/api/v1/auth/resetpassword/" + resetToken
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		_ = s.repo.ClearResetToken(ctx, user.ID)
		return shared.Tagged(shared.ErrUpstream, "Email could not be sent")
	}
	return nil
}

// ResetPassword consumes a reset token and installs the new password.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) (*User, error) {
	user, err := s.repo.FindByResetToken(ctx, hashResetToken(resetToken), time.Now())
	if err != nil {
		return nil, shared.Tagged(shared.ErrValidation, "Invalid token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}
	if err := s.repo.ClearResetToken(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Only the sha256 of a reset token is stored; the raw token travels in the
// email alone.
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
