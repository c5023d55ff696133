package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir/internal/shared"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	UpdateDetails(ctx context.Context, id int64, name, email string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetResetToken(ctx context.Context, id int64, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id int64) error
}

const userColumns = `id, name, email, role, password_hash,
	COALESCE(reset_password_token, ''), COALESCE(reset_password_expire, 'epoch'::timestamptz),
	created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash,
		&user.ResetPasswordToken, &user.ResetPasswordExpire,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID fetches a user by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByResetToken fetches the user holding an unexpired reset token hash.
func (r *PGRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_password_token = $1 AND reset_password_expire > $2`,
		tokenHash, now)
	return scanUser(row)
}

// Create inserts a new account and returns it with generated fields.
func (r *PGRepository) Create(ctx context.Context, user *User) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		user.Name, user.Email, user.Role, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	return created, nil
}

// UpdateDetails changes name and email, returning the updated record.
func (r *PGRepository) UpdateDetails(ctx context.Context, id int64, name, email string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, email = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, name, email)
	updated, err := scanUser(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	return updated, nil
}

// UpdatePassword stores a new password hash.
func (r *PGRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetResetToken records the hashed reset token and its expiry.
func (r *PGRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expire time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET reset_password_token = $2, reset_password_expire = $3, updated_at = now() WHERE id = $1`,
		id, tokenHash, expire)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearResetToken removes any pending reset token.
func (r *PGRepository) ClearResetToken(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET reset_password_token = NULL, reset_password_expire = NULL, updated_at = now() WHERE id = $1`,
		id)
	return err
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.Tagged(shared.ErrDuplicate, "an account with that email already exists")
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
