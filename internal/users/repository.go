package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/shared"
)

// Repository abstracts account persistence for the admin surface.
type Repository interface {
	List(ctx context.Context, window shared.Window) ([]auth.User, int, error)
	Get(ctx context.Context, id int64) (*auth.User, error)
	Create(ctx context.Context, user *auth.User) (*auth.User, error)
	Update(ctx context.Context, user *auth.User) (*auth.User, error)
	Delete(ctx context.Context, id int64) error
}

const userColumns = `id, name, email, role, password_hash,
	COALESCE(reset_password_token, ''), COALESCE(reset_password_expire, 'epoch'::timestamptz),
	created_at, updated_at`

// PGRepository persists accounts in PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PGRepository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// List returns one page of accounts plus the total account count.
func (r *PGRepository) List(ctx context.Context, window shared.Window) ([]auth.User, int, error) {
	direction := "ASC"
	if window.Descending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at %s OFFSET $1 LIMIT $2`, userColumns, direction)

	rows, err := r.pool.Query(ctx, query, window.Offset, window.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]auth.User, 0, window.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// Get loads a single account by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// Create inserts a new account.
func (r *PGRepository) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, userColumns)

	created, err := scanUser(r.pool.QueryRow(ctx, query, user.Name, user.Email, user.Role, user.PasswordHash))
	if err != nil {
		return nil, translateUnique(err)
	}
	return created, nil
}

// Update persists edited name, email and role.
func (r *PGRepository) Update(ctx context.Context, user *auth.User) (*auth.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET name = $2, email = $3, role = $4, updated_at = now()
		WHERE id = $1
		RETURNING %s`, userColumns)

	updated, err := scanUser(r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.Role))
	if err != nil {
		return nil, translateUnique(err)
	}
	return updated, nil
}

// Delete removes an account by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.Tagged(shared.ErrDuplicate, "an account with that email already exists")
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
