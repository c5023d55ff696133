package bootcamps

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir/internal/shared"
)

// Repository defines persistence operations for bootcamps.
type Repository interface {
	List(ctx context.Context, window shared.Window) ([]Bootcamp, int, error)
	Get(ctx context.Context, id int64) (*Bootcamp, error)
	FindByOwner(ctx context.Context, userID int64) (*Bootcamp, error)
	Create(ctx context.Context, bootcamp *Bootcamp) (*Bootcamp, error)
	Update(ctx context.Context, bootcamp *Bootcamp) (*Bootcamp, error)
	Delete(ctx context.Context, id int64) error
	SetPhoto(ctx context.Context, id int64, filename string) error
}

const bootcampColumns = `id, user_id, name, description,
	COALESCE(website, ''), COALESCE(email, ''), COALESCE(phone, ''),
	address, careers, COALESCE(photo, ''), created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanBootcamp(row pgx.Row) (*Bootcamp, error) {
	var b Bootcamp
	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Description,
		&b.Website, &b.Email, &b.Phone,
		&b.Address, &b.Careers, &b.Photo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns one window of bootcamps ordered by creation time, plus the
// unfiltered total.
func (r *PGRepository) List(ctx context.Context, window shared.Window) ([]Bootcamp, int, error) {
	order := "DESC"
	if !window.Descending {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+bootcampColumns+` FROM bootcamps ORDER BY created_at `+order+` OFFSET $1 LIMIT $2`,
		window.Offset, window.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bootcamps []Bootcamp
	for rows.Next() {
		var b Bootcamp
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Name, &b.Description,
			&b.Website, &b.Email, &b.Phone,
			&b.Address, &b.Careers, &b.Photo, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		bootcamps = append(bootcamps, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bootcamps`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

// Get fetches a bootcamp by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Bootcamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id)
	return scanBootcamp(row)
}

// FindByOwner fetches the bootcamp published by a given user, if any.
func (r *PGRepository) FindByOwner(ctx context.Context, userID int64) (*Bootcamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE user_id = $1`, userID)
	return scanBootcamp(row)
}

// Create inserts a bootcamp and returns it with generated fields.
func (r *PGRepository) Create(ctx context.Context, bootcamp *Bootcamp) (*Bootcamp, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO bootcamps (user_id, name, description, website, email, phone, address, careers)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
		 RETURNING `+bootcampColumns,
		bootcamp.UserID, bootcamp.Name, bootcamp.Description,
		bootcamp.Website, bootcamp.Email, bootcamp.Phone,
		bootcamp.Address, bootcamp.Careers)
	created, err := scanBootcamp(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	return created, nil
}

// Update stores the full record and returns the new state.
func (r *PGRepository) Update(ctx context.Context, bootcamp *Bootcamp) (*Bootcamp, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE bootcamps
		 SET name = $2, description = $3, website = NULLIF($4, ''), email = NULLIF($5, ''),
		     phone = NULLIF($6, ''), address = $7, careers = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING `+bootcampColumns,
		bootcamp.ID, bootcamp.Name, bootcamp.Description,
		bootcamp.Website, bootcamp.Email, bootcamp.Phone,
		bootcamp.Address, bootcamp.Careers)
	updated, err := scanBootcamp(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	return updated, nil
}

// Delete removes a bootcamp. Courses and reviews cascade at the schema
// level.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetPhoto records the stored photo file name.
func (r *PGRepository) SetPhoto(ctx context.Context, id int64, filename string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bootcamps SET photo = $2, updated_at = now() WHERE id = $1`, id, filename)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.Tagged(shared.ErrDuplicate, "A bootcamp with that name already exists")
	}
	return err
}

var _ Repository = (*PGRepository)(nil)

