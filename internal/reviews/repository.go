package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir/internal/shared"
)

// Repository abstracts review persistence.
type Repository interface {
	List(ctx context.Context, window shared.Window) ([]Review, int, error)
	ListByBootcamp(ctx context.Context, bootcampID int64) ([]Review, error)
	Get(ctx context.Context, id int64) (*Review, error)
	Create(ctx context.Context, review *Review) (*Review, error)
	Update(ctx context.Context, review *Review) (*Review, error)
	Delete(ctx context.Context, id int64) error
}

const reviewColumns = `id, bootcamp_id, user_id, title, text, rating, created_at, updated_at`

// PGRepository persists reviews in PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PGRepository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	if err := row.Scan(&rv.ID, &rv.BootcampID, &rv.UserID, &rv.Title, &rv.Text, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &rv, nil
}

// List returns one page of reviews plus the total match count.
func (r *PGRepository) List(ctx context.Context, window shared.Window) ([]Review, int, error) {
	direction := "ASC"
	if window.Descending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM reviews ORDER BY created_at %s OFFSET $1 LIMIT $2`, reviewColumns, direction)

	rows, err := r.pool.Query(ctx, query, window.Offset, window.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]Review, 0, window.Limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM reviews`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}
	return reviews, total, nil
}

// ListByBootcamp returns every review for one bootcamp, newest first.
func (r *PGRepository) ListByBootcamp(ctx context.Context, bootcampID int64) ([]Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE bootcamp_id = $1 ORDER BY created_at DESC`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, bootcampID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by bootcamp: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews by bootcamp: %w", err)
	}
	return reviews, nil
}

// Get loads a single review by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)
	return scanReview(r.pool.QueryRow(ctx, query, id))
}

// Create inserts a new review. The (bootcamp_id, user_id) pair is unique.
func (r *PGRepository) Create(ctx context.Context, review *Review) (*Review, error) {
	query := fmt.Sprintf(`
		INSERT INTO reviews (bootcamp_id, user_id, title, text, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, reviewColumns)

	created, err := scanReview(r.pool.QueryRow(ctx, query,
		review.BootcampID, review.UserID, review.Title, review.Text, review.Rating))
	if err != nil {
		return nil, translateUnique(err)
	}
	return created, nil
}

// Update persists edited review fields.
func (r *PGRepository) Update(ctx context.Context, review *Review) (*Review, error) {
	query := fmt.Sprintf(`
		UPDATE reviews
		SET title = $2, text = $3, rating = $4, updated_at = now()
		WHERE id = $1
		RETURNING %s`, reviewColumns)

	return scanReview(r.pool.QueryRow(ctx, query, review.ID, review.Title, review.Text, review.Rating))
}

// Delete removes a review by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.Tagged(shared.ErrDuplicate, "You have already submitted a review for this bootcamp")
	}
	return err
}
