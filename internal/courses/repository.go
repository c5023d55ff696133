package courses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir/internal/shared"
)

// Repository defines persistence operations for courses.
type Repository interface {
	List(ctx context.Context, window shared.Window) ([]Course, int, error)
	ListByBootcamp(ctx context.Context, bootcampID int64) ([]Course, error)
	Get(ctx context.Context, id int64) (*Course, error)
	Create(ctx context.Context, course *Course) (*Course, error)
	Update(ctx context.Context, course *Course) (*Course, error)
	Delete(ctx context.Context, id int64) error
}

const courseColumns = `c.id, c.bootcamp_id, c.user_id, c.title, c.description,
	c.weeks, c.tuition, c.minimum_skill, c.scholarship_available, c.created_at, c.updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanCourse(row pgx.Row, populated bool) (*Course, error) {
	var c Course
	dest := []any{
		&c.ID, &c.BootcampID, &c.UserID, &c.Title, &c.Description,
		&c.Weeks, &c.Tuition, &c.MinimumSkill, &c.ScholarshipAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	}
	var ref BootcampRef
	if populated {
		dest = append(dest, &ref.Name, &ref.Description)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if populated {
		c.BootcampInfo = &ref
	}
	return &c, nil
}

// List returns one window of courses ordered by creation time with the
// owning bootcamp expanded, plus the unfiltered total.
func (r *PGRepository) List(ctx context.Context, window shared.Window) ([]Course, int, error) {
	order := "DESC"
	if !window.Descending {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+`, b.name, b.description
		 FROM courses c JOIN bootcamps b ON b.id = c.bootcamp_id
		 ORDER BY c.created_at `+order+` OFFSET $1 LIMIT $2`,
		window.Offset, window.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		course, err := scanCourse(rows, true)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListByBootcamp returns the full unpaginated match set for one bootcamp.
func (r *PGRepository) ListByBootcamp(ctx context.Context, bootcampID int64) ([]Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses c WHERE c.bootcamp_id = $1 ORDER BY c.created_at DESC`,
		bootcampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		course, err := scanCourse(rows, false)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

// Get fetches a course with its bootcamp expanded.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Course, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+`, b.name, b.description
		 FROM courses c JOIN bootcamps b ON b.id = c.bootcamp_id
		 WHERE c.id = $1`, id)
	return scanCourse(row, true)
}

// Create inserts a course and returns it with generated fields.
func (r *PGRepository) Create(ctx context.Context, course *Course) (*Course, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO courses AS c (bootcamp_id, user_id, title, description, weeks, tuition, minimum_skill, scholarship_available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+courseColumns,
		course.BootcampID, course.UserID, course.Title, course.Description,
		course.Weeks, course.Tuition, course.MinimumSkill, course.ScholarshipAvailable)
	return scanCourse(row, false)
}

// Update stores the full record and returns the new state.
func (r *PGRepository) Update(ctx context.Context, course *Course) (*Course, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE courses AS c
		 SET title = $2, description = $3, weeks = $4, tuition = $5,
		     minimum_skill = $6, scholarship_available = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING `+courseColumns,
		course.ID, course.Title, course.Description, course.Weeks,
		course.Tuition, course.MinimumSkill, course.ScholarshipAvailable)
	return scanCourse(row, false)
}

// Delete removes a course.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
