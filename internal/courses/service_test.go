package courses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/shared"
)

type mockRepository struct {
	courses map[int64]*Course
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{courses: make(map[int64]*Course), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, window shared.Window) ([]Course, int, error) {
	var all []Course
	for _, c := range m.courses {
		all = append(all, *c)
	}
	total := len(all)
	if window.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[window.Offset:]
	if len(all) > window.Limit {
		all = all[:window.Limit]
	}
	return all, total, nil
}

func (m *mockRepository) ListByBootcamp(_ context.Context, bootcampID int64) ([]Course, error) {
	var out []Course
	for _, c := range m.courses {
		if c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *mockRepository) Create(_ context.Context, course *Course) (*Course, error) {
	stored := *course
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.nextID++
	m.courses[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Update(_ context.Context, course *Course) (*Course, error) {
	if _, ok := m.courses[course.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	stored := *course
	m.courses[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

type mockDirectory struct {
	bootcamps map[int64]*bootcamps.Bootcamp
}

func (m *mockDirectory) Get(_ context.Context, id int64) (*bootcamps.Bootcamp, error) {
	b, ok := m.bootcamps[id]
	if !ok {
		return nil, shared.Tagged(shared.ErrNotFound, "Bootcamp not found with id of %d", id)
	}
	return b, nil
}

func newTestService(ownerID int64) (*Service, *mockRepository) {
	repo := newMockRepository()
	dir := &mockDirectory{bootcamps: map[int64]*bootcamps.Bootcamp{
		1: {ID: 1, UserID: ownerID, Name: "Devworks"},
	}}
	return NewService(repo, dir), repo
}

func courseRequest() CreateCourseRequest {
	return CreateCourseRequest{
		Title:        "Front End Web Development",
		Description:  "HTML, CSS, JavaScript",
		Weeks:        8,
		Tuition:      8000,
		MinimumSkill: "beginner",
	}
}

func ident(id int64, role string) *shared.Identity {
	return &shared.Identity{ID: id, Role: role}
}

func TestCreateCourseByBootcampOwner(t *testing.T) {
	svc, _ := newTestService(7)

	course, err := svc.Create(context.Background(), ident(7, shared.RolePublisher), 1, courseRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.BootcampID)
	assert.Equal(t, int64(7), course.UserID)
}

func TestCreateCourseByAdminOnForeignBootcamp(t *testing.T) {
	svc, _ := newTestService(7)

	_, err := svc.Create(context.Background(), ident(99, shared.RoleAdmin), 1, courseRequest())
	assert.NoError(t, err)
}

func TestCreateCourseByNonOwnerForbidden(t *testing.T) {
	svc, _ := newTestService(7)

	_, err := svc.Create(context.Background(), ident(8, shared.RolePublisher), 1, courseRequest())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Contains(t, err.Error(), "not authorized to add a course")
}

func TestCreateCourseMissingBootcampReportedBeforeOwnership(t *testing.T) {
	svc, _ := newTestService(7)

	// A non-owner hitting a missing bootcamp sees 404, not 403.
	_, err := svc.Create(context.Background(), ident(8, shared.RolePublisher), 55, courseRequest())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, _ := newTestService(7)
	created, err := svc.Create(context.Background(), ident(7, shared.RolePublisher), 1, courseRequest())
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.Update(context.Background(), ident(8, shared.RolePublisher), created.ID, UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(context.Background(), ident(7, shared.RolePublisher), created.ID, UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 8, updated.Weeks, "absent fields keep stored values")
}

func TestDeleteCourse(t *testing.T) {
	svc, _ := newTestService(7)
	created, err := svc.Create(context.Background(), ident(7, shared.RolePublisher), 1, courseRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), ident(8, shared.RolePublisher), created.ID), shared.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), ident(1, shared.RoleAdmin), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetCourseUnknownID(t *testing.T) {
	svc, _ := newTestService(7)
	_, err := svc.Get(context.Background(), 123)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "No course with the id of 123")
}
