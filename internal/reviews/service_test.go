package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/shared"
)

type mockRepository struct {
	reviews map[int64]*Review
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{reviews: make(map[int64]*Review), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, window shared.Window) ([]Review, int, error) {
	var all []Review
	for _, r := range m.reviews {
		all = append(all, *r)
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

func (m *mockRepository) ListByBootcamp(_ context.Context, bootcampID int64) ([]Review, error) {
	var out []Review
	for _, r := range m.reviews {
		if r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *mockRepository) Create(_ context.Context, review *Review) (*Review, error) {
	for _, existing := range m.reviews {
		if existing.BootcampID == review.BootcampID && existing.UserID == review.UserID {
			return nil, shared.Tagged(shared.ErrDuplicate, "You have already submitted a review for this bootcamp")
		}
	}
	stored := *review
	stored.ID = m.nextID
	m.nextID++
	m.reviews[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Update(_ context.Context, review *Review) (*Review, error) {
	if _, ok := m.reviews[review.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	stored := *review
	m.reviews[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.reviews[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.reviews, id)
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

func newTestService() *Service {
	dir := &mockDirectory{bootcamps: map[int64]*bootcamps.Bootcamp{
		1: {ID: 1, UserID: 7, Name: "Devworks"},
	}}
	return NewService(newMockRepository(), dir)
}

func ident(id int64, role string) *shared.Identity {
	return &shared.Identity{ID: id, Role: role}
}

func reviewRequest() CreateReviewRequest {
	return CreateReviewRequest{Title: "Learned a ton", Text: "Great fundamentals.", Rating: 9}
}

func TestCreateReview(t *testing.T) {
	svc := newTestService()

	review, err := svc.Create(context.Background(), ident(3, shared.RoleUser), 1, reviewRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3), review.UserID)
	assert.Equal(t, int64(1), review.BootcampID)
	assert.Equal(t, 9, review.Rating)
}

func TestCreateReviewMissingBootcamp(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), ident(3, shared.RoleUser), 77, reviewRequest())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateSecondReviewSameBootcampRejected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, ident(3, shared.RoleUser), 1, reviewRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, ident(3, shared.RoleUser), 1, reviewRequest())
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateReviewOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ident(3, shared.RoleUser), 1, reviewRequest())
	require.NoError(t, err)

	rating := 4
	_, err = svc.Update(ctx, ident(5, shared.RoleUser), created.ID, UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(ctx, ident(3, shared.RoleUser), created.ID, UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Learned a ton", updated.Title)
}

func TestAdminMayDeleteAnyReview(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ident(3, shared.RoleUser), 1, reviewRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, ident(5, shared.RoleUser), created.ID), shared.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, ident(1, shared.RoleAdmin), created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListByBootcampChecksBootcamp(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.ListByBootcamp(ctx, 77)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Create(ctx, ident(3, shared.RoleUser), 1, reviewRequest())
	require.NoError(t, err)
	list, err := svc.ListByBootcamp(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
