package users

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/shared"
)

type mockRepository struct {
	users  map[int64]*auth.User
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[int64]*auth.User), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, window shared.Window) ([]auth.User, int, error) {
	var all []auth.User
	for _, u := range m.users {
		all = append(all, *u)
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

func (m *mockRepository) Get(_ context.Context, id int64) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockRepository) Create(_ context.Context, user *auth.User) (*auth.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, shared.Tagged(shared.ErrDuplicate, "an account with that email already exists")
		}
	}
	stored := *user
	stored.ID = m.nextID
	m.nextID++
	m.users[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Update(_ context.Context, user *auth.User) (*auth.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	stored := *user
	m.users[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func TestCreateDefaultsRoleAndHashesPassword(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Sasha Ryan",
		Email:    "sasha@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleUser, user.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestCreateMayAssignAdminRole(t *testing.T) {
	svc := NewService(newMockRepository())
	user, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "password123",
		Role:     shared.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, user.Role)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(newMockRepository())
	user, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Sasha Ryan",
		Email:    "sasha@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	role := shared.RolePublisher
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, shared.RolePublisher, updated.Role)
	assert.Equal(t, "Sasha Ryan", updated.Name)
	assert.Equal(t, "sasha@example.com", updated.Email)
}

func TestGetAndDeleteUnknownUser(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "No user with the id of 42")

	assert.ErrorIs(t, svc.Delete(context.Background(), 42), shared.ErrNotFound)
}

func TestListPaginated(t *testing.T) {
	svc := NewService(func() *mockRepository {
		repo := newMockRepository()
		for i := 0; i < 7; i++ {
			_, _ = repo.Create(context.Background(), &auth.User{
				Name:  "U",
				Email: string(rune('a'+i)) + "@example.com",
				Role:  shared.RoleUser,
			})
		}
		return repo
	}())

	page, err := svc.List(context.Background(), shared.ParsePageParams(url.Values{"limit": {"5"}}))
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.Equal(t, 2, page.TotalPages)
	require.NotNil(t, page.Links.Next)
	assert.Nil(t, page.Links.Prev)
}
