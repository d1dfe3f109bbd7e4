package identity

import (
	"testing"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) CreateUser(*models.User) error { return nil }
func (r *stubUserRepo) UpdateUser(*models.User) error { return nil }
func (r *stubUserRepo) SearchUsers(string) ([]models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubUserRepo) GetUserByFirebaseUID(string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

type stubSeekerRepo struct {
	seekers map[uint]*models.JobSeeker
}

func (r *stubSeekerRepo) CreateJobSeeker(*models.JobSeeker) error { return nil }
func (r *stubSeekerRepo) UpdateJobSeeker(*models.JobSeeker) error { return nil }

func (r *stubSeekerRepo) GetByUserID(userID uint) (*models.JobSeeker, error) {
	seeker, ok := r.seekers[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return seeker, nil
}

func TestResolveMember(t *testing.T) {
	users := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Name: "Alice", Email: "alice@example.com", Headline: "Site manager"},
	}}
	resolver := NewResolver(users, &stubSeekerRepo{seekers: map[uint]*models.JobSeeker{}})

	actor, err := resolver.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, models.ActorKindMember, actor.Kind)
	assert.Equal(t, "Site manager", actor.Headline)
	assert.Equal(t, "alice@example.com", actor.Email)
}

func TestResolveJobSeekerOverlay(t *testing.T) {
	users := &stubUserRepo{users: map[uint]*models.User{
		2: {ID: 2, Name: "Bob", Email: "bob@example.com"},
	}}
	seekers := &stubSeekerRepo{seekers: map[uint]*models.JobSeeker{
		2: {UserID: 2, DesiredRole: "Joiner"},
	}}
	resolver := NewResolver(users, seekers)

	actor, err := resolver.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, models.ActorKindJobSeeker, actor.Kind)
	assert.Equal(t, "Joiner", actor.Headline, "seeker role backfills an empty headline")
}

func TestResolveUnknownUser(t *testing.T) {
	resolver := NewResolver(&stubUserRepo{users: map[uint]*models.User{}}, &stubSeekerRepo{})

	_, err := resolver.Resolve(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = resolver.ResolveByEmail("nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
