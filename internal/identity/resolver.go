// Package identity resolves an authenticated caller to a single Actor value
// regardless of which identity class (member or job seeker) backs it.
package identity

import (
	"errors"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
)

// Actor is the resolved caller identity the graph and messaging components
// operate on. Both identity classes share one user ID space, so every
// component keys on Actor.ID alone.
type Actor struct {
	models.UserSummary
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// Resolver looks up users across both backing stores.
type Resolver struct {
	users   repositories.UserRepository
	seekers repositories.JobSeekerRepository
}

// NewResolver creates a Resolver over the two identity stores
func NewResolver(users repositories.UserRepository, seekers repositories.JobSeekerRepository) *Resolver {
	return &Resolver{users: users, seekers: seekers}
}

// Resolve maps a user ID to an Actor. A job-seeker extension row, when
// present, overlays the seeker-specific headline and switches the kind.
func (r *Resolver) Resolve(userID uint) (*Actor, error) {
	user, err := r.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return r.overlay(user)
}

// ResolveByEmail maps an email address to an Actor
func (r *Resolver) ResolveByEmail(email string) (*Actor, error) {
	user, err := r.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return r.overlay(user)
}

func (r *Resolver) overlay(user *models.User) (*Actor, error) {
	actor := &Actor{
		UserSummary: user.ToSummary(),
		Email:       user.Email,
		Kind:        models.ActorKindMember,
	}

	seeker, err := r.seekers.GetByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return actor, nil
		}
		return nil, err
	}

	actor.Kind = models.ActorKindJobSeeker
	if actor.Headline == "" {
		actor.Headline = seeker.DesiredRole
	}
	return actor, nil
}
