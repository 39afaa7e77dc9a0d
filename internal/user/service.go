package user

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register mirrors an identity-provider account locally. Emails are
// stored lower-cased so invitation matching is case-insensitive.
func (s *Service) Register(ctx context.Context, u *User) (*User, error) {
	u.Email = strings.ToLower(u.Email)
	return s.repo.Upsert(ctx, u)
}

// GetByID retrieves a user by its provider id
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail retrieves a user by email, or nil if no account exists
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

// ResolveParticipants returns the resolved identities among ids, keyed by
// id. Placeholder ids have no user record and are left out; callers
// surface those via the owning group's pending invitations instead.
func (s *Service) ResolveParticipants(ctx context.Context, ids []string) (map[string]*User, error) {
	users, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*User, len(users))
	for _, u := range users {
		resolved[u.ID] = u
	}
	return resolved, nil
}
