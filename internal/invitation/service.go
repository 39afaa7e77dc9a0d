package invitation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mkaul/splitr/internal/user"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyInvited = errors.New("this email has already been invited to the group")
	ErrAlreadyMember  = errors.New("this person is already a member of the group")
)

// Service handles invitation business logic
type Service struct {
	repo        *Repository
	userService *user.Service
}

// NewService creates a new invitation service
func NewService(repo *Repository, userService *user.Service) *Service {
	return &Service{
		repo:        repo,
		userService: userService,
	}
}

// Invite adds a new member to the group by name and email. If the email
// has no account yet a placeholder participant joins the membership until
// reconciliation. Non-members get the same not-found outcome as a missing
// group.
func (s *Service) Invite(ctx context.Context, groupID, inviterID, name, email string) (*Invitation, error) {
	email = strings.ToLower(email)

	isMember, err := s.repo.IsGroupMember(ctx, groupID, inviterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetByGroupAndEmail(ctx, groupID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInvited
	}

	// An already-registered invitee who is already in the group needs no
	// invitation at all.
	account, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		alreadyIn, err := s.repo.IsGroupMember(ctx, groupID, account.ID)
		if err != nil {
			return nil, err
		}
		if alreadyIn {
			return nil, ErrAlreadyMember
		}
	}

	return s.repo.CreateWithMembership(ctx, groupID, name, email)
}

// ListByGroupID returns the pending invitations for a group.
func (s *Service) ListByGroupID(ctx context.Context, groupID string) ([]*Invitation, error) {
	return s.repo.ListByGroupID(ctx, groupID)
}

// ReconcileUser resolves every pending invitation addressed to any of the
// user's emails, rewriting placeholder references to the real user id.
// Each invitation is reconciled in its own transaction; one failing group
// does not block the others.
func (s *Service) ReconcileUser(ctx context.Context, userID string, emails []string) error {
	var firstErr error
	for _, email := range emails {
		invitations, err := s.repo.ListByEmail(ctx, strings.ToLower(email))
		if err != nil {
			return err
		}

		for _, inv := range invitations {
			if err := s.repo.Reconcile(ctx, inv, userID); err != nil {
				slog.Error("failed to reconcile invitation",
					"invitation_id", inv.ID,
					"group_id", inv.GroupID,
					"error", err,
				)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			slog.Info("reconciled invitation",
				"group_id", inv.GroupID,
				"placeholder", inv.Placeholder,
				"user_id", userID,
			)
		}
	}
	return firstErr
}
