package group

import (
	"context"
	"errors"

	"github.com/mkaul/splitr/internal/balance"
	"github.com/mkaul/splitr/internal/expense"
	"github.com/mkaul/splitr/internal/invitation"
	"github.com/mkaul/splitr/internal/user"
)

// Common errors
var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupNotSettled = errors.New("cannot delete group: all expenses must be settled first")
)

// Service handles group business logic
type Service struct {
	repo              *Repository
	expenseRepo       *expense.Repository
	invitationService *invitation.Service
	userService       *user.Service
}

// NewService creates a new group service
func NewService(repo *Repository, expenseRepo *expense.Repository, invitationService *invitation.Service, userService *user.Service) *Service {
	return &Service{
		repo:              repo,
		expenseRepo:       expenseRepo,
		invitationService: invitationService,
		userService:       userService,
	}
}

// Create creates a new group with the creator as its only member
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, req.Name, creatorID)
}

// GetByID retrieves a group with its members resolved: registered users
// come back with their identity-provider profile, pending invitees with
// the name they were invited under. Non-members get not-found.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*GroupResponse, error) {
	g, err := s.repo.GetByIDForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.resolveMembers(ctx, g)
	if err != nil {
		return nil, err
	}

	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Members:   members,
	}, nil
}

// resolveMembers maps the group's member ids to display entries in
// membership order. Ids without a user record are placeholders and are
// looked up among the group's pending invitations (set difference).
func (s *Service) resolveMembers(ctx context.Context, g *Group) ([]*MemberResponse, error) {
	resolved, err := s.userService.ResolveParticipants(ctx, g.MemberIDs)
	if err != nil {
		return nil, err
	}

	invitations, err := s.invitationService.ListByGroupID(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	byPlaceholder := make(map[string]*invitation.Invitation, len(invitations))
	for _, inv := range invitations {
		byPlaceholder[inv.Placeholder] = inv
	}

	members := make([]*MemberResponse, 0, len(g.MemberIDs))
	for _, memberID := range g.MemberIDs {
		if u, ok := resolved[memberID]; ok {
			members = append(members, &MemberResponse{
				ID:        u.ID,
				Name:      u.Name,
				AvatarURL: u.AvatarURL,
			})
			continue
		}
		if inv, ok := byPlaceholder[memberID]; ok {
			members = append(members, &MemberResponse{
				ID:      memberID,
				Name:    inv.Name,
				Pending: true,
			})
		}
		// Neither resolved nor invited: a reconciliation already removed
		// the invitation, the membership rewrite will follow. Skip.
	}

	return members, nil
}

// List retrieves all groups the user belongs to
func (s *Service) List(ctx context.Context, userID string) ([]*Group, error) {
	return s.repo.ListByMemberID(ctx, userID)
}

// Delete removes a group, refusing while any member balance is open.
// The settlement check runs over the full expense ledger.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	g, err := s.repo.GetByIDForMember(ctx, id, userID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	expenses, err := s.expenseRepo.ListAllByGroupID(ctx, id)
	if err != nil {
		return err
	}

	if !balance.IsSettled(g.MemberIDs, expense.ToBalanceExpenses(expenses)) {
		return ErrGroupNotSettled
	}

	return s.repo.Delete(ctx, id)
}

// Balances computes every member's net balance and total spend across
// the group's full ledger. Balances are always derived here, never read
// from storage.
func (s *Service) Balances(ctx context.Context, id, userID string) (*BalancesResponse, error) {
	g, err := s.repo.GetByIDForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	expenses, err := s.expenseRepo.ListAllByGroupID(ctx, id)
	if err != nil {
		return nil, err
	}
	ledger := expense.ToBalanceExpenses(expenses)

	members, err := s.resolveMembers(ctx, g)
	if err != nil {
		return nil, err
	}

	balances := make([]*MemberBalanceResponse, len(members))
	for i, m := range members {
		balances[i] = &MemberBalanceResponse{
			MemberResponse: *m,
			Balance:        balance.Of(m.ID, ledger).Float64(),
			TotalSpend:     balance.TotalSpend(m.ID, ledger).Float64(),
		}
	}

	return &BalancesResponse{
		Settled:  balance.IsSettled(g.MemberIDs, ledger),
		Balances: balances,
	}, nil
}

// InviteMember adds a new member to the group by invitation
func (s *Service) InviteMember(ctx context.Context, groupID, inviterID string, req *InviteMemberRequest) (*invitation.Invitation, error) {
	return s.invitationService.Invite(ctx, groupID, inviterID, req.Name, req.Email)
}
