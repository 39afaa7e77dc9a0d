package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mkaul/splitr/internal/expense/split"
	"github.com/mkaul/splitr/internal/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrInvalidAmount   = errors.New("expense amount must be positive")
	ErrPayerNotMember  = errors.New("the payer must be a member of the group")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
	}
}

// Create calculates the allocation for a new expense, validates it and
// commits the expense together with its lines. A caller who is not a
// member of the target group gets the same not-found outcome as a
// missing group.
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateExpenseRequest) (*Expense, error) {
	memberIDs, err := s.authorizeGroup(ctx, req.GroupID, creatorID)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		ID:          uuid.NewString(),
		GroupID:     req.GroupID,
		Name:        req.Name,
		Description: req.Description,
		PaidBy:      req.PaidBy,
		CreatedBy:   creatorID,
	}

	if err := s.applyAllocation(e, memberIDs, req.Amount, req.PaidBy, req.SplitType, req.Participants); err != nil {
		return nil, err
	}

	return s.repo.CreateWithLines(ctx, e)
}

// Update recalculates and replaces an expense's allocation. The payer
// may change; the creator recorded at creation time never does.
func (s *Service) Update(ctx context.Context, id, userID string, req *UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.getAuthorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.repo.GetGroupMemberIDs(ctx, existing.GroupID)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		ID:          existing.ID,
		GroupID:     existing.GroupID,
		Name:        req.Name,
		Description: req.Description,
		PaidBy:      req.PaidBy,
		CreatedBy:   existing.CreatedBy,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.applyAllocation(e, memberIDs, req.Amount, req.PaidBy, req.SplitType, req.Participants); err != nil {
		return nil, err
	}

	return s.repo.UpdateWithLines(ctx, e)
}

// applyAllocation runs the split strategy and the allocation guards,
// then attaches amount, type and lines to e.
func (s *Service) applyAllocation(e *Expense, memberIDs []string, amount float64, paidBy, splitType string, participants []*ParticipantInput) error {
	total := money.FromFloat(amount)
	if total <= 0 {
		return ErrInvalidAmount
	}

	if !contains(memberIDs, paidBy) {
		return ErrPayerNotMember
	}

	strategy, err := s.splitFactory.CreateFromString(splitType)
	if err != nil {
		return err
	}

	inputs := make([]split.Input, len(participants))
	for i, p := range participants {
		inputs[i] = p.ToSplitInput()
	}

	lines, err := strategy.Calculate(total, inputs)
	if err != nil {
		return err
	}

	if err := ValidateAllocation(lines, total, memberIDs); err != nil {
		return err
	}

	e.Amount = total
	e.SplitType = strategy.Type()
	e.Lines = make([]*Line, len(lines))
	for i, l := range lines {
		e.Lines[i] = &Line{
			UserID:     l.UserID,
			Amount:     l.Amount,
			Percentage: l.Percentage,
		}
	}

	return nil
}

// GetByID retrieves an expense, scoped to the caller's group membership
func (s *Service) GetByID(ctx context.Context, id, userID string) (*Expense, error) {
	return s.getAuthorized(ctx, id, userID)
}

// ListByGroupID retrieves a page of a group's expenses for a member
func (s *Service) ListByGroupID(ctx context.Context, groupID, userID string, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.authorizeGroup(ctx, groupID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Delete removes an expense. Any member of the owning group may delete it.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getAuthorized(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorizeGroup returns the group's member ids if userID belongs to it,
// and ErrGroupNotFound otherwise. Missing group and missing membership
// are indistinguishable to the caller.
func (s *Service) authorizeGroup(ctx context.Context, groupID, userID string) ([]string, error) {
	memberIDs, err := s.repo.GetGroupMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !contains(memberIDs, userID) {
		return nil, ErrGroupNotFound
	}
	return memberIDs, nil
}

func (s *Service) getAuthorized(ctx context.Context, id, userID string) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	isMember, err := s.repo.IsGroupMember(ctx, e.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrExpenseNotFound
	}

	return e, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
