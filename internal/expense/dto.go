package expense

import (
	"github.com/mkaul/splitr/internal/expense/split"
)

// ParticipantInput is one participant offered to the split calculation
// when creating or editing an expense
type ParticipantInput struct {
	UserID     string   `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For FIXED_AMOUNT split
}

// ToSplitInput converts to the split package's input type
func (p *ParticipantInput) ToSplitInput() split.Input {
	return split.Input{
		UserID:     p.UserID,
		Percentage: p.Percentage,
		Amount:     p.Amount,
	}
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      string              `json:"group_id" validate:"required"`
	Name         string              `json:"name" validate:"required,min=1,max=50"`
	Description  string              `json:"description"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	PaidBy       string              `json:"paid_by" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE FIXED_AMOUNT"`
	Participants []*ParticipantInput `json:"participants" validate:"required,min=1"`
}

// UpdateExpenseRequest represents the request to update an expense.
// The payer may change; the creator is an immutable audit field.
type UpdateExpenseRequest struct {
	Name         string              `json:"name" validate:"required,min=1,max=50"`
	Description  string              `json:"description"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	PaidBy       string              `json:"paid_by" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE FIXED_AMOUNT"`
	Participants []*ParticipantInput `json:"participants" validate:"required,min=1"`
}

// LineResponse represents one allocation line in a response
type LineResponse struct {
	UserID     string   `json:"user_id"`
	Amount     float64  `json:"amount"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      float64         `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	CreatedBy   string          `json:"created_by"`
	SplitType   string          `json:"split_type"`
	CreatedAt   string          `json:"created_at"`
	Splits      []*LineResponse `json:"splits"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	splits := make([]*LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		splits[i] = &LineResponse{
			UserID:     l.UserID,
			Amount:     l.Amount.Float64(),
			Percentage: l.Percentage,
		}
	}

	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount.Float64(),
		PaidBy:      e.PaidBy,
		CreatedBy:   e.CreatedBy,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Splits:      splits,
	}
}
