package expense

import (
	"time"

	"github.com/mkaul/splitr/internal/balance"
	"github.com/mkaul/splitr/internal/expense/split"
	"github.com/mkaul/splitr/internal/money"
)

// Expense represents a shared expense in a group
type Expense struct {
	ID          string
	GroupID     string
	Name        string
	Description string
	Amount      money.Paise
	PaidBy      string
	CreatedBy   string // audit field, never changes after creation
	SplitType   split.Type
	CreatedAt   time.Time

	Lines []*Line
}

// Line is one participant's owed share of an expense. Percentage is
// informational; Amount is authoritative.
type Line struct {
	ID         int64
	ExpenseID  string
	UserID     string
	Amount     money.Paise
	Percentage *float64
}

// ToBalanceExpenses converts loaded expenses to the shape the balance
// package computes over.
func ToBalanceExpenses(expenses []*Expense) []balance.Expense {
	out := make([]balance.Expense, len(expenses))
	for i, e := range expenses {
		lines := make([]balance.Line, len(e.Lines))
		for j, l := range e.Lines {
			lines[j] = balance.Line{UserID: l.UserID, Amount: l.Amount}
		}
		out[i] = balance.Expense{
			PaidBy: e.PaidBy,
			Amount: e.Amount,
			Lines:  lines,
		}
	}
	return out
}
