// Package balance computes net balances and settlement state from a
// ledger of expenses. Everything here is pure: callers supply the
// expense set, nothing is read from or written to storage, and balances
// are never persisted.
package balance

import "github.com/mkaul/splitr/internal/money"

// Line is one participant's owed share within an expense.
type Line struct {
	UserID string
	Amount money.Paise
}

// Expense is the minimal expense shape needed for balance math.
type Expense struct {
	PaidBy string
	Amount money.Paise
	Lines  []Line
}

// Tolerance is the threshold below which a balance counts as zero.
const Tolerance = money.Tolerance

// Of returns userID's net balance across the given expenses:
// the sum of amounts paid as payer minus the sum owed across allocation
// lines. Positive means the user is owed money. Amounts are integer
// minor units, so the accumulation is exact and order-independent; no
// per-expense rounding ever happens.
func Of(userID string, expenses []Expense) money.Paise {
	var net money.Paise
	for _, e := range expenses {
		if e.PaidBy == userID {
			net += e.Amount
		}
		for _, l := range e.Lines {
			if l.UserID == userID {
				net -= l.Amount
			}
		}
	}
	return net
}

// TotalSpend returns the sum of userID's owed shares across the given
// expenses, i.e. what the user actually consumed regardless of who paid.
func TotalSpend(userID string, expenses []Expense) money.Paise {
	var total money.Paise
	for _, e := range expenses {
		for _, l := range e.Lines {
			if l.UserID == userID {
				total += l.Amount
			}
		}
	}
	return total
}

// IsSettled reports whether every member's net balance across the given
// expenses is within Tolerance of zero. An empty expense list is settled.
// Group deletion is refused whenever this is false.
func IsSettled(memberIDs []string, expenses []Expense) bool {
	if len(expenses) == 0 {
		return true
	}
	for _, id := range memberIDs {
		if Of(id, expenses).Abs() > Tolerance {
			return false
		}
	}
	return true
}
