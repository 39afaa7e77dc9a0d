package split

import "github.com/mkaul/splitr/internal/money"

// =============================================================================
// FIXED AMOUNT SPLIT STRATEGY
// Each participant owes exactly the amount entered for them.
// =============================================================================

// FixedAmountStrategy implements the Strategy interface for fixed-amount splits
type FixedAmountStrategy struct{}

// Type returns the split type identifier
func (s *FixedAmountStrategy) Type() Type {
	return TypeFixedAmount
}

// Calculate passes each participant's entered amount through unchanged.
// Participants that are unchecked or have a zero/unset amount are omitted.
// No rounding correction is applied: if the entered amounts do not add up
// to the expense total the allocation guards reject the submission.
func (s *FixedAmountStrategy) Calculate(total money.Paise, participants []Input) ([]Line, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}

	lines := make([]Line, 0, len(participants))
	for _, p := range participants {
		if p.Amount == nil || *p.Amount == 0 {
			continue
		}
		if *p.Amount < 0 {
			return nil, ErrNegativeAmount
		}
		lines = append(lines, Line{
			UserID: p.UserID,
			Amount: money.FromFloat(*p.Amount),
		})
	}

	return lines, nil
}
