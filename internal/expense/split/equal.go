package split

import "github.com/mkaul/splitr/internal/money"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the total equally among all participants in minor units,
// handing the remainder paise to the first N participants in input order.
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Calculate divides the total equally among all participants.
// Splitting 100.00 three ways yields 33.34 + 33.33 + 33.33: base share is
// floor(total/n) paise and each of the first remainder participants gets
// one extra paise, so the lines always sum exactly to the total. The
// largest and smallest share never differ by more than one paise.
func (s *EqualStrategy) Calculate(total money.Paise, participants []Input) ([]Line, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}
	if total == 0 || len(participants) == 0 {
		return []Line{}, nil
	}

	n := money.Paise(len(participants))
	base := total / n
	remainder := total - base*n

	lines := make([]Line, len(participants))
	for i, p := range participants {
		amount := base
		if money.Paise(i) < remainder {
			amount++
		}
		lines[i] = Line{
			UserID: p.UserID,
			Amount: amount,
		}
	}

	return lines, nil
}
