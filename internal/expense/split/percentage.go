package split

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mkaul/splitr/internal/money"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the total based on each participant's percentage, flooring each
// share in minor units and distributing the rounding remainder to the
// largest percentages first.
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Calculate divides the total based on each participant's percentage.
// Participants that are unchecked, or whose percentage is unset or zero,
// are omitted entirely. Each share is floored in paise; the leftover paise
// are then handed out one at a time in descending-percentage order (stable
// on input order for ties), which biases rounding gains toward the larger
// shares. The returned lines always sum exactly to the total.
//
// Whether the percentages add up to 100 is not checked here: the allocation
// guards validate the resulting amounts against the expense total.
func (s *PercentageStrategy) Calculate(total money.Paise, participants []Input) ([]Line, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}

	included := make([]Input, 0, len(participants))
	for _, p := range participants {
		if p.Percentage == nil || *p.Percentage == 0 {
			continue
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return nil, ErrPercentageOutOfRange
		}
		included = append(included, p)
	}

	if total == 0 || len(included) == 0 {
		return []Line{}, nil
	}

	totalDec := decimal.NewFromInt(int64(total))
	oneHundred := decimal.NewFromInt(100)

	lines := make([]Line, len(included))
	var allocated money.Paise
	for i, p := range included {
		share := decimal.NewFromFloat(*p.Percentage).Mul(totalDec).Div(oneHundred).Floor()
		amount := money.Paise(share.IntPart())
		allocated += amount
		lines[i] = Line{
			UserID:     p.UserID,
			Amount:     amount,
			Percentage: p.Percentage,
		}
	}

	// Distribute the flooring remainder to the highest percentages first.
	// This tie-break is deliberately different from the equal split's
	// first-N rule; the two policies must not be unified.
	remainder := total - allocated
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return *lines[order[a]].Percentage > *lines[order[b]].Percentage
	})
	for _, idx := range order {
		if remainder <= 0 {
			break
		}
		lines[idx].Amount++
		remainder--
	}

	return lines, nil
}
