package expense

import (
	"errors"

	"github.com/mkaul/splitr/internal/expense/split"
	"github.com/mkaul/splitr/internal/money"
)

// Allocation guard errors. Messages are user-facing; handlers surface
// them verbatim under the VALIDATION_FAILED code.
var (
	ErrEmptyAllocation     = errors.New("please choose at least one person to split the expense")
	ErrUnknownParticipant  = errors.New("one of the selected people is not a member of this group")
	ErrNonPositiveAmount   = errors.New("every share must be a positive amount")
	ErrAllocationMismatch  = errors.New("the total amount of splits does not match the expense amount")
)

// ValidateAllocation checks a candidate allocation against the declared
// total and the owning group's current membership. Checks run in a fixed
// order and the first failure wins:
//
//  1. the allocation is non-empty;
//  2. every participant currently belongs to the group;
//  3. every share is strictly positive;
//  4. the shares sum to the total within money.Tolerance.
//
// EQUAL and PERCENTAGE allocations come out of the partitioner already
// exact-summing; check 4 exists for FIXED_AMOUNT submissions and as the
// final line of defense before anything is written.
func ValidateAllocation(lines []split.Line, total money.Paise, memberIDs []string) error {
	if len(lines) == 0 {
		return ErrEmptyAllocation
	}

	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}
	for _, l := range lines {
		if _, ok := members[l.UserID]; !ok {
			return ErrUnknownParticipant
		}
	}

	for _, l := range lines {
		if l.Amount <= 0 {
			return ErrNonPositiveAmount
		}
	}

	// The tolerance absorbs sub-paise decimal rounding noise; amounts are
	// integer paise by the time they get here, so a drift of a full paise
	// (e.g. 25+25+50 declared against 99.99) is a genuine mismatch.
	var sum money.Paise
	for _, l := range lines {
		sum += l.Amount
	}
	if (sum - total).Abs() >= money.Tolerance {
		return ErrAllocationMismatch
	}

	return nil
}
