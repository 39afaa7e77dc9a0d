package split

import (
	"errors"
	"fmt"

	"github.com/mkaul/splitr/internal/money"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual       Type = "EQUAL"
	TypePercentage  Type = "PERCENTAGE"
	TypeFixedAmount Type = "FIXED_AMOUNT"
)

// Input represents one participant offered to a split calculation.
// Percentage is only meaningful for PERCENTAGE splits, Amount only for
// FIXED_AMOUNT splits. A nil or zero value means the participant is not
// taking part in that mode and is omitted from the result.
type Input struct {
	UserID     string   `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For FIXED_AMOUNT split
}

// Line is one participant's owed share in the calculated split.
// Percentage is carried through for display only; Amount is authoritative.
type Line struct {
	UserID     string
	Amount     money.Paise
	Percentage *float64
}

// Strategy is the interface all split strategies implement.
// Calculate must guarantee that the returned line amounts sum exactly to
// the total for EQUAL and PERCENTAGE; FIXED_AMOUNT passes amounts through
// unchanged and leaves the sum check to the allocation guards.
type Strategy interface {
	Calculate(total money.Paise, participants []Input) ([]Line, error)

	Type() Type
}

// Factory creates split strategies by type.
type Factory struct{}

// NewFactory creates a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeFixedAmount:
		return &FixedAmountStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a raw string type.
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

var (
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)
