package expense

import (
	"errors"
	"testing"

	"github.com/mkaul/splitr/internal/expense/split"
	"github.com/mkaul/splitr/internal/money"
)

func TestValidateAllocation(t *testing.T) {
	members := []string{"alice", "bob", "carol"}

	tests := []struct {
		name    string
		lines   []split.Line
		total   money.Paise
		members []string
		wantErr error
	}{
		{
			name: "valid fixed allocation",
			lines: []split.Line{
				{UserID: "alice", Amount: 2500},
				{UserID: "bob", Amount: 2500},
				{UserID: "carol", Amount: 5000},
			},
			total:   money.FromFloat(100.00),
			members: members,
		},
		{
			name: "a full paise of drift is a mismatch",
			lines: []split.Line{
				{UserID: "alice", Amount: 5000},
				{UserID: "bob", Amount: 5001},
			},
			total:   money.FromFloat(100.00),
			members: members,
			wantErr: ErrAllocationMismatch,
		},
		{
			name:    "empty allocation is rejected first",
			lines:   nil,
			total:   money.FromFloat(100.00),
			members: members,
			wantErr: ErrEmptyAllocation,
		},
		{
			name: "non-member participant is rejected",
			lines: []split.Line{
				{UserID: "alice", Amount: 5000},
				{UserID: "mallory", Amount: 5000},
			},
			total:   money.FromFloat(100.00),
			members: members,
			wantErr: ErrUnknownParticipant,
		},
		{
			name: "zero share is rejected",
			lines: []split.Line{
				{UserID: "alice", Amount: 10000},
				{UserID: "bob", Amount: 0},
			},
			total:   money.FromFloat(100.00),
			members: members,
			wantErr: ErrNonPositiveAmount,
		},
		{
			name: "sum mismatch beyond tolerance is rejected",
			lines: []split.Line{
				{UserID: "alice", Amount: 2500},
				{UserID: "bob", Amount: 2500},
				{UserID: "carol", Amount: 5000},
			},
			total:   money.FromFloat(99.99),
			members: members,
			wantErr: ErrAllocationMismatch,
		},
		{
			name: "membership is checked before amounts",
			lines: []split.Line{
				{UserID: "mallory", Amount: -5},
			},
			total:   money.FromFloat(1.00),
			members: members,
			wantErr: ErrUnknownParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAllocation(tt.lines, tt.total, tt.members)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
