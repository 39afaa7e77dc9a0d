package balance

import (
	"math/rand"
	"testing"

	"github.com/mkaul/splitr/internal/money"
)

// dinner: alice pays 60, split three ways 20/20/20
// taxi: bob pays 30, split between alice and bob 15/15
var fixture = []Expense{
	{
		PaidBy: "alice",
		Amount: 6000,
		Lines: []Line{
			{UserID: "alice", Amount: 2000},
			{UserID: "bob", Amount: 2000},
			{UserID: "carol", Amount: 2000},
		},
	},
	{
		PaidBy: "bob",
		Amount: 3000,
		Lines: []Line{
			{UserID: "alice", Amount: 1500},
			{UserID: "bob", Amount: 1500},
		},
	},
}

func TestOf(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		expenses []Expense
		want     money.Paise
	}{
		{"payer is owed what others consumed", "alice", fixture, 6000 - 2000 - 1500},
		{"payer of one owing on another", "bob", fixture, 3000 - 2000 - 1500},
		{"pure debtor", "carol", fixture, -2000},
		{"uninvolved user has zero balance", "dave", fixture, 0},
		{"no expenses", "alice", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.userID, tt.expenses); got != tt.want {
				t.Errorf("Of(%s) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestBalancesSumToZero(t *testing.T) {
	var sum money.Paise
	for _, id := range []string{"alice", "bob", "carol"} {
		sum += Of(id, fixture)
	}
	if sum != 0 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

// Permuting the expense list must not change any balance.
func TestOfOrderIndependent(t *testing.T) {
	expenses := make([]Expense, len(fixture))
	copy(expenses, fixture)

	want := map[string]money.Paise{}
	for _, id := range []string{"alice", "bob", "carol"} {
		want[id] = Of(id, expenses)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(expenses), func(a, b int) {
			expenses[a], expenses[b] = expenses[b], expenses[a]
		})
		for id, w := range want {
			if got := Of(id, expenses); got != w {
				t.Fatalf("after shuffle %d: Of(%s) = %v, want %v", i, id, got, w)
			}
		}
	}
}

func TestTotalSpend(t *testing.T) {
	tests := []struct {
		userID string
		want   money.Paise
	}{
		{"alice", 3500},
		{"bob", 3500},
		{"carol", 2000},
		{"dave", 0},
	}

	for _, tt := range tests {
		if got := TotalSpend(tt.userID, fixture); got != tt.want {
			t.Errorf("TotalSpend(%s) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}

func TestIsSettled(t *testing.T) {
	members := []string{"alice", "bob"}

	// A single-paise imbalance: alice paid 1.01 but owes only 1.00.
	onePaiseOff := []Expense{{
		PaidBy: "alice",
		Amount: 101,
		Lines: []Line{
			{UserID: "alice", Amount: 100},
			{UserID: "bob", Amount: 1},
		},
	}, {
		PaidBy: "bob",
		Amount: 0,
		Lines:  []Line{},
	}}

	// A two-paise imbalance must block settlement.
	twoPaiseOff := []Expense{{
		PaidBy: "alice",
		Amount: 102,
		Lines: []Line{
			{UserID: "alice", Amount: 100},
			{UserID: "bob", Amount: 2},
		},
	}}

	balanced := []Expense{{
		PaidBy: "alice",
		Amount: 200,
		Lines: []Line{
			{UserID: "alice", Amount: 100},
			{UserID: "bob", Amount: 100},
		},
	}, {
		PaidBy: "bob",
		Amount: 200,
		Lines: []Line{
			{UserID: "alice", Amount: 100},
			{UserID: "bob", Amount: 100},
		},
	}}

	tests := []struct {
		name     string
		members  []string
		expenses []Expense
		want     bool
	}{
		{"no expenses is settled", members, nil, true},
		{"mutual debts cancel out", members, balanced, true},
		{"imbalance within tolerance is settled", members, onePaiseOff, true},
		{"imbalance beyond tolerance is not settled", members, twoPaiseOff, false},
		{"unsettled member blocks the whole group", []string{"alice", "bob", "carol"}, fixture, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSettled(tt.members, tt.expenses); got != tt.want {
				t.Errorf("IsSettled = %v, want %v", got, tt.want)
			}
		})
	}
}
