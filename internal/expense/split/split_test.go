package split

import (
	"testing"

	"github.com/mkaul/splitr/internal/money"
)

func pctPtr(v float64) *float64 { return &v }
func amtPtr(v float64) *float64 { return &v }

func sumLines(lines []Line) money.Paise {
	var sum money.Paise
	for _, l := range lines {
		sum += l.Amount
	}
	return sum
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Paise
		participants []Input
		want         []money.Paise
		wantErr      bool
	}{
		{
			name:         "divides evenly",
			total:        money.FromFloat(90.00),
			participants: []Input{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}},
			want:         []money.Paise{3000, 3000, 3000},
		},
		{
			name:         "remainder paise go to the first participants in order",
			total:        money.FromFloat(100.00),
			participants: []Input{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}},
			want:         []money.Paise{3334, 3333, 3333},
		},
		{
			name:         "two extra paise",
			total:        money.FromFloat(100.01),
			participants: []Input{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}},
			want:         []money.Paise{3334, 3334, 3333},
		},
		{
			name:         "single participant takes everything",
			total:        money.FromFloat(42.37),
			participants: []Input{{UserID: "a"}},
			want:         []money.Paise{4237},
		},
		{
			name:         "zero total yields empty allocation",
			total:        0,
			participants: []Input{{UserID: "a"}, {UserID: "b"}},
			want:         []money.Paise{},
		},
		{
			name:         "no participants yields empty allocation",
			total:        money.FromFloat(10.00),
			participants: nil,
			want:         []money.Paise{},
		},
		{
			name:         "negative total is rejected",
			total:        -100,
			participants: []Input{{UserID: "a"}},
			wantErr:      true,
		},
	}

	s := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := s.Calculate(tt.total, tt.participants)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.want))
			}
			for i, want := range tt.want {
				if lines[i].Amount != want {
					t.Errorf("line %d (%s) = %v, want %v", i, lines[i].UserID, lines[i].Amount, want)
				}
			}
		})
	}
}

// The exact-sum invariant must hold with zero residue for any amount with
// up to two decimal digits and any participant count in [1, 50], and the
// spread between the largest and smallest share never exceeds one paise.
func TestEqualStrategyExactSumAndSpread(t *testing.T) {
	s := &EqualStrategy{}
	amounts := []money.Paise{1, 2, 99, 100, 101, 3333, 10000, 99999, 123457}

	for _, total := range amounts {
		for n := 1; n <= 50; n++ {
			participants := make([]Input, n)
			for i := range participants {
				participants[i] = Input{UserID: string(rune('A' + i%26))}
			}

			lines, err := s.Calculate(total, participants)
			if err != nil {
				t.Fatalf("total=%v n=%d: %v", total, n, err)
			}
			if got := sumLines(lines); got != total {
				t.Errorf("total=%v n=%d: sum = %v, want exact total", total, n, got)
			}

			min, max := lines[0].Amount, lines[0].Amount
			for _, l := range lines {
				if l.Amount < min {
					min = l.Amount
				}
				if l.Amount > max {
					max = l.Amount
				}
			}
			if max-min > 1 {
				t.Errorf("total=%v n=%d: spread = %v paise, want <= 1", total, n, max-min)
			}
		}
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Paise
		participants []Input
		want         map[string]money.Paise
		wantErr      bool
	}{
		{
			name:  "clean percentages divide exactly",
			total: money.FromFloat(100.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(50)},
				{UserID: "b", Percentage: pctPtr(30)},
				{UserID: "c", Percentage: pctPtr(20)},
			},
			want: map[string]money.Paise{"a": 5000, "b": 3000, "c": 2000},
		},
		{
			name:  "flooring remainder goes to the highest percentage first",
			total: money.FromFloat(10.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(33.4)},
				{UserID: "b", Percentage: pctPtr(33.3)},
				{UserID: "c", Percentage: pctPtr(33.3)},
			},
			// floors: 334, 333, 333 = 1000; no remainder left over
			want: map[string]money.Paise{"a": 334, "b": 333, "c": 333},
		},
		{
			name:  "ties broken by input order",
			total: money.FromFloat(1.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(33.3)},
				{UserID: "b", Percentage: pctPtr(33.3)},
				{UserID: "c", Percentage: pctPtr(33.4)},
			},
			// floors: 33, 33, 33; remainder 1 goes to c (highest pct)
			want: map[string]money.Paise{"a": 33, "b": 33, "c": 34},
		},
		{
			name:  "unset and zero percentages are omitted",
			total: money.FromFloat(50.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(100)},
				{UserID: "b", Percentage: pctPtr(0)},
				{UserID: "c"},
			},
			want: map[string]money.Paise{"a": 5000},
		},
		{
			name:         "no included participants yields empty allocation",
			total:        money.FromFloat(50.00),
			participants: []Input{{UserID: "a"}, {UserID: "b"}},
			want:         map[string]money.Paise{},
		},
		{
			name:  "percentage above 100 is rejected",
			total: money.FromFloat(50.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(101)},
			},
			wantErr: true,
		},
		{
			name:  "negative percentage is rejected",
			total: money.FromFloat(50.00),
			participants: []Input{
				{UserID: "a", Percentage: pctPtr(-5)},
			},
			wantErr: true,
		},
	}

	s := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := s.Calculate(tt.total, tt.participants)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.want))
			}
			for _, l := range lines {
				if l.Amount != tt.want[l.UserID] {
					t.Errorf("line %s = %v, want %v", l.UserID, l.Amount, tt.want[l.UserID])
				}
			}
		})
	}
}

func TestPercentageStrategyExactSum(t *testing.T) {
	s := &PercentageStrategy{}
	tests := []struct {
		name        string
		total       money.Paise
		percentages []float64
	}{
		{"thirds of ten", money.FromFloat(10.00), []float64{33.4, 33.3, 33.3}},
		{"thirds of a hundred", money.FromFloat(100.00), []float64{33.33, 33.33, 33.34}},
		{"awkward fractions", money.FromFloat(77.77), []float64{12.5, 12.5, 25, 50}},
		{"many small shares", money.FromFloat(9.99), []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants := make([]Input, len(tt.percentages))
			for i, pct := range tt.percentages {
				p := pct
				participants[i] = Input{UserID: string(rune('a' + i)), Percentage: &p}
			}
			lines, err := s.Calculate(tt.total, participants)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sumLines(lines); got != tt.total {
				t.Errorf("sum = %v, want exactly %v", got, tt.total)
			}
		})
	}
}

func TestFixedAmountStrategy(t *testing.T) {
	s := &FixedAmountStrategy{}

	t.Run("amounts pass through unchanged", func(t *testing.T) {
		lines, err := s.Calculate(money.FromFloat(100.00), []Input{
			{UserID: "a", Amount: amtPtr(25.00)},
			{UserID: "b", Amount: amtPtr(25.00)},
			{UserID: "c", Amount: amtPtr(50.00)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []money.Paise{2500, 2500, 5000}
		for i, w := range want {
			if lines[i].Amount != w {
				t.Errorf("line %d = %v, want %v", i, lines[i].Amount, w)
			}
		}
	})

	t.Run("no redistribution even when amounts mismatch the total", func(t *testing.T) {
		lines, err := s.Calculate(money.FromFloat(99.99), []Input{
			{UserID: "a", Amount: amtPtr(25.00)},
			{UserID: "b", Amount: amtPtr(25.00)},
			{UserID: "c", Amount: amtPtr(50.00)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The mismatch is the allocation guards' problem, not the strategy's.
		if got := sumLines(lines); got != 10000 {
			t.Errorf("sum = %v, want 10000", got)
		}
	})

	t.Run("zero and unset amounts are omitted", func(t *testing.T) {
		lines, err := s.Calculate(money.FromFloat(10.00), []Input{
			{UserID: "a", Amount: amtPtr(10.00)},
			{UserID: "b", Amount: amtPtr(0)},
			{UserID: "c"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lines) != 1 || lines[0].UserID != "a" {
			t.Fatalf("got %v, want only participant a", lines)
		}
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := s.Calculate(money.FromFloat(10.00), []Input{
			{UserID: "a", Amount: amtPtr(-1)},
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	for _, typ := range []Type{TypeEqual, TypePercentage, TypeFixedAmount} {
		s, err := f.Create(typ)
		if err != nil {
			t.Fatalf("Create(%s): %v", typ, err)
		}
		if s.Type() != typ {
			t.Errorf("Create(%s).Type() = %s", typ, s.Type())
		}
	}
	if _, err := f.CreateFromString("SOMETHING_ELSE"); err == nil {
		t.Error("expected error for unknown split type")
	}
}
