package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Paise
	}{
		{0, 0},
		{0.01, 1},
		{1, 100},
		{33.33, 3333},
		{100.00, 10000},
		{0.005, 1},  // rounds to nearest paise
		{0.004, 0},
		{-12.34, -1234},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromFloatNoDrift(t *testing.T) {
	// Classic float traps: values like 19.99 or 0.29 have no exact binary
	// representation; a naive int64(v*100) truncates them to n-1 paise.
	tests := []struct {
		in   float64
		want Paise
	}{
		{19.99, 1999},
		{0.29, 29},
		{1.13, 113},
		{1234567.89, 123456789},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, p := range []Paise{0, 1, 99, 100, 3334, -250} {
		if got := FromDecimal(p.Decimal()); got != p {
			t.Errorf("FromDecimal(%v.Decimal()) = %v", p, got)
		}
	}

	d := decimal.RequireFromString("123.45")
	if got := FromDecimal(d); got != 12345 {
		t.Errorf("FromDecimal(123.45) = %v, want 12345", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Paise
		want string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{3334, "33.34"},
		{-150, "-1.50"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int64(tt.in), got, tt.want)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		a, b Paise
		want bool
	}{
		{100, 100, true},
		{100, 101, true},
		{100, 99, true},
		{100, 102, false},
		{0, -1, true},
		{0, -2, false},
	}

	for _, tt := range tests {
		if got := WithinTolerance(tt.a, tt.b); got != tt.want {
			t.Errorf("WithinTolerance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
