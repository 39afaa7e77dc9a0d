package invitation

import (
	"strings"
	"testing"
)

func TestNewPlaceholderID(t *testing.T) {
	a := NewPlaceholderID()
	b := NewPlaceholderID()

	if !strings.HasPrefix(a, "inv_") {
		t.Errorf("placeholder %q missing prefix", a)
	}
	if a == b {
		t.Error("placeholder ids must be unique")
	}
}

func TestIsPlaceholderID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{NewPlaceholderID(), true},
		{"inv_abc", true},
		{"user_2abcDEF", false},
		{"inv_", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPlaceholderID(tt.id); got != tt.want {
			t.Errorf("IsPlaceholderID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
