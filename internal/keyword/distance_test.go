package keyword

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"identical", "strix", "strix", 0},
		{"both empty", "", "", 0},
		{"empty a", "", "rog", 3},
		{"empty b", "rog", "", 3},
		{"substitution", "nitro", "nytro", 1},
		{"insertion", "strx", "strix", 1},
		{"deletion", "legion", "legon", 1},
		{"transposition", "rgo", "rog", 1},
		{"kitten to sitting", "kitten", "sitting", 3},
		{"unicode", "café", "cafe", 1},
		{"case sensitive", "ROG", "rog", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EditDistance(tt.a, tt.b); got != tt.expected {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			if got := EditDistance(tt.b, tt.a); got != tt.expected {
				t.Errorf("EditDistance(%q, %q) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.expected)
			}
		})
	}
}
