package keys

import "testing"

func TestPlanEvent(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"single word", "Paris", "paris"},
		{"spaces become hyphens", "New York City", "new-york-city"},
		{"surrounding spaces trimmed", "  Kyoto ", "kyoto"},
		{"empty destination", "", "unknown"},
		{"blank destination", "   ", "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlanEvent(tc.input); got != tc.expected {
				t.Fatalf("PlanEvent(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}
