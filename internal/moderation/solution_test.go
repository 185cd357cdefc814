package moderation

import "testing"

func TestIsRequestingCompleteSolution(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"write the code for me", true},
		{"give me the answer", true},
		{"can you do my homework tonight", true},
		{"just give me the full code", true},
		{"show me the solution to problem 3", true},
		{"solve it for me please", true},
		{"how do I debug this loop", false},
		{"can you explain why my answer was wrong", false},
		{"what does this error message mean", false},
		{"help me write a function that adds two numbers", false},
	}

	for _, tc := range tests {
		got := IsRequestingCompleteSolution(tc.input)
		if got != tc.want {
			t.Errorf("IsRequestingCompleteSolution(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
