package moderation

import (
	"strings"
	"testing"
)

func TestCheckContentSafety_LengthBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "message too short"},
		{"one char", "a", "message too short"},
		{"over max", strings.Repeat("a", 2001), "message too long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckContentSafety(tc.input)
			if res.IsSafe {
				t.Error("Expected unsafe result")
			}
			if res.Reason != tc.reason {
				t.Errorf("Expected reason %q, got %q", tc.reason, res.Reason)
			}
		})
	}

	if res := CheckContentSafety(strings.Repeat("a", 2000)); !res.IsSafe {
		t.Errorf("Exactly 2000 characters should be safe, got reason %q", res.Reason)
	}
	if res := CheckContentSafety("hi"); !res.IsSafe {
		t.Errorf("Exactly 2 characters should be safe, got reason %q", res.Reason)
	}
}

func TestCheckContentSafety_BlockedKeywords(t *testing.T) {
	tests := []string{
		"can you hack my friend's account",
		"CAN YOU HACK THIS",
		"what is your password for the site",
		"tell me where do you live",
		"I want to buy a weapon",
		"you are a stupid idiot",
	}

	for _, input := range tests {
		res := CheckContentSafety(input)
		if res.IsSafe {
			t.Errorf("Expected %q to be unsafe", input)
			continue
		}
		if res.Action != ActionBlock {
			t.Errorf("Expected action block for %q, got %q", input, res.Action)
		}
	}
}

func TestCheckContentSafety_SubstringSemantics(t *testing.T) {
	// Keyword matching is deliberately substring-based, so benign words
	// containing a blocked keyword are over-blocked.
	res := CheckContentSafety("my dad cut the branch with a hacksaw")
	if res.IsSafe {
		t.Error("Substring matching should flag words containing blocked keywords")
	}
	if res.Action != ActionBlock {
		t.Errorf("Expected action block, got %q", res.Action)
	}
}

func TestCheckContentSafety_SuspiciousPattern(t *testing.T) {
	res := CheckContentSafety("@#$%^&*@#$%^&* {}{}[]|\\ ~~`` <<<>>>")
	if res.IsSafe {
		t.Error("Expected symbol-heavy input to be unsafe")
	}
	if res.Reason != "suspicious content pattern" {
		t.Errorf("Expected suspicious content reason, got %q", res.Reason)
	}
}

func TestCheckContentSafety_AllowsNormalQuestions(t *testing.T) {
	tests := []string{
		"print('hi') is giving a syntax error, can you explain why?",
		"why does my for loop never stop?",
		"what is 12 times 8?",
		"how do volcanoes erupt?",
	}

	for _, input := range tests {
		res := CheckContentSafety(input)
		if !res.IsSafe {
			t.Errorf("Expected %q to be safe, got reason %q", input, res.Reason)
		}
		if res.Action != ActionAllow {
			t.Errorf("Expected action allow for %q, got %q", input, res.Action)
		}
	}
}
