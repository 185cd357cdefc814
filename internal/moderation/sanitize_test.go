package moderation

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "how do loops work?", "how do loops work?"},
		{"trims whitespace", "  hello there  ", "hello there"},
		{"removes html tags", "hi <b>there</b> friend", "hi there friend"},
		{"removes script with body", "before <script>alert(1)</script> after", "before  after"},
		{"script with attributes", `<script type="text/javascript">steal()</script>ok`, "ok"},
		{"only markup becomes empty", "<div><span></span></div>", ""},
		{"unclosed tag", "a <b unfinished", "a <b unfinished"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.input)
			if got != tc.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSanitize_RemovesScriptMarkers(t *testing.T) {
	out := Sanitize(`hello <script>alert(1)</script> world`)
	if strings.Contains(out, "<script") || strings.Contains(out, "</script>") {
		t.Errorf("Sanitized output still contains script markers: %q", out)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain message",
		"  padded  ",
		"<p>markup</p> and <script>x()</script>",
		"<<script>>nested</script>",
		"",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
