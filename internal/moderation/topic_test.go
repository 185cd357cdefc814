package moderation

import "testing"

func TestIsOnTopic_OffTopicPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"joke request", "tell me a joke about cats"},
		{"opinions", "what's your favorite ice cream flavor"},
		{"personal life", "tell me about yourself"},
		{"politics", "who should win the election"},
		{"sports", "did you watch the football game"},
		{"pop culture", "what's the best video game ever"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Off-topic patterns are persona-agnostic.
			for _, persona := range []string{"brightbyte", "tally", "quanta", "doodle"} {
				if IsOnTopic(tc.input, persona) {
					t.Errorf("Expected %q to be off-topic for %s", tc.input, persona)
				}
			}
		})
	}
}

func TestIsOnTopic_DomainKeywords(t *testing.T) {
	tests := []struct {
		input   string
		persona string
		want    bool
	}{
		{"print('hi') is giving a syntax error, can you explain why does that happen", "brightbyte", true},
		{"can you explain how fractions work when the denominators are different numbers", "tally", true},
		{"why do volcanoes erupt and where does all the lava actually come from inside", "quanta", true},
		{"can you teach me how to draw a dragon with cool patterns on its wings please", "doodle", true},
		// Long message with no domain keywords for the active persona.
		{"my grandmother is visiting next weekend and we are going to bake cookies together all day", "brightbyte", false},
	}

	for _, tc := range tests {
		got := IsOnTopic(tc.input, tc.persona)
		if got != tc.want {
			t.Errorf("IsOnTopic(%q, %s) = %v, want %v", tc.input, tc.persona, got, tc.want)
		}
	}
}

func TestIsOnTopic_ShortMessagesPermissive(t *testing.T) {
	// Short messages are likely greetings or follow-ups and pass without
	// a keyword match, as long as they clear the off-topic patterns.
	shorts := []string{"hi!", "thanks, that helped", "why?", "ok what next"}
	for _, input := range shorts {
		if !IsOnTopic(input, "brightbyte") {
			t.Errorf("Expected short message %q to be on-topic", input)
		}
	}

	// But a short off-topic request is still redirected.
	if IsOnTopic("tell me a joke about cats", "brightbyte") {
		t.Error("Short off-topic requests should not get the permissive pass")
	}
}

func TestPersonaByID(t *testing.T) {
	if p := PersonaByID("tally"); p.Subject != "math" {
		t.Errorf("Expected math persona, got %q", p.Subject)
	}
	if p := PersonaByID(""); p.ID != "brightbyte" {
		t.Errorf("Empty id should fall back to brightbyte, got %q", p.ID)
	}
	if p := PersonaByID("unknown-tutor"); p.ID != "brightbyte" {
		t.Errorf("Unknown id should fall back to brightbyte, got %q", p.ID)
	}
}
