package moderation

import (
	"regexp"
	"strings"
)

// Messages shorter than this are treated permissively as greetings or
// follow-ups ("thanks!", "why?") rather than classified by keyword.
const shortMessageLength = 50

// offTopicPatterns is shared across all personas: a message matching any
// of these is redirected no matter which tutor is active. Only the
// on-topic keyword set below is persona-specific.
var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(tell|know|got)\b.{0,20}\bjokes?\b`),
	regexp.MustCompile(`(?i)\b(funny|meme|prank)s?\b`),
	regexp.MustCompile(`(?i)what('s| is| are)? your (favorite|favourite|opinion)`),
	regexp.MustCompile(`(?i)\b(girlfriend|boyfriend|are you (married|single|real|human))\b`),
	regexp.MustCompile(`(?i)tell me about (yourself|your (life|family|day))`),
	regexp.MustCompile(`(?i)\b(politic\w*|president|election|vote|government)\b`),
	regexp.MustCompile(`(?i)\b(religio\w*|church|pray\w*|god)\b`),
	regexp.MustCompile(`(?i)\b(football|soccer|basketball|baseball|cricket|sports? (team|game|match))\b`),
	regexp.MustCompile(`(?i)\b(movie|tv show|video game|fortnite|minecraft|roblox|youtube channel)\b`),
}

var domainKeywords = map[string][]string{
	"brightbyte": {
		"python", "code", "coding", "program", "bug", "error", "function", "loop",
		"variable", "print", "syntax", "list", "string", "debug", "script",
		"while loop", "if statement", "indent", "compile", "algorithm",
	},
	"tally": {
		"math", "number", "add", "plus", "subtract", "minus", "multiply", "times",
		"divide", "fraction", "decimal", "equation", "sum", "count", "shape",
		"angle", "geometry", "measure", "graph", "percent",
	},
	"quanta": {
		"science", "experiment", "planet", "space", "star", "animal", "plant",
		"energy", "water", "weather", "rock", "dinosaur", "body", "cell", "magnet",
		"light", "sound", "gravity", "volcano",
	},
	"doodle": {
		"draw", "drawing", "paint", "color", "colour", "art", "sketch", "design",
		"shade", "pencil", "crayon", "shape", "pattern", "craft", "doodle",
	},
}

// IsOnTopic decides whether a message fits the active tutor's subject.
// Off-topic patterns win over everything, including the short-message
// allowance; a short message that clears them is let through as a likely
// greeting or follow-up.
func IsOnTopic(text, personaID string) bool {
	for _, p := range offTopicPatterns {
		if p.MatchString(text) {
			return false
		}
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < shortMessageLength {
		return true
	}

	lower := strings.ToLower(trimmed)
	keywords := domainKeywords[PersonaByID(personaID).ID]
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
