package moderation

import "strings"

type Action string

const (
	ActionAllow Action = "allow"
	ActionWarn  Action = "warn"
	ActionBlock Action = "block"
)

// SafetyCheckResult is the outcome of a content safety check. Never persisted.
type SafetyCheckResult struct {
	IsSafe bool
	Reason string
	Action Action
}

const (
	minMessageLength = 2
	maxMessageLength = 2000

	// Fraction of non-alphanumeric, non-basic-punctuation characters above
	// which a message is treated as a likely injection attempt.
	suspiciousCharRatio = 0.3
)

// blockedKeywords is matched case-insensitively as substrings. Substring
// semantics are intentional even though they catch innocent words like
// "hacksaw"; over-blocking is acceptable on a children's platform.
var blockedKeywords = []string{
	// illegal or dangerous activity
	"hack", "steal", "weapon", "drugs", "bomb", "kill", "hurt yourself", "suicide",
	// personal information solicitation
	"your address", "home address", "phone number", "credit card", "your password",
	"what school do you go", "where do you live", "send me a photo", "meet me",
	// harassment
	"stupid idiot", "i hate you", "shut up", "loser",
	// sexual content
	"sex", "naked", "porn",
}

// CheckContentSafety runs the keyword/ratio heuristics over a message.
// Length checks short-circuit before keyword scanning; keyword scanning
// stops at the first match. This is not an NLP classifier and false
// positives/negatives are expected.
func CheckContentSafety(text string) SafetyCheckResult {
	if len(text) < minMessageLength {
		return SafetyCheckResult{IsSafe: false, Reason: "message too short", Action: ActionWarn}
	}
	if len(text) > maxMessageLength {
		return SafetyCheckResult{IsSafe: false, Reason: "message too long", Action: ActionWarn}
	}

	lower := strings.ToLower(text)
	for _, keyword := range blockedKeywords {
		if strings.Contains(lower, keyword) {
			return SafetyCheckResult{IsSafe: false, Reason: "blocked keyword: " + keyword, Action: ActionBlock}
		}
	}

	if unusualCharRatio(text) > suspiciousCharRatio {
		return SafetyCheckResult{IsSafe: false, Reason: "suspicious content pattern", Action: ActionWarn}
	}

	return SafetyCheckResult{IsSafe: true, Action: ActionAllow}
}

func unusualCharRatio(text string) float64 {
	unusual := 0
	total := 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '\n', r == '\t':
		case strings.ContainsRune(`.,!?'"()-:;`, r):
		default:
			unusual++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(unusual) / float64(total)
}
