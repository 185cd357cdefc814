package moderation

import "regexp"

// solutionPatterns flags "do it for me" style prompts. Matching any of
// them short-circuits the conversation with a canned refusal instead of
// forwarding to the completion API.
var solutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwrite (the|my|all the|this|some)?\s?(code|program|essay|answer|homework)\b.{0,15}for me`),
	regexp.MustCompile(`(?i)\bdo my (homework|assignment|project|work)\b`),
	regexp.MustCompile(`(?i)\b(give|tell|show) me the (answer|answers|solution|full code)\b`),
	regexp.MustCompile(`(?i)\b(complete|full|entire|whole) (solution|code|answer|program)\b`),
	regexp.MustCompile(`(?i)\bsolve (it|this|everything|the whole thing) for me\b`),
	regexp.MustCompile(`(?i)\bjust (give|tell) me\b.{0,15}\b(answer|code|solution)\b`),
}

// IsRequestingCompleteSolution reports whether the message is asking for
// a finished answer rather than help understanding the problem.
func IsRequestingCompleteSolution(text string) bool {
	for _, p := range solutionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
