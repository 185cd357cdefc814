package moderation

// Scripted assistant messages for soft-blocked conversations. Policy
// rejections are returned as normal chat replies, not HTTP errors.
const (
	SlowDownMessage = `Whoa, you're typing fast! Give me a moment to catch up. ` +
		`Let's take a little break and try again in a minute.`

	StartFreshMessage = `Wow, we've been chatting for a while! My memory is getting full. ` +
		`Let's start a fresh conversation so I can help you better!`

	FallbackMessage = `Hmm, let's talk about something else! I'm here to help you learn. ` +
		`What would you like to work on today?`

	NoSolutionsMessage = `I can't just hand you the answer, because figuring it out is how you learn! ` +
		`But I'd love to help you get there step by step. What part are you stuck on?`
)
