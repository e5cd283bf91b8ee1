// /internal/ai/clean.go
package ai

import (
	"regexp"
	"strings"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// cleanReply strips reasoning blocks and symmetric wrapping quotes and caps
// runaway replies well above the downstream word limit.
func cleanReply(reply string) string {
	reply = thinkBlockRe.ReplaceAllString(strings.TrimSpace(reply), "")
	reply = strings.TrimSpace(reply)

	if len(reply) >= 2 {
		for _, q := range quotePairs {
			if strings.HasPrefix(reply, q[0]) && strings.HasSuffix(reply, q[1]) {
				reply = strings.TrimSuffix(strings.TrimPrefix(reply, q[0]), q[1])
				reply = strings.TrimSpace(reply)
				break
			}
		}
	}

	if len(reply) > 2800 {
		reply = reply[:2800] + "\n\n[truncated]"
	}
	return reply
}

// isGarbageResponse flags replies that are not usable chat content: an HTML
// error page, a refusal or rate-limit stub, or something too short to mean
// anything.
func isGarbageResponse(s string) bool {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "<html"):
		return true
	case strings.Contains(l, "not allowed"):
		return true
	case strings.Contains(l, "rate limit"):
		return true
	case len(strings.TrimSpace(s)) < 5:
		return true
	}
	return false
}
