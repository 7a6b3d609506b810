package httpclient

import "strings"

// bodySummaryLimit caps how much of a response body gets embedded in an
// error string.
const bodySummaryLimit = 120

// SummarizeBody condenses a response body into a form safe to embed in an
// error message: whitespace trimmed, blank input reported as "empty body",
// and anything past the limit cut off with an ellipsis.
func SummarizeBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty body"
	}
	if len(s) > bodySummaryLimit {
		return s[:bodySummaryLimit] + "..."
	}
	return s
}
