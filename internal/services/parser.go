package services

import "strings"

// The aggregator joins every input the caller has entered with '*' and
// resends the whole history on each request.
const inputDelimiter = "*"

// ParseInput splits the accumulated USSD text into its ordered non-empty
// tokens. Trailing and duplicate delimiters are discarded. This is pure:
// identical text always yields identical tokens, which is what lets a
// retransmitted request regenerate the same response instead of
// double-advancing state.
func ParseInput(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := strings.Split(text, inputDelimiter)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// ResolveStep returns the ordinal step for accumulated text: the number of
// non-empty tokens entered so far. Empty input means the session just started.
func ResolveStep(text string) int {
	return len(ParseInput(text))
}
