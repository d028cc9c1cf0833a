package rules

import "regexp"

// Sentinel replaces every matched PII substring.
const Sentinel = "[SENSITIVE]"

// piiPatterns are applied independently and in order; a match of one pattern
// does not prevent a match of the other over disjoint substrings.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}`), // email
	regexp.MustCompile(`\b\d{10}\b`),                                     // 10-digit phone number
}

// Redact masks email addresses and unbroken 10-digit runs. It runs exactly
// once per request, before any other component sees the message; everything
// downstream (history, prompts, the external model) only ever gets the
// redacted text.
func Redact(text string) string {
	masked := text
	for _, pat := range piiPatterns {
		masked = pat.ReplaceAllString(masked, Sentinel)
	}
	return masked
}
