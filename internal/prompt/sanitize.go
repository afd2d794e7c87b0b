package prompt

import "strings"

// wordPunctuation is stripped from recommended words before they prefill the add dialog.
const wordPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// SanitizeWord removes punctuation and surrounding whitespace from a
// recommended word. Case is left untouched.
func SanitizeWord(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(wordPunctuation, r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(cleaned)
}
