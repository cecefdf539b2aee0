package services

import (
	"strings"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
)

// truncateRunes keeps the first max characters of s.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// InferLanguage picks the display language of generated code from the prompt.
// Checks run in order and the first hit wins, so a prompt naming both
// python and typescript is python.
func InferLanguage(prompt string) domain.LanguageCode {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "python"):
		return domain.LanguagePython
	case strings.Contains(p, "typescript"), strings.Contains(p, "tsx"):
		return domain.LanguageTypeScript
	default:
		return domain.LanguageJavaScript
	}
}
