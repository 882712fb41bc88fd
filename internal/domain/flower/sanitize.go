package flower

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageLen = 200
	MaxAuthorLen  = 50
	MaxCaptionLen = 100
)

// SanitizeMessage validates and cleans a user message: the length
// limit applies to the raw input (matches the submission form), then
// whitespace is trimmed and control characters stripped. An input
// that is empty after cleaning is rejected.
func SanitizeMessage(message string) (string, error) {
	if utf8.RuneCountInString(message) > MaxMessageLen {
		return "", ErrMessageTooLong
	}

	cleaned := stripControl(strings.TrimSpace(message))
	if cleaned == "" {
		return "", ErrEmptyMessage
	}

	return cleaned, nil
}

// SanitizeAuthor bounds and cleans a display name, substituting the
// provided anonymous fallback when nothing usable remains. Never
// fails.
func SanitizeAuthor(author, anonymous string) string {
	cleaned := stripControl(truncateRunes(strings.TrimSpace(author), MaxAuthorLen))
	if cleaned == "" {
		return anonymous
	}
	return cleaned
}

// TruncateCaption bounds an AI-generated caption.
func TruncateCaption(caption string) string {
	return truncateRunes(caption, MaxCaptionLen)
}

// stripControl removes C0 control characters and DEL.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
