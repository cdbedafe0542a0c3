package logging

import "unicode/utf8"

const maxTextAttr = 160

// TruncateText shortens document text for log attributes so a diagnostic
// line never carries a whole input document.
func TruncateText(text string) string {
	return TruncateTextN(text, maxTextAttr)
}

func TruncateTextN(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "…"
}
