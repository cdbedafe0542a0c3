// Package patch applies grammar-service matches to a chunk. Only
// misspelling matches qualify; spans touching placeholders and case-only
// swaps are skipped. Offsets address the pre-edit chunk, so a running shift
// tracks how earlier edits moved later ones.
package patch

import (
	"log/slog"
	"strings"

	"spellfix/internal/languagetool"
	"spellfix/internal/protect"
)

// Apply rewrites text left to right in the order matches arrive (the
// service sends them sorted by offset; they are not re-sorted here). Spans
// that fall outside the text or start before the end of the previously
// applied edit are skipped with a debug diagnostic. Returns the patched
// text and the number of edits applied.
func Apply(text string, matches []languagetool.Match, logger *slog.Logger) (string, int) {
	if len(matches) == 0 {
		return text, 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	runes := []rune(text)
	shift := 0
	prevEnd := 0
	applied := 0
	for _, m := range matches {
		if m.Rule.IssueType != languagetool.IssueMisspelling {
			continue
		}
		if len(m.Replacements) == 0 {
			continue
		}
		replacement := m.Replacements[0].Value

		start := m.Offset + shift
		end := start + m.Length
		if m.Offset < 0 || m.Length < 0 || start < 0 || end > len(runes) {
			logger.Debug("patch.span_out_of_bounds",
				"offset", m.Offset, "length", m.Length, "shift", shift)
			continue
		}
		if start < prevEnd {
			logger.Debug("patch.span_overlaps_previous_edit",
				"offset", m.Offset, "length", m.Length)
			continue
		}

		orig := string(runes[start:end])
		if strings.ContainsRune(orig, protect.PlaceholderMark) {
			continue
		}
		// Pure capitalization swaps are style opinions, not misspellings.
		if orig != replacement && strings.ToLower(orig) == strings.ToLower(replacement) {
			continue
		}

		replRunes := []rune(replacement)
		next := make([]rune, 0, len(runes)-m.Length+len(replRunes))
		next = append(next, runes[:start]...)
		next = append(next, replRunes...)
		next = append(next, runes[end:]...)
		runes = next

		shift += len(replRunes) - m.Length
		prevEnd = start + len(replRunes)
		applied++
	}
	return string(runes), applied
}
