// Package chunk splits protected text into paragraph-aligned pieces under a
// size bound so each piece fits one grammar-service request.
package chunk

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var paragraphBoundaryRE = regexp.MustCompile(`\n\s*\n`)

// Split greedily packs paragraphs (with their blank-line boundary markers)
// into chunks of at most maxChars runes. A paragraph is never cut: a single
// paragraph larger than maxChars becomes one oversized chunk. Joining the
// returned chunks reproduces text exactly.
func Split(text string, maxChars int) []string {
	parts := splitKeepingBoundaries(text)
	var chunks []string
	var cur strings.Builder
	curLen := 0
	for _, part := range parts {
		partLen := utf8.RuneCountInString(part)
		if curLen+partLen > maxChars && curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		cur.WriteString(part)
		curLen += partLen
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// splitKeepingBoundaries cuts text on blank-line boundaries, returning the
// boundary markers as their own elements so concatenation is lossless.
func splitKeepingBoundaries(text string) []string {
	locs := paragraphBoundaryRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	parts := make([]string, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		parts = append(parts, text[prev:loc[0]], text[loc[0]:loc[1]])
		prev = loc[1]
	}
	parts = append(parts, text[prev:])
	return parts
}
