// Package rewrite applies the local, deterministic text fixes that run
// before the grammar service sees anything: dot-joined word splitting,
// spacing cleanup, and phone-style capitalization. The passes are order
// dependent — capitalization relies on the sentence boundaries the first two
// passes produce.
package rewrite

import (
	"regexp"
	"strings"
)

const maxDotJoinPasses = 8

// proseDotJoinRE finds two alphabetic runs of length >= 2 joined by a single
// period with no surrounding word characters. RE2 has no lookarounds, so the
// boundary characters are captured and re-emitted; consumed boundaries are
// why the pass iterates.
var proseDotJoinRE = regexp.MustCompile(`(^|[^0-9A-Za-z_])([A-Za-z]{2,})\.([A-Za-z]{2,})($|[^0-9A-Za-z_])`)

// tlds holds domain suffixes that exempt a word.word candidate from
// splitting, so unprotected prose like "example.com" survives.
var tlds = map[string]bool{
	"com": true, "net": true, "org": true, "io": true, "co": true,
	"ai": true, "app": true, "dev": true, "gov": true, "edu": true,
	"me": true, "gg": true, "tv": true, "fm": true, "hk": true,
	"tw": true, "jp": true, "sg": true, "kr": true, "cn": true,
	"uk": true, "de": true, "fr": true, "it": true, "es": true,
	"nl": true, "se": true, "no": true, "fi": true,
}

// SplitDotJoinedWords turns "word.another" into "word another". Runs after
// protection, so URLs, emails, and code identifiers are already out of
// reach; digits disqualify a run, which keeps IPs and versions whole.
func SplitDotJoinedWords(text string) string {
	for i := 0; i < maxDotJoinPasses; i++ {
		replaced := proseDotJoinRE.ReplaceAllStringFunc(text, func(m string) string {
			sub := proseDotJoinRE.FindStringSubmatch(m)
			if sub == nil || tlds[strings.ToLower(sub[3])] {
				return m
			}
			return sub[1] + sub[2] + " " + sub[3] + sub[4]
		})
		if replaced == text {
			break
		}
		text = replaced
	}
	return text
}

var (
	ellipsisRE         = regexp.MustCompile(`\.\s*\.\s*\.`)
	spaceBeforePunctRE = regexp.MustCompile(`\s+([,.;:!?])`)
	spaceAfterPunctRE  = regexp.MustCompile(`([,.;:!?])([A-Za-z0-9])`)
	spaceAfterDotRE    = regexp.MustCompile(`(\.)([A-Za-z])`)
	multiSpaceRE       = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanSpacing normalizes whitespace around punctuation. Idempotent.
func CleanSpacing(text string) string {
	text = ellipsisRE.ReplaceAllString(text, "...")
	text = spaceBeforePunctRE.ReplaceAllString(text, "$1")
	text = spaceAfterPunctRE.ReplaceAllString(text, "$1 $2")
	text = spaceAfterDotRE.ReplaceAllString(text, "$1 $2")
	text = multiSpaceRE.ReplaceAllString(text, " ")
	return text
}

var (
	capAfterPunctRE = regexp.MustCompile(`([.!?])(\s+)([a-z])`)
	capParagraphRE  = regexp.MustCompile(`(^|\n\s*\n)([a-z])`)
)

// Capitalize applies light phone-style capitalization: standalone "i",
// letters after sentence punctuation, and the first letter of each
// paragraph.
func Capitalize(text string) string {
	text = capitalizeStandaloneI(text)
	text = capAfterPunctRE.ReplaceAllStringFunc(text, func(m string) string {
		sub := capAfterPunctRE.FindStringSubmatch(m)
		return sub[1] + sub[2] + strings.ToUpper(sub[3])
	})
	text = capParagraphRE.ReplaceAllStringFunc(text, func(m string) string {
		sub := capParagraphRE.FindStringSubmatch(m)
		return sub[1] + strings.ToUpper(sub[2])
	})
	return text
}

// capitalizeStandaloneI uppercases "i" when no ASCII letter sits on either
// side. Bytes of multibyte runes are >= 0x80 and count as non-letters, which
// matches the intent.
func capitalizeStandaloneI(text string) string {
	b := []byte(text)
	for i := 0; i < len(b); i++ {
		if b[i] != 'i' {
			continue
		}
		if i > 0 && isASCIILetter(b[i-1]) {
			continue
		}
		if i+1 < len(b) && isASCIILetter(b[i+1]) {
			continue
		}
		b[i] = 'I'
	}
	return string(b)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
