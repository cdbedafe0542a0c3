// Package protect shields code-like tokens (URLs, emails, paths, CLI flags,
// identifiers, brand names) behind unique placeholders so later pipeline
// stages cannot alter them, and restores them afterwards.
package protect

import (
	"fmt"
	"regexp"
	"strings"
)

// PlaceholderMark delimits placeholder keys. It sits in the Unicode private
// use area, which real input text does not contain, so placeholders can
// never collide with source text and are never re-matched by later patterns.
const PlaceholderMark = ''

var (
	urlRE   = regexp.MustCompile(`(?i)\b(?:https?://|ftp://|www\.)[^\s<>()"]+`)
	emailRE = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	pathRE  = regexp.MustCompile(`(?:(?:~|/)[^\s]+)|(?:[A-Za-z]:\\[^\s]+)`)
	flagRE  = regexp.MustCompile(`\B--?[A-Za-z][A-Za-z0-9-]*\b`)

	// Dotted identifiers are only protected when code-like (contain an
	// underscore, digit, or uppercase letter); plain prose such as
	// "spaces.after" stays visible so the rewriter can split it.
	dotIdentRE = regexp.MustCompile(`\b(?:[A-Za-z_][A-Za-z0-9_]*\.)+[A-Za-z_][A-Za-z0-9_]*\b`)

	camelRE = regexp.MustCompile(`\b[a-z]+[A-Z][A-Za-z0-9]*\b`)
	snakeRE = regexp.MustCompile(`\b[A-Za-z0-9]+(?:_[A-Za-z0-9]+)+\b`)
	kebabRE = regexp.MustCompile(`\b[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+\b`)
)

type span struct {
	key      string
	original string
}

// Protected is the working text plus the placeholder mapping captured while
// protecting it. Restore puts every original span back verbatim.
type Protected struct {
	Text  string
	spans []span
}

// Protector finds protected-category tokens and swaps them for placeholders.
type Protector struct {
	brandRE *regexp.Regexp
}

// NewProtector builds a protector. Brand tokens are protected first so they
// are never split or recased by later stages.
func NewProtector(brands []string) *Protector {
	return &Protector{brandRE: brandPattern(brands)}
}

func brandPattern(brands []string) *regexp.Regexp {
	if len(brands) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(brands))
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(b))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Protect replaces every protected-category token with a unique placeholder.
// Each pattern category runs one left-to-right pass; order matters (brands,
// URL, email, path, flag, dotted identifier, camelCase, snake_case,
// kebab-case).
func (p *Protector) Protect(text string) Protected {
	prot := Protected{}
	n := 0

	sub := func(re *regexp.Regexp, s string) string {
		return re.ReplaceAllStringFunc(s, func(match string) string {
			key := fmt.Sprintf("%c%d%c", PlaceholderMark, n, PlaceholderMark)
			n++
			prot.spans = append(prot.spans, span{key: key, original: match})
			return key
		})
	}

	if p.brandRE != nil {
		text = sub(p.brandRE, text)
	}
	for _, re := range []*regexp.Regexp{urlRE, emailRE, pathRE, flagRE} {
		text = sub(re, text)
	}
	text = dotIdentRE.ReplaceAllStringFunc(text, func(match string) string {
		if !looksCodeLike(match) {
			return match
		}
		key := fmt.Sprintf("%c%d%c", PlaceholderMark, n, PlaceholderMark)
		n++
		prot.spans = append(prot.spans, span{key: key, original: match})
		return key
	})
	for _, re := range []*regexp.Regexp{camelRE, snakeRE, kebabRE} {
		text = sub(re, text)
	}

	prot.Text = text
	return prot
}

// Restore replaces every placeholder occurrence with its recorded original.
// Spans are restored in reverse insertion order so a placeholder captured
// inside another protected span still resolves.
func (pr Protected) Restore(text string) string {
	for i := len(pr.spans) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, pr.spans[i].key, pr.spans[i].original)
	}
	return text
}

// Len reports how many spans were protected.
func (pr Protected) Len() int {
	return len(pr.spans)
}

// CountUnresolved counts placeholder markers surviving in text. Anything
// above zero indicates a protection/restoration mismatch.
func CountUnresolved(text string) int {
	return strings.Count(text, string(PlaceholderMark)) / 2
}

// ContainsPlaceholder reports whether s holds any placeholder marker.
func ContainsPlaceholder(s string) bool {
	return strings.ContainsRune(s, PlaceholderMark)
}

func looksCodeLike(s string) bool {
	for _, r := range s {
		if r == '_' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// NormalizeBrands re-applies canonical casing to brand tokens wherever they
// appear, protected or not. Runs after restoration so brand spellings
// introduced by the grammar service are normalized too.
func NormalizeBrands(text string, brands []string) string {
	for _, brand := range brands {
		brand = strings.TrimSpace(brand)
		if brand == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
		text = re.ReplaceAllLiteralString(text, brand)
	}
	return text
}
