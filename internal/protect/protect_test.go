package protect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		input string
		token string
	}{
		{"url", "see https://example.com/docs?q=1 for details", "https://example.com/docs?q=1"},
		{"www url", "go to www.example.org now", "www.example.org"},
		{"email", "mail me at dev.user+tag@example.io today", "dev.user+tag@example.io"},
		{"unix path", "open /usr/local/bin/spellfix please", "/usr/local/bin/spellfix"},
		{"home path", "check ~/notes/todo.txt soon", "~/notes/todo.txt"},
		{"windows path", `run C:\Tools\spellfix.exe now`, `C:\Tools\spellfix.exe`},
		{"long flag", "pass --max-chunk to the tool", "--max-chunk"},
		{"short flag", "use -v for verbose", "-v"},
		{"camel", "the parseText helper is fine", "parseText"},
		{"snake", "the max_chunk_chars value", "max_chunk_chars"},
		{"kebab", "our spell-fix release", "spell-fix"},
		{"dotted ident", "call os.Getenv here", "os.Getenv"},
		{"dotted ident digits", "pin v1.release2.build maybe", "v1.release2.build"},
	}
	p := NewProtector(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prot := p.Protect(tc.input)
			require.NotContains(t, prot.Text, tc.token, "token must be replaced")
			require.True(t, ContainsPlaceholder(prot.Text))
			restored := prot.Restore(prot.Text)
			assert.Equal(t, tc.input, restored)
		})
	}
}

func TestProseDottedIdentifierNotProtected(t *testing.T) {
	p := NewProtector(nil)
	prot := p.Protect("spaces.after the dot")
	assert.Equal(t, "spaces.after the dot", prot.Text)
	assert.Zero(t, prot.Len())
}

func TestBrandProtectedFirst(t *testing.T) {
	p := NewProtector([]string{"SpellFix"})
	prot := p.Protect("SpellFix and spellfix and SPELLFIX")
	require.NotContains(t, prot.Text, "SpellFix")
	// All three case variants are captured by the brand pass, none left for
	// the camelCase pass.
	assert.Equal(t, 3, prot.Len())
	restored := prot.Restore(prot.Text)
	assert.Equal(t, "SpellFix and spellfix and SPELLFIX", restored)
}

func TestPlaceholdersUnique(t *testing.T) {
	p := NewProtector(nil)
	prot := p.Protect("visit https://a.example and https://b.example plus user@example.com")
	require.Equal(t, 3, prot.Len())
	seen := map[string]bool{}
	for _, s := range prot.spans {
		require.False(t, seen[s.key], "duplicate placeholder %q", s.key)
		seen[s.key] = true
	}
}

func TestRestoreNestedSpans(t *testing.T) {
	// A brand token inside a URL is protected first, so the URL span
	// captures the brand's placeholder; reverse-order restore resolves both.
	p := NewProtector([]string{"SpellFix"})
	input := "see https://spellfix.dev/SpellFix now"
	prot := p.Protect(input)
	restored := prot.Restore(prot.Text)
	assert.Equal(t, input, restored)
	assert.Zero(t, CountUnresolved(restored))
}

func TestCountUnresolved(t *testing.T) {
	assert.Zero(t, CountUnresolved("clean text"))
	marked := string(PlaceholderMark) + "4" + string(PlaceholderMark)
	assert.Equal(t, 1, CountUnresolved("oops "+marked))
}

func TestNormalizeBrands(t *testing.T) {
	got := NormalizeBrands("spellfix is great, SPELLFIX even", []string{"SpellFix"})
	assert.Equal(t, "SpellFix is great, SpellFix even", got)
	// Substring occurrences inside larger words stay untouched.
	got = NormalizeBrands("spellfixer", []string{"SpellFix"})
	assert.Equal(t, "spellfixer", got)
}

func TestProtectOrderURLBeforeKebab(t *testing.T) {
	p := NewProtector(nil)
	prot := p.Protect("https://my-site.example/path stays whole")
	require.Equal(t, 1, prot.Len())
	assert.False(t, strings.Contains(prot.Text, "my-site"))
}
