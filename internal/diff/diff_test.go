package diff

import (
	"strings"
	"testing"
)

func TestTextDiffLines(t *testing.T) {
	before := "alpha\nbeta\n"
	after := "alpha\ngamma\n"
	lines := TextDiff(before, after)
	if len(lines) == 0 {
		t.Fatalf("expected lines")
	}
	foundAdded := false
	foundRemoved := false
	for _, line := range lines {
		if line.Type == LineAdded {
			foundAdded = true
		}
		if line.Type == LineRemoved {
			foundRemoved = true
		}
	}
	if !foundAdded || !foundRemoved {
		t.Fatalf("expected added and removed lines")
	}
}

func TestRender(t *testing.T) {
	out := Render(TextDiff("teh cat\n", "the cat\n"))
	if !strings.Contains(out, "- teh cat") || !strings.Contains(out, "+ the cat") {
		t.Fatalf("unexpected render output:\n%s", out)
	}
}

func TestRenderNoChanges(t *testing.T) {
	out := Render(TextDiff("same\n", "same\n"))
	if out != "(no changes)\n" {
		t.Fatalf("expected no-changes marker, got %q", out)
	}
}
