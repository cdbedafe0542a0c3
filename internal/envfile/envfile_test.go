package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport SPELLFIX_ENVFILE_A=\"hello\"\nSPELLFIX_ENVFILE_B=world\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("SPELLFIX_ENVFILE_B", "already-set")
	defer os.Unsetenv("SPELLFIX_ENVFILE_A")

	res := LoadPath(path)
	if res.Err != nil {
		t.Fatalf("load: %v", res.Err)
	}
	if !res.Loaded {
		t.Fatalf("expected Loaded")
	}
	if res.Keys != 1 {
		t.Fatalf("expected 1 key set, got %d", res.Keys)
	}
	if got := os.Getenv("SPELLFIX_ENVFILE_A"); got != "hello" {
		t.Fatalf("SPELLFIX_ENVFILE_A = %q", got)
	}
	if got := os.Getenv("SPELLFIX_ENVFILE_B"); got != "already-set" {
		t.Fatalf("existing env must not be overwritten, got %q", got)
	}
}

func TestLoadPathMissing(t *testing.T) {
	res := LoadPath(filepath.Join(t.TempDir(), "missing.env"))
	if res.Loaded {
		t.Fatalf("expected not loaded")
	}
	if res.Err == nil {
		t.Fatalf("expected error for missing file")
	}
}
