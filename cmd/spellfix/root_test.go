package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps tests away from the developer's real .env, config file,
// and data directory.
func isolateEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	envPath := filepath.Join(tmp, ".env")
	require.NoError(t, os.WriteFile(envPath, nil, 0o600))
	t.Setenv("SPELLFIX_ENV_PATH", envPath)
	t.Setenv("SPELLFIX_DATA_DIR", tmp)
	t.Setenv("SPELLFIX_CONFIG", filepath.Join(tmp, "missing.yaml"))
	t.Setenv("SPELLFIX_LT_URL", "")
	t.Setenv("SPELLFIX_LANG", "")
	t.Setenv("SPELLFIX_TIMEOUT", "")
	t.Setenv("SPELLFIX_MAX_CHUNK", "")
	t.Setenv("SPELLFIX_BRANDS", "")
	t.Setenv("SPELLFIX_DEBUG", "")
	return tmp
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLocalFixesFromArgs(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "", "--local", "this is. a test")
	require.NoError(t, err)
	assert.Equal(t, "This is. A test", out)
}

func TestStdinTakesPrecedenceOverArgs(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "hello from.the pipe", "--local", "ignored args")
	require.NoError(t, err)
	assert.Equal(t, "Hello from the pipe", out)
	assert.NotContains(t, out, "ignored")
}

func TestEmptyInputWritesNothing(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "   \n\t ", "--local")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiffGoesToStderr(t *testing.T) {
	isolateEnv(t)

	out, errOut, err := execute(t, "", "--local", "--diff", "i said hello")
	require.NoError(t, err)
	assert.Equal(t, "I said hello", out)
	assert.Contains(t, errOut, "- i said hello")
	assert.Contains(t, errOut, "+ I said hello")
}

func TestCodeTokensSurviveLocalRun(t *testing.T) {
	isolateEnv(t)

	in := "run --dry-run against https://example.com/API and check snake_case"
	out, _, err := execute(t, in, "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "--dry-run")
	assert.Contains(t, out, "https://example.com/API")
	assert.Contains(t, out, "snake_case")
}

func TestDebugLogFileReceivesRecords(t *testing.T) {
	dataDir := isolateEnv(t)

	out, _, err := execute(t, "", "--local", "--debug", "this is. a test")
	require.NoError(t, err)
	assert.Equal(t, "This is. A test", out)

	data, err := os.ReadFile(filepath.Join(dataDir, "logs", "spellfix.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cli.config")
	assert.Contains(t, string(data), "engine.protected")
}

func TestTimeoutFlagMustBePositive(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "--local", "--timeout", "0", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--timeout")
}

func TestMaxChunkFlagMustBePositive(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "--local", "--max-chunk", "-3", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-chunk")
}

func TestBadEndpointFlagFails(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "--url", "::not-a-url::", "hello")
	require.Error(t, err)
}
