package cli

import (
	"bytes"
	"strings"
	"testing"
)

// CLI is a minimal test harness that runs commands against a scratch
// working directory, grounded on the teacher's NewCLI/MustRun fixture but
// scaled to this package's small command set.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI returns a harness rooted at a fresh temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{t: t, Dir: t.TempDir(), Env: map[string]string{}}
}

// Run executes pictdb with args against the harness directory, returning
// stdout, stderr, and the exit code.
func (c *CLI) Run(args ...string) (stdout, stderr string, code int) {
	c.t.Helper()

	var outBuf, errBuf bytes.Buffer

	full := append([]string{"pictdb", "-C", c.Dir}, args...)
	code = Run(strings.NewReader(""), &outBuf, &errBuf, full, c.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun runs args and fails the test if the exit code is non-zero,
// returning stdout.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("pictdb %v: exit %d\nstdout: %s\nstderr: %s", args, code, stdout, stderr)
	}

	return stdout
}

// AssertContains fails the test if haystack does not contain needle.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
