package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompleterMatchesPrefixes(t *testing.T) {
	r := &repl{}

	got := r.completer("de")
	require.Contains(t, got, "delete")
	require.Contains(t, got, "del")
}

func TestCompleterEmptyPrefixMatchesAll(t *testing.T) {
	r := &repl{}

	got := r.completer("")
	require.NotEmpty(t, got)
	require.Contains(t, got, "exit")
}

func TestCompleterNoMatchReturnsEmpty(t *testing.T) {
	r := &repl{}

	got := r.completer("zzz")
	require.Empty(t, got)
}

func TestRunRejectsMissingPathArgument(t *testing.T) {
	code := Run(nil, map[string]string{})
	require.NotEqual(t, 0, code)
}
