// Command pictdb is the CLI front end for the single-file picture
// repository: a pflag-based command router for scripted use (create,
// insert, read, delete, ls, gc, print-config) plus an interactive "shell"
// command for exploring a database file.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pictdb/pictdb/internal/cli"
	"github.com/pictdb/pictdb/internal/shell"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	if len(os.Args) >= 2 && os.Args[1] == "shell" {
		os.Exit(shell.Run(os.Args[2:], env))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env, sigCh)

	os.Exit(exitCode)
}
