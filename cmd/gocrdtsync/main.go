// Command gocrdtsync is a small harness around the gocrdt package: it
// does not implement a transport (out of scope, §6 Non-goals), but it
// exercises the codec and the integration pipeline end to end so the
// wire format and the scheduler can be poked at from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/cshekharsharma/go-crdt-sync/cmd/gocrdtsync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
