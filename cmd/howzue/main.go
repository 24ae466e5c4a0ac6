// Command howzue is a single-user mood journal for the terminal.
//
// The active identity is remembered in the local store between invocations;
// entries and settings live in the configured storage backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/howzue/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, release := cli.New(cli.Options{})
	err := cmd.ExecuteContext(ctx)
	if cerr := release(); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error: close storage:", cerr)
		err = cerr
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
