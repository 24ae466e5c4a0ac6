// Command server runs the howzue HTTP API.
//
// Configuration is read from CONFIG_PATH (or ./config.yaml) and the
// environment; see internal/config.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/howzue/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "howzue server: %v\n", err)
		os.Exit(1)
	}
}
