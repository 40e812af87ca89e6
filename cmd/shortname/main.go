// Command shortname derives and levels short display names.
//
// Without a configured store it works on names given on the command line or
// in a YAML file. With SHORTNAME_STORE set to postgres or mongo it assigns
// and re-levels short names of stored records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrymomot/shortname/pkg/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// The logger doesn't exist until config is loaded; bootstrap errors go
	// straight to stderr.
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shortname: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRunID(ctx, uuid.NewString())

	app := newApp(cfg, newLogger(cfg))
	if err := app.rootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
