package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/perchlog/perchlog/cmd"
	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/datastore"
	"github.com/perchlog/perchlog/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitFileLogging(settings); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing file logging: %v\n", err)
		os.Exit(1)
	}

	ctx := &cmd.Context{
		Settings: settings,
		Resolver: datastore.NewResolver(settings),
	}

	// Close the datastore on Ctrl-C so the file backend never leaves a
	// partially written journal behind.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = ctx.Resolver.Close()
		_ = logging.CloseFileLogging()
		os.Exit(1)
	}()

	rootCmd := cmd.RootCommand(ctx)
	err = rootCmd.Execute()

	if closeErr := ctx.Resolver.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "error closing datastore: %v\n", closeErr)
	}
	if closeErr := logging.CloseFileLogging(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
