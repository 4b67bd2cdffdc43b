package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kilnhq/kiln/internal/app"
	"github.com/kilnhq/kiln/internal/cli"
	"github.com/kilnhq/kiln/internal/registry"
)

// main is the entrypoint for the kiln CLI.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	command, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx := context.Background()
	kilnApp, err := app.New(ctx, outW, command.Config)
	if err != nil {
		return err
	}

	if command.Create == nil {
		return kilnApp.ListEntries(ctx)
	}

	ctorArgs := make(registry.Args, len(command.Create.Args))
	for name, value := range command.Create.Args {
		ctorArgs[name] = value
	}
	instance, err := kilnApp.CreateInstance(ctx, command.Create.Key, &registry.Options{
		Library: command.Create.Library,
		Label:   command.Create.Label,
	}, ctorArgs)
	if err != nil {
		return err
	}

	fmt.Fprintf(outW, "%#v\n", instance)
	return nil
}
