package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kilnhq/kiln/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// CreateSpec describes a single create request made from the command line.
type CreateSpec struct {
	Key     string
	Library string
	Label   string
	Args    map[string]string
}

// Command is the parsed result of a CLI invocation: the app configuration
// plus an optional create request. A nil Create means "list the registry".
type Command struct {
	Config *app.Config
	Create *CreateSpec
}

// argsFlag collects repeated -arg key=value pairs.
type argsFlag map[string]string

func (f argsFlag) String() string {
	pairs := make([]string, 0, len(f))
	for k, v := range f {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (f argsFlag) Set(raw string) error {
	name, value, found := strings.Cut(raw, "=")
	if !found || name == "" {
		return fmt.Errorf("argument %q is not in key=value form", raw)
	}
	f[name] = value
	return nil
}

// Parse processes command-line arguments. It returns the parsed command, a
// boolean indicating whether the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("kiln", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
kiln - a catalog-driven type registry.

Usage:
  kiln [options] [CATALOG_PATH]

Arguments:
  CATALOG_PATH
    Path to a directory tree of .hcl catalog manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	catalogFlag := flagSet.String("catalog", "", "Path to the catalog directory.")
	namespaceFlag := flagSet.String("namespace", "", "Logical namespace name. Defaults to the catalog directory's base name.")
	libraryTagFlag := flagSet.String("library-tag", "", "Library tag for scanned entries. Defaults to the namespace.")
	labelTagFlag := flagSet.String("label-tag", "", "Label tag for scanned entries.")
	createFlag := flagSet.String("create", "", "Key of an entry to instantiate after the scan. Without it, entries are listed.")
	libraryFlag := flagSet.String("library", "", "Library filter for -create.")
	labelFlag := flagSet.String("label", "", "Label filter for -create.")
	createArgs := argsFlag{}
	flagSet.Var(createArgs, "arg", "Constructor argument as key=value. May be repeated.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *catalogFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		slog.Debug("No catalog path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		CatalogPath: path,
		Namespace:   *namespaceFlag,
		Library:     *libraryTagFlag,
		Label:       *labelTagFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	command := &Command{Config: config}
	if *createFlag != "" {
		command.Create = &CreateSpec{
			Key:     *createFlag,
			Library: *libraryFlag,
			Label:   *labelFlag,
			Args:    createArgs,
		}
	} else if *libraryFlag != "" || *labelFlag != "" || len(createArgs) > 0 {
		return nil, false, &ExitError{Code: 2, Message: "-library, -label and -arg require -create"}
	}

	slog.Debug("CLI parser finished successfully.")
	return command, false, nil
}
