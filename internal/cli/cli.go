package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/bnbgo/internal/app"
)

// DefaultConfigPath is the project file read when -config is not given.
const DefaultConfigPath = "bnbgo.hcl"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bnbgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
bnbgo - A compiler for breadboard documents.

Usage:
  bnbgo [options] [SOURCE...]

Arguments:
  SOURCE
    A .bnb file or a directory containing .bnb files. Overrides the
    sources listed in the project file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", DefaultConfigPath, "Path to the project file.")
	formatFlag := flagSet.String("format", "", "Output format. Options: 'json' or 'yaml'. Defaults to the project file, then 'json'.")
	outputFlag := flagSet.String("o", "", "Write the compiled document to this file instead of stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishFlag := flagSet.String("publish", "", "URL of a renderer to push the compiled document to.")
	followFlag := flagSet.Bool("follow", false, "Stay connected to the renderer and re-resolve positions from its layout anchors.")
	includePlacesFlag := flagSet.Bool("include-places", false, "Allow places to be included like components.")
	matchFlag := flagSet.String("match", "", "How sketch regions match affordance labels. Options: 'exact' or 'normalized'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	configPath := *configFlag
	if !set["config"] {
		if _, err := os.Stat(configPath); err != nil {
			configPath = ""
		}
	}
	slog.Debug("Project file determined.", "path", configPath)

	if configPath == "" && flagSet.NArg() == 0 {
		slog.Debug("No sources and no project file, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var includePlaces *bool
	if set["include-places"] {
		includePlaces = includePlacesFlag
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:    configPath,
		Sources:       flagSet.Args(),
		Format:        strings.ToLower(*formatFlag),
		OutputPath:    *outputFlag,
		LogFormat:     strings.ToLower(*logFormatFlag),
		LogLevel:      logLevel,
		PublishURL:    *publishFlag,
		Follow:        *followFlag,
		IncludePlaces: includePlaces,
		Match:         strings.ToLower(*matchFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
