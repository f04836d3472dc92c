package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/annobridge/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// A local .env may carry overrides for development; its absence is fine.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment overrides from .env file.")
	}

	flagSet := flag.NewFlagSet("annobridge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
annobridge - host-side bridge for browser annotation widgets.

Usage:
  annobridge [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Falls back to the ANNOBRIDGE_CONFIG environment variable.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the configuration file or directory (shorthand).")
	listenFlag := flagSet.String("listen", "", "Bind address override, e.g. '127.0.0.1:8765'.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	probeFlag := flagSet.String("probe", "", "URL of a running bridge to smoke-check instead of serving.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	} else {
		path = os.Getenv("ANNOBRIDGE_CONFIG")
	}
	slog.Debug("Config path determined.", "path", path)

	if path == "" && *probeFlag == "" {
		slog.Debug("No config path provided, printing usage and exiting.")
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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath: path,
		Listen:     *listenFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		ProbeURL:   *probeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
