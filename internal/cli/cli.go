package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Ampersand-S/dfpy/internal/app"
	"github.com/Ampersand-S/dfpy/pyre/recode"
	"github.com/Ampersand-S/dfpy/pyre/tagdata"
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
	flagSet := flag.NewFlagSet("dfpy", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dfpy - build DiamondFire code templates from declarative .hcl files.

Usage:
  dfpy [options] TEMPLATE_PATH

Arguments:
  TEMPLATE_PATH
    Path to a single .hcl template file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("f", "", "Path to the template file or directory (alternative to the positional argument).")
	dataFlag := flagSet.String("data", tagdata.DefaultPath, "Path to the codeblock tag table.")
	sendFlag := flagSet.Bool("send", false, "Send each built template to the recode item API.")
	addrFlag := flagSet.String("addr", recode.DefaultAddr, "Address of the recode item API.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *fileFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
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

	return &app.Config{
		TemplatePath: path,
		DataPath:     *dataFlag,
		Send:         *sendFlag,
		Addr:         *addrFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	}, false, nil
}
