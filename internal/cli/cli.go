package cli

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/specialistvlad/trafficgo/internal/app"
	"github.com/spf13/cobra"
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

// Exit codes returned by the binary.
const (
	ExitPassed  = 0
	ExitFailed  = 1
	ExitUsage   = 2
	ExitInvalid = 3
)

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg      app.Config
		ran      bool
		timeout  time.Duration
		pathFlag string
	)

	cmd := &cobra.Command{
		Use:   "trafficgo [flags] SCENARIO",
		Short: "Run an HTTP traffic scenario as a contract test",
		Long: `trafficgo sends the requests of a traffic scenario to their servers,
respecting declared dependencies, and checks every response against its
expected status, headers and JSON body.

SCENARIO is a .json, .yaml, .yml or .hcl file, or a directory searched
recursively for such files.

Exit status: 0 all requests passed, 1 the scenario failed,
2 usage error, 3 the scenario is invalid.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ScenarioPath = pathFlag
			if cfg.ScenarioPath == "" && len(args) > 0 {
				cfg.ScenarioPath = args[0]
			}
			if cfg.ScenarioPath == "" {
				slog.Debug("No scenario path provided, printing usage and exiting.")
				return cmd.Usage()
			}
			cfg.DefaultTimeout = timeout
			ran = true
			return nil
		},
	}
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&pathFlag, "scenario", "s", "", "Path to the scenario file or directory.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVarP(&cfg.ReportFormat, "output", "o", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	flags.IntVarP(&cfg.Concurrency, "concurrency", "c", 0, "Maximum concurrent requests per wave. 0 uses the scenario rate.")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for requests without timeout_ms.")
	flags.BoolVarP(&cfg.InsecureSkipVerify, "insecure", "k", false, "Skip TLS certificate verification.")
	flags.BoolVar(&cfg.PrintScenario, "print-scenario", false, "Print the loaded scenario as JSON before running it.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if !ran {
		// --help, or no scenario given.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// FromRunError maps an app.Run error onto the exit code contract.
func FromRunError(err error) error {
	if err == nil {
		return nil
	}
	var invalid *app.InvalidScenarioError
	if errors.As(err, &invalid) {
		return &ExitError{Code: ExitInvalid, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailed, Message: err.Error()}
}
