// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command with parsed arguments
	Execute(ctx context.Context, args *Arguments) (any, error)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, args *Arguments) (any, error)

// Execute calls f
func (f HandlerFunc) Execute(ctx context.Context, args *Arguments) (any, error) {
	return f(ctx, args)
}

// Arguments captures parsed CLI arguments and flags
type Arguments struct {
	Args   []string
	CLI    *cli.CLI
	Parser *FlagParser
	cmd    *cobra.Command
}

// GetCmd returns the cobra command for access to flag parsing utilities
func (a *Arguments) GetCmd() *cobra.Command {
	return a.cmd
}

// Changed reports whether the flag was set explicitly
func (a *Arguments) Changed(name string) bool {
	return a.cmd.Flags().Changed(name)
}

// Failure attaches an output code and an optional suggestion to an error
type Failure struct {
	Code       string
	Suggestion string
	Err        error
	// ExitCode overrides the code derived from Err when non-zero
	ExitCode int
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail wraps err with an output code
func Fail(code string, err error, suggestion string) error {
	return &Failure{Code: code, Err: err, Suggestion: suggestion}
}

// Usage reports a missing or malformed flag
func Usage(err error, suggestion string) error {
	return &Failure{Code: "USAGE_ERROR", Err: err, Suggestion: suggestion, ExitCode: cli.ExitUsage}
}

// Command wraps common command execution logic: it opens the CLI, runs the
// handler and formats either its result or its error.
// Returns a cobra RunE compatible function.
func Command(h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		quietMode, _ := cmd.Flags().GetBool("quiet")
		formatter := &cli.OutputFormatter{
			JSON:   jsonOutput,
			Quiet:  quietMode,
			Out:    cmd.OutOrStdout(),
			ErrOut: cmd.ErrOrStderr(),
		}

		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Fail("INITIALIZATION_ERROR", err, "Check the store section of the config file")
		}
		defer func() { _ = cliInstance.Close() }()

		arguments := &Arguments{
			Args:   args,
			CLI:    cliInstance,
			Parser: NewFlagParser(cmd),
			cmd:    cmd,
		}

		result, err := h.Execute(ctx, arguments)
		if err != nil {
			var failure *Failure
			if errors.As(err, &failure) {
				exitErr := formatter.Fail(failure.Code, failure.Err, failure.Suggestion)
				if failure.ExitCode != 0 {
					return &cli.ExitError{Code: failure.ExitCode, Err: failure.Err}
				}
				return exitErr
			}
			return formatter.Fail("COMMAND_ERROR", err, "")
		}

		return formatter.Success(result)
	}
}

// AddOutputFlags adds the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
	cmd.MarkFlagsMutuallyExclusive("json", "quiet")
}
