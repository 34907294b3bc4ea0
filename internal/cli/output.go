package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to stdout and stderr
	Out    io.Writer
	ErrOut io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		switch v := data.(type) {
		case interface{ GetID() string }:
			_, err := fmt.Fprintln(f.out(), v.GetID())
			return err
		case interface{ IDs() []string }:
			for _, id := range v.IDs() {
				if _, err := fmt.Fprintln(f.out(), id); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// JSONResult writes v as one line of JSON
func (f *OutputFormatter) JSONResult(v any) error {
	return json.NewEncoder(f.out()).Encode(v)
}

// Printf writes human-readable output; it is silent in quiet and JSON modes
func (f *OutputFormatter) Printf(format string, args ...any) {
	if f.Quiet || f.JSON {
		return
	}
	_, _ = fmt.Fprintf(f.out(), format, args...)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.JSONResult(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	_, _ = fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		_, _ = fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err under code and returns the ExitError for it
func (f *OutputFormatter) Fail(code string, err error, suggestion string) error {
	_ = f.ErrorWithSuggestion(code, err.Error(), suggestion)
	return &ExitError{Code: classify(err), Err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.out(), s.String())
		return err
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}
