package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/rdom/internal/dom"
)

// Exit codes for rdom commands.
const (
	ExitSuccess      = 0 // Command succeeded
	ExitFailure      = 1 // No match, invalid selector, snapshot differs, scenarios failed
	ExitCommandError = 2 // Unreadable fixture or config, database errors
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders command results as json or text.
//
// Results go to Out and verbose notes to Notes, so JSON on Out stays
// machine-readable. Once a command has built a document, SandboxID names
// the sandbox in every JSON response and in the verbose text notes.
type OutputFormatter struct {
	Format    string
	Out       io.Writer
	Notes     io.Writer
	Verbose   bool
	SandboxID string
}

// Response is the JSON envelope written by every command.
type Response struct {
	Status    string         `json:"status"` // "ok" or "error"
	SandboxID string         `json:"sandbox_id,omitempty"`
	Data      any            `json:"data,omitempty"`
	Error     *ResponseError `json:"error,omitempty"`
}

// ResponseError describes a failed command. DOMCode is set when the cause
// is a dom error, e.g. INVALID_QUERY_SELECTOR.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	DOMCode string `json:"dom_code,omitempty"`
}

// textWriter is implemented by results with their own text rendering.
type textWriter interface {
	WriteText(w io.Writer) error
}

// Success writes data in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(Response{Status: "ok", SandboxID: f.SandboxID, Data: data})
	}

	if f.SandboxID != "" {
		f.Notef("sandbox %s", f.SandboxID)
	}
	if tw, ok := data.(textWriter); ok {
		return tw.WriteText(f.Out)
	}
	_, err := fmt.Fprintln(f.Out, data)
	return err
}

// Error writes a failure with an rdom error code. cause may be nil.
func (f *OutputFormatter) Error(code, message string, cause error) error {
	re := newResponseError(code, message, cause)
	if f.Format == "json" {
		return f.encode(Response{Status: "error", SandboxID: f.SandboxID, Error: re})
	}

	_, err := fmt.Fprintf(f.Out, "Error [%s]: %s\n", re.Code, re.Message)
	return err
}

// Notef writes a note when verbose. Notes default to Out when unset.
func (f *OutputFormatter) Notef(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.Notes
	if w == nil {
		w = f.Out
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// encode writes v as one JSON line. Node data is markup-heavy, so HTML
// characters are left unescaped.
func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.Out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newResponseError(code, message string, cause error) *ResponseError {
	re := &ResponseError{Code: code, Message: message}
	if cause == nil {
		return re
	}
	re.Message = fmt.Sprintf("%s: %v", message, cause)
	var domErr *dom.Error
	if errors.As(cause, &domErr) {
		re.DOMCode = string(domErr.Code)
	}
	return re
}
