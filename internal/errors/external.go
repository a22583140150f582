package errors

import (
	"fmt"
	"strings"
)

// ExternalToolError describes a non-zero exit of git or the build tool.
// Output holds the captured error output, or standard output when the
// process wrote nothing to stderr.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Output   string
}

// NewExternalToolError builds an ExternalToolError, preferring stderr over stdout.
func NewExternalToolError(tool string, args []string, exitCode int, stdout, stderr string) *ExternalToolError {
	output := strings.TrimSpace(stderr)
	if output == "" {
		output = strings.TrimSpace(stdout)
	}
	return &ExternalToolError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Output:   output,
	}
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	cmd := e.Tool
	if len(e.Args) > 0 {
		cmd += " " + e.Args[0]
	}
	if e.Output == "" {
		return fmt.Sprintf("%s failed with exit code %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("%s failed with exit code %d: %s", cmd, e.ExitCode, e.Output)
}

// Unwrap lets errors.Is(err, ErrExternalTool) match.
func (e *ExternalToolError) Unwrap() error {
	return ErrExternalTool
}

// CommandLine returns the full command as a single string for logging.
func (e *ExternalToolError) CommandLine() string {
	return strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
}
