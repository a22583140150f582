// Package build provides the build tool gateway: reading and writing the
// project version and running the project's test, install and custom goals.
//
// SECURITY NOTE: the shell commands run by the version-file tool come from
// project configuration (.gitflow.yaml) or the user's global config
// (~/.gitflow/config.yaml) and are trusted the same way Makefiles or npm
// scripts are. Free-form argument lines are rejected when they contain
// '&', '|' or ';' (see ValidateArgLine); that deny list is not a complete
// shell-injection defense.
package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// CommandRunner defines the interface for executing external commands.
// This allows for testing by injecting mock implementations.
type CommandRunner interface {
	// Run executes argv in workDir and returns its output.
	Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
type DefaultCommandRunner struct {
	// LiveOutput, when set, receives stdout and stderr while they are captured.
	LiveOutput io.Writer
}

// Run executes argv[0] with the remaining arguments.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error) {
	if len(argv) == 0 {
		return "", "", 1, errEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //#nosec G204 -- argv comes from trusted configuration
	cmd.Dir = workDir

	var outBuf, errBuf bytes.Buffer
	if r.LiveOutput != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, r.LiveOutput)
		cmd.Stderr = io.MultiWriter(&errBuf, r.LiveOutput)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return stdout, stderr, exitCode, err
}

// ShellCommand wraps a configured command line for execution through sh -c.
func ShellCommand(command string) []string {
	return []string{"sh", "-c", command}
}

var errEmptyCommand = errors.New("empty command")

// Ensure DefaultCommandRunner implements CommandRunner.
var _ CommandRunner = (*DefaultCommandRunner)(nil)
