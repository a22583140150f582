// Package git provides the repository gateway used by the git-flow engine.
// This file provides shared git command execution utilities.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// gitExecutable is the git binary looked up on PATH.
const gitExecutable = "git"

// RunCommand executes a git command in the specified directory and returns its
// trimmed standard output. A non-zero exit yields an *errors.ExternalToolError
// carrying the captured stderr (stdout when stderr is empty).
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	zerolog.Ctx(ctx).Debug().
		Str("dir", workDir).
		Strs("args", args).
		Msg("git")

	cmd := exec.CommandContext(ctx, gitExecutable, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check for context cancellation
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else if stderr.Len() == 0 {
			// git could not be started at all
			stderr.WriteString(err.Error())
		}
		return "", gferrors.NewExternalToolError(gitExecutable, args, exitCode, stdout.String(), stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// exitCode returns the exit code carried by an ExternalToolError, or -1 when
// err is not one.
func exitCode(err error) int {
	var toolErr *gferrors.ExternalToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode
	}
	return -1
}
