// Package errors provides centralized error handling for gitflow.
//
// Every failure belongs to one of four kinds, each represented by a sentinel:
//   - ErrConfiguration: invalid flags, values or patterns, detected before any mutation
//   - ErrPrecondition: repository state forbids the operation, detected before any mutation
//   - ErrExternalTool: git or the build tool exited non-zero
//   - ErrVersionComputation: a version could not be parsed or computed
//
// Specific sentinels wrap exactly one kind, so callers can check either level
// with errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrConfiguration indicates an invalid flag combination, a disallowed
	// character in a free-form argument, or an invalid naming pattern.
	ErrConfiguration = errors.New("configuration error")

	// ErrPrecondition indicates that the repository is not in a state where
	// the workflow may safely proceed.
	ErrPrecondition = errors.New("precondition failed")

	// ErrExternalTool indicates that git or the build tool returned a non-zero exit code.
	ErrExternalTool = errors.New("external tool failed")

	// ErrVersionComputation indicates an unparsable version or a blank computed version.
	ErrVersionComputation = errors.New("version computation failed")
)

// Configuration errors.
//
//nolint:gochecknoglobals // Sentinel errors wrapping a kind cannot be constants
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = fmt.Errorf("config is nil: %w", ErrConfiguration)

	// ErrInvalidArgLine indicates the build tool argument line contains a shell control character.
	ErrInvalidArgLine = fmt.Errorf("argument line contains disallowed characters: %w", ErrConfiguration)

	// ErrInvalidBranchName indicates a branch name rejected by git or by the configured pattern.
	ErrInvalidBranchName = fmt.Errorf("invalid branch name: %w", ErrConfiguration)

	// ErrInvalidPattern indicates an unparsable branch name pattern.
	ErrInvalidPattern = fmt.Errorf("invalid branch name pattern: %w", ErrConfiguration)

	// ErrUnknownVersionPolicy indicates that no version policy is registered under the given id.
	ErrUnknownVersionPolicy = fmt.Errorf("unknown version policy: %w", ErrConfiguration)

	// ErrUnknownBuildTool indicates an unsupported build tool name.
	ErrUnknownBuildTool = fmt.Errorf("unknown build tool: %w", ErrConfiguration)

	// ErrInvalidMergeMode indicates an unsupported merge mode name.
	ErrInvalidMergeMode = fmt.Errorf("invalid merge mode: %w", ErrConfiguration)

	// ErrConflictingFlags indicates that mutually exclusive options were specified.
	ErrConflictingFlags = fmt.Errorf("conflicting options specified: %w", ErrConfiguration)

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = fmt.Errorf("value cannot be empty: %w", ErrConfiguration)

	// ErrUnsupported indicates that the selected build tool cannot perform an operation.
	ErrUnsupported = fmt.Errorf("operation not supported: %w", ErrConfiguration)
)

// Precondition errors.
//
//nolint:gochecknoglobals // Sentinel errors wrapping a kind cannot be constants
var (
	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = fmt.Errorf("not a git repository: %w", ErrPrecondition)

	// ErrDirtyWorkingTree indicates uncommitted changes in the working tree or index.
	ErrDirtyWorkingTree = fmt.Errorf("you have some uncommitted files: %w", ErrPrecondition)

	// ErrRemoteAhead indicates the remote tracking branch has commits the local branch lacks.
	ErrRemoteAhead = fmt.Errorf("remote branch is ahead of the local branch: %w", ErrPrecondition)

	// ErrAmbiguousBranch indicates that several branches match where only one is expected.
	ErrAmbiguousBranch = fmt.Errorf("more than one matching branch exists: %w", ErrPrecondition)

	// ErrBranchNotFound indicates the specified branch does not exist locally or remotely.
	ErrBranchNotFound = fmt.Errorf("branch not found: %w", ErrPrecondition)

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = fmt.Errorf("branch already exists: %w", ErrPrecondition)

	// ErrTagNotFound indicates the requested tag does not exist or no tags exist at all.
	ErrTagNotFound = fmt.Errorf("tag not found: %w", ErrPrecondition)

	// ErrDetachedHead indicates HEAD does not point at a branch.
	ErrDetachedHead = fmt.Errorf("repository is in detached HEAD state: %w", ErrPrecondition)

	// ErrInteractiveRequired indicates a value must be chosen but prompting is unavailable.
	ErrInteractiveRequired = fmt.Errorf("interactive prompt required: %w", ErrPrecondition)

	// ErrMenuCanceled indicates that the user canceled a prompt.
	ErrMenuCanceled = fmt.Errorf("prompt canceled by user: %w", ErrPrecondition)

	// ErrRepositoryLocked indicates another gitflow process holds the repository run lock.
	ErrRepositoryLocked = fmt.Errorf("repository is locked by another gitflow process: %w", ErrPrecondition)

	// ErrNoMenuOptions indicates that no options were provided to a prompt.
	ErrNoMenuOptions = fmt.Errorf("no options to choose from: %w", ErrPrecondition)
)

// Version computation errors.
//
//nolint:gochecknoglobals // Sentinel errors wrapping a kind cannot be constants
var (
	// ErrVersionFormat indicates a version string that matches no recognized pattern.
	ErrVersionFormat = fmt.Errorf("invalid version format: %w", ErrVersionComputation)

	// ErrBlankVersion indicates that a computed or read version is blank.
	ErrBlankVersion = fmt.Errorf("version is blank: %w", ErrVersionComputation)
)

// Kind returns the error kind sentinel the error belongs to, or nil when the
// error is not one of ours.
func Kind(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrPrecondition, ErrExternalTool, ErrVersionComputation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
