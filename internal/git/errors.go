// Package git provides the repository gateway used by the git-flow engine.
// This file provides error sentinel re-exports from internal/errors.
package git

import (
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// ErrNotGitRepo is re-exported from internal/errors for convenience.
// Returned when the path is not a git repository.
var ErrNotGitRepo = gferrors.ErrNotGitRepo

// ErrDetachedHead is re-exported from internal/errors for convenience.
// Returned by CurrentBranch when HEAD does not point at a branch.
var ErrDetachedHead = gferrors.ErrDetachedHead
