// Package git provides the repository gateway used by the git-flow engine.
// This file defines the Repository interface.
package git

import "context"

// Repository defines the git operations the workflow engine consumes.
// All operations run in the repository's working directory and use context
// for cancellation.
type Repository interface {
	// FindRefs lists refs below refPrefix (e.g. "refs/heads/") whose remainder
	// matches the glob pattern. Names are returned without refPrefix.
	FindRefs(ctx context.Context, refPrefix, pattern string, opts FindRefsOptions) ([]string, error)

	// RefExists reports whether the fully qualified ref exists.
	RefExists(ctx context.Context, ref string) (bool, error)

	// HasUncommittedChanges reports staged or unstaged changes to tracked files.
	HasUncommittedChanges(ctx context.Context) (bool, error)

	// RevListLeftRightCount counts commits reachable only from a (left) and only
	// from b (right).
	RevListLeftRightCount(ctx context.Context, a, b string) (left, right int, err error)

	// Checkout switches to an existing branch or ref.
	Checkout(ctx context.Context, ref string) error

	// CheckoutNew creates branch from fromRef and checks it out.
	CheckoutNew(ctx context.Context, branch, fromRef string) error

	// DeleteBranch deletes a local branch.
	DeleteBranch(ctx context.Context, name string, force bool) error

	// Merge merges ref into the current branch using opts.Mode.
	Merge(ctx context.Context, ref string, opts MergeOptions) error

	// Tag creates an annotated (or signed) tag at HEAD.
	Tag(ctx context.Context, name, message string, signed bool) error

	// Commit records a commit with the given message.
	Commit(ctx context.Context, message string, opts CommitOptions) error

	// Push pushes ref to remote.
	Push(ctx context.Context, remote, ref string, opts PushOptions) error

	// PushDelete deletes ref on remote.
	PushDelete(ctx context.Context, remote, ref string) error

	// Fetch downloads objects and refs from remote. Without refspecs everything is fetched.
	Fetch(ctx context.Context, remote string, refspecs ...string) error

	// SetConfig writes a repository-local git config value.
	SetConfig(ctx context.Context, key, value string) error

	// CurrentBranch returns the currently checked out branch.
	// Returns ErrDetachedHead in detached HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// ValidBranchName reports whether git accepts name as a branch name.
	ValidBranchName(ctx context.Context, name string) (bool, error)
}
