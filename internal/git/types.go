// Package git provides the repository gateway used by the git-flow engine.
// This file defines types used by the Repository.
package git

import (
	"fmt"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Ref namespaces.
const (
	HeadsPrefix   = "refs/heads/"
	TagsPrefix    = "refs/tags/"
	RemotesPrefix = "refs/remotes/"
)

// LocalRef returns the fully qualified name of a local branch.
func LocalRef(branch string) string {
	return HeadsPrefix + branch
}

// RemoteRef returns the fully qualified name of a remote tracking branch.
func RemoteRef(remote, branch string) string {
	return RemotesPrefix + remote + "/" + branch
}

// RemoteBranch returns the short remote tracking name, e.g. "origin/develop".
func RemoteBranch(remote, branch string) string {
	return remote + "/" + branch
}

// TagRef returns the fully qualified name of a tag.
func TagRef(tag string) string {
	return TagsPrefix + tag
}

// MergeMode selects how a branch is merged.
type MergeMode string

// Merge mode constants.
const (
	MergeDefault MergeMode = "merge"   // plain merge, fast-forward allowed
	MergeNoFF    MergeMode = "no-ff"   // always create a merge commit
	MergeFFOnly  MergeMode = "ff-only" // refuse anything but a fast-forward
	MergeRebase  MergeMode = "rebase"  // rebase the current branch onto ref
	MergeSquash  MergeMode = "squash"  // stage the squashed changes, commit separately
)

// ParseMergeMode converts a config or flag value into a MergeMode.
// An empty value selects MergeDefault.
func ParseMergeMode(s string) (MergeMode, error) {
	switch m := MergeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MergeDefault, nil
	case MergeDefault, MergeNoFF, MergeFFOnly, MergeRebase, MergeSquash:
		return m, nil
	default:
		return "", fmt.Errorf("%q: %w", s, gferrors.ErrInvalidMergeMode)
	}
}

// MergeOptions configures Merge.
type MergeOptions struct {
	Mode    MergeMode
	Message string // ignored by ff-only, rebase and squash
	Sign    bool
}

// CommitOptions configures Commit.
type CommitOptions struct {
	// All stages every modified tracked file before committing (git commit -a).
	All  bool
	Sign bool
}

// PushOptions configures Push.
type PushOptions struct {
	FollowTags bool
	// Options are passed to the server as --push-option values.
	Options []string
}

// FindRefsOptions configures FindRefs.
type FindRefsOptions struct {
	// Sort keys in priority order, primary key first ("-version:refname").
	Sort []string
	// Limit caps the number of results; zero means no limit.
	Limit int
}
