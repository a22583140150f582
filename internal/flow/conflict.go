package flow

import (
	"context"

	"github.com/gitflow-tools/gitflow/internal/git"
)

// alignedMerge describes a merge that first aligns the target version with
// the source version, so the only version difference git sees is on the
// source side.
type alignedMerge struct {
	// Target is checked out and receives the merge.
	Target string
	// Source is the ref merged into Target.
	Source string
	// SourceVersion is the version Target is aligned to before the merge.
	SourceVersion string
	// AlignMessage commits the alignment.
	AlignMessage string
	// After computes the version to set after the merge from the target's
	// pre-merge version. It returns the version and the commit message.
	After func(pre string) (string, string, error)
}

// mergeAvoidingVersionConflicts runs the alignment protocol on req:
// record Vpre of the target, set the source version and commit, merge with
// --no-ff, then set the version computed by After and commit. Version
// commits are skipped when the version does not change.
func (e *Engine) mergeAvoidingVersionConflicts(ctx context.Context, opts CommonOptions, req alignedMerge) error {
	if err := e.checkout(ctx, req.Target); err != nil {
		return err
	}
	pre, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	if _, err := e.setVersionAndCommit(ctx, opts, pre, req.SourceVersion, req.AlignMessage); err != nil {
		return err
	}

	if err := e.merge(ctx, opts, req.Source, req.Target, git.MergeNoFF); err != nil {
		return err
	}

	next, message, err := req.After(pre)
	if err != nil {
		return err
	}
	current, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	_, err = e.setVersionAndCommit(ctx, opts, current, next, message)
	return err
}

// restorePre is an After callback restoring the pre-merge version.
func restorePre(message string) func(string) (string, string, error) {
	return func(pre string) (string, string, error) {
		return pre, message, nil
	}
}
