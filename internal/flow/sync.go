package flow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// SyncDecision is the outcome of comparing a branch with its remote.
type SyncDecision int

// Sync decisions.
const (
	// SyncProceed means the local branch may be changed.
	SyncProceed SyncDecision = iota
	// SyncCreateLocal means only the remote branch exists and a local
	// tracking branch must be created first.
	SyncCreateLocal
	// SyncAbortDivergent means the remote has commits the local branch lacks.
	SyncAbortDivergent
)

// String returns the decision name.
func (d SyncDecision) String() string {
	switch d {
	case SyncCreateLocal:
		return "create-local"
	case SyncAbortDivergent:
		return "abort-divergent"
	default:
		return "proceed"
	}
}

// RemoteSyncResult describes a local branch relative to its remote tracking branch.
type RemoteSyncResult struct {
	LocalExists  bool
	RemoteExists bool
	// Ahead counts commits only on the local branch.
	Ahead int
	// Behind counts commits only on the remote branch.
	Behind int
}

// Decision derives what the workflow must do before changing the branch.
func (r RemoteSyncResult) Decision() SyncDecision {
	switch {
	case !r.LocalExists && r.RemoteExists:
		return SyncCreateLocal
	case r.LocalExists && r.RemoteExists && r.Behind != 0:
		return SyncAbortDivergent
	default:
		return SyncProceed
	}
}

// compareRemote fetches the branch and compares it with its remote tracking
// branch. A failed fetch is logged and the comparison runs on the refs
// already present.
func (e *Engine) compareRemote(ctx context.Context, branch string) (RemoteSyncResult, error) {
	logger := zerolog.Ctx(ctx)

	step(ctx, "sync_remote").Str("branch", branch).Msg("fetching remote branch")
	if err := e.repo.Fetch(ctx, e.settings.Origin, branch); err != nil {
		logger.Warn().Err(err).Str("branch", branch).Msg("fetch failed, comparing with stale remote refs")
	}

	var res RemoteSyncResult
	var err error
	if res.LocalExists, err = e.repo.RefExists(ctx, git.LocalRef(branch)); err != nil {
		return res, err
	}
	if res.RemoteExists, err = e.repo.RefExists(ctx, git.RemoteRef(e.settings.Origin, branch)); err != nil {
		return res, err
	}
	if res.LocalExists && res.RemoteExists {
		res.Ahead, res.Behind, err = e.repo.RevListLeftRightCount(ctx, branch, git.RemoteBranch(e.settings.Origin, branch))
		if err != nil {
			return res, err
		}
	}

	logger.Debug().
		Str("branch", branch).
		Bool("local", res.LocalExists).
		Bool("remote", res.RemoteExists).
		Int("ahead", res.Ahead).
		Int("behind", res.Behind).
		Msg("compared with remote")
	return res, nil
}

// syncBranch makes sure branch may be changed: it creates a missing local
// branch from the remote and fails with ErrRemoteAhead when the remote has
// commits the local branch lacks. Without FetchRemote it does nothing.
//
// The checked out branch is unchanged unless a local branch was created, in
// which case the new branch is checked out.
func (e *Engine) syncBranch(ctx context.Context, opts CommonOptions, branch string) error {
	if !opts.FetchRemote {
		return nil
	}
	res, err := e.compareRemote(ctx, branch)
	if err != nil {
		return err
	}

	switch res.Decision() {
	case SyncCreateLocal:
		return e.checkoutNew(ctx, branch, git.RemoteBranch(e.settings.Origin, branch))
	case SyncAbortDivergent:
		return fmt.Errorf("%s is %d commit(s) behind %s: %w",
			branch, res.Behind, git.RemoteBranch(e.settings.Origin, branch), gferrors.ErrRemoteAhead)
	default:
		return nil
	}
}

// syncBranches runs syncBranch for each distinct branch.
func (e *Engine) syncBranches(ctx context.Context, opts CommonOptions, branches ...string) error {
	seen := make(map[string]struct{}, len(branches))
	for _, b := range branches {
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		if err := e.syncBranch(ctx, opts, b); err != nil {
			return err
		}
	}
	return nil
}
