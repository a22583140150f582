package flow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// VersionUpdate sets a new version on a release or support branch and tags
// it. Nothing is merged. Setting the current version again commits nothing
// but still tags.
func (e *Engine) VersionUpdate(ctx context.Context, opts VersionUpdateOptions) error {
	ctx = e.begin(ctx, "version-update")
	common := opts.CommonOptions

	if err := e.requireClean(ctx); err != nil {
		return err
	}
	branch, err := e.selectUpdateBranch(ctx, common, opts.Name)
	if err != nil {
		return err
	}
	if err := e.syncBranch(ctx, common, branch); err != nil {
		return err
	}
	if err := e.checkout(ctx, branch); err != nil {
		return err
	}

	current, err := e.currentVersion(ctx)
	if err != nil {
		return err
	}
	def, err := e.settings.Calculator.HotfixVersion(current, true, opts.VersionDigitToIncrement)
	if err != nil {
		return err
	}
	next, err := e.resolveVersion(ctx, common, opts.UpdateVersion, def, "What is the new version?")
	if err != nil {
		return err
	}

	msg := e.settings.message(e.settings.Messages.VersionUpdate, messageVars{version: next})
	if _, err := e.setVersionAndCommit(ctx, common, current.String(), next, msg); err != nil {
		return err
	}

	if !opts.SkipTag {
		tagMsg := e.settings.message(e.settings.Messages.TagVersionUpdate, messageVars{version: next})
		if err := e.tag(ctx, common, e.settings.tagName(next), tagMsg); err != nil {
			return err
		}
	}

	if err := e.install(ctx, common); err != nil {
		return err
	}
	if common.PushRemote {
		if err := e.push(ctx, common, branch, true); err != nil {
			return err
		}
	}

	done(ctx)
	return nil
}

// selectUpdateBranch resolves the release or support branch of a version update.
func (e *Engine) selectUpdateBranch(ctx context.Context, opts CommonOptions, explicit string) (string, error) {
	releases, err := e.releaseBranches(ctx)
	if err != nil {
		return "", err
	}
	supports, err := e.listBranches(ctx, e.settings.SupportPrefix)
	if err != nil {
		return "", err
	}
	candidates := append(releases, supports...)

	if explicit != "" {
		if slices.Contains(candidates, explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%s is not a release or support branch: %w", explicit, gferrors.ErrBranchNotFound)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no %s* or %s* branches: %w",
			e.settings.ReleasePrefix, e.settings.SupportPrefix, gferrors.ErrBranchNotFound)
	}
	prefixes := strings.Join([]string{e.settings.ReleasePrefix, e.settings.SupportPrefix}, ", ")
	return e.chooseBranch(ctx, opts, candidates, prefixes, "Release and support branches:")
}
