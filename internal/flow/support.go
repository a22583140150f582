package flow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// supportTagSort orders release tags newest first: by version, then by
// tagger date.
var supportTagSort = []string{"-version:refname", "-taggerdate"}

// SupportStart creates a support branch from a release tag. It returns the
// support branch name.
func (e *Engine) SupportStart(ctx context.Context, opts SupportStartOptions) (string, error) {
	ctx = e.begin(ctx, "support-start")
	common := opts.CommonOptions

	if err := e.requireClean(ctx); err != nil {
		return "", err
	}

	if common.FetchRemote {
		step(ctx, "sync_remote").Msg("fetching tags")
		if err := e.repo.Fetch(ctx, e.settings.Origin, "refs/tags/*:refs/tags/*"); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("fetching tags failed, using local tags")
		}
	}

	tag, err := e.selectTag(ctx, common, opts.TagName)
	if err != nil {
		return "", err
	}

	branch := e.settings.SupportPrefix + strings.TrimPrefix(tag, e.settings.TagPrefix)
	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%s: %w", branch, gferrors.ErrBranchExists)
	}

	if err := e.checkoutNew(ctx, branch, git.TagRef(tag)); err != nil {
		return "", err
	}
	if err := e.recordBase(ctx, branch, tag); err != nil {
		return "", err
	}
	if err := e.install(ctx, common); err != nil {
		return "", err
	}
	if common.PushRemote {
		if err := e.push(ctx, common, branch, false); err != nil {
			return "", err
		}
	}

	done(ctx)
	return branch, nil
}

// selectTag resolves the tag a support branch starts from. Tags are listed
// newest first; batch runs take the newest.
func (e *Engine) selectTag(ctx context.Context, opts CommonOptions, explicit string) (string, error) {
	tags, err := e.repo.FindRefs(ctx, git.TagsPrefix, e.settings.TagPrefix+"*", git.FindRefsOptions{Sort: supportTagSort})
	if err != nil {
		return "", err
	}

	if explicit != "" {
		if slices.Contains(tags, explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%s: %w", explicit, gferrors.ErrTagNotFound)
	}

	switch {
	case len(tags) == 0:
		return "", fmt.Errorf("no %s* tags: %w", e.settings.TagPrefix, gferrors.ErrTagNotFound)
	case !opts.Interactive:
		return tags[0], nil
	}
	return e.prompter.ChooseFromList(ctx, "Release tags:", tags)
}
