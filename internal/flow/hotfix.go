package flow

import (
	"context"
	"fmt"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// HotfixStart creates a hotfix branch from production or a support branch
// and sets the hotfix version on it. It returns the hotfix branch name.
func (e *Engine) HotfixStart(ctx context.Context, opts HotfixStartOptions) (string, error) {
	ctx = e.begin(ctx, "hotfix-start")
	common := opts.CommonOptions

	if err := e.requireClean(ctx); err != nil {
		return "", err
	}
	base, err := e.hotfixBase(ctx, opts)
	if err != nil {
		return "", err
	}
	if err := e.syncBranch(ctx, common, base); err != nil {
		return "", err
	}

	if err := e.checkout(ctx, base); err != nil {
		return "", err
	}
	current, err := e.currentVersion(ctx)
	if err != nil {
		return "", err
	}
	def, err := e.settings.Calculator.HotfixVersion(current, e.settings.SnapshotInHotfix, opts.HotfixVersionDigitToIncrement)
	if err != nil {
		return "", err
	}
	hotfixVersion, err := e.resolveVersion(ctx, common, opts.HotfixVersion, def, "What is the hotfix version?")
	if err != nil {
		return "", err
	}
	hotfixInfo, err := version.Parse(hotfixVersion)
	if err != nil {
		return "", err
	}

	branch := e.settings.HotfixPrefix + hotfixInfo.ReleaseVersionString()
	if base != e.settings.Production {
		branch = e.settings.HotfixPrefix + base + "/" + hotfixInfo.ReleaseVersionString()
	}
	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%s: %w", branch, gferrors.ErrBranchExists)
	}

	target := hotfixVersion
	if e.settings.SnapshotInHotfix && !hotfixInfo.IsSnapshot() {
		target = hotfixInfo.SnapshotVersionString()
	}

	if err := e.checkoutNew(ctx, branch, base); err != nil {
		return "", err
	}
	msg := e.settings.message(e.settings.Messages.HotfixStart, messageVars{version: target})
	if _, err := e.setVersionAndCommit(ctx, common, current.String(), target, msg); err != nil {
		return "", err
	}

	if err := e.recordBase(ctx, branch, base); err != nil {
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

// hotfixBase resolves the branch a hotfix starts from.
func (e *Engine) hotfixBase(ctx context.Context, opts HotfixStartOptions) (string, error) {
	prod := e.settings.Production
	if opts.FromBranch != "" {
		if opts.FromBranch != prod && !strings.HasPrefix(opts.FromBranch, e.settings.SupportPrefix) {
			return "", fmt.Errorf("hotfix base %q is neither %s nor a support branch: %w",
				opts.FromBranch, prod, gferrors.ErrInvalidBranchName)
		}
		ok, err := e.branchExists(ctx, opts.FromBranch)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s: %w", opts.FromBranch, gferrors.ErrBranchNotFound)
		}
		return opts.FromBranch, nil
	}

	if !opts.Interactive {
		return prod, nil
	}
	supports, err := e.listBranches(ctx, e.settings.SupportPrefix)
	if err != nil {
		return "", err
	}
	if len(supports) == 0 {
		return prod, nil
	}
	return e.prompter.ChooseOne(ctx, append([]string{prod}, supports...), prod, "Base branches:", "Base branch for hotfix")
}

// hotfixTarget returns the branch a hotfix is merged into: the support
// branch encoded in its name, or production.
func (s Settings) hotfixTarget(branch string) (string, bool) {
	b := s.Classify(branch)
	if b.Kind != KindHotfix {
		return s.Production, false
	}
	rest := b.ShortName()
	if i := strings.LastIndex(rest, "/"); i > 0 {
		if base := s.Classify(rest[:i]); base.Kind == KindSupport && base.ShortName() != "" {
			return base.Name, true
		}
	}
	return s.Production, false
}

// HotfixFinish merges a hotfix into production (or its support branch),
// tags it and brings it into the release branch in progress or the
// development branch.
func (e *Engine) HotfixFinish(ctx context.Context, opts HotfixFinishOptions) error {
	ctx = e.begin(ctx, "hotfix-finish")
	common := opts.CommonOptions
	dev := e.settings.Development

	if err := e.requireClean(ctx); err != nil {
		return err
	}
	branch, err := e.selectBranch(ctx, common, e.settings.HotfixPrefix, opts.Name, "Hotfix branches:")
	if err != nil {
		return err
	}
	target, onSupport := e.settings.hotfixTarget(branch)

	// a hotfix of production goes into the release in progress, if any,
	// otherwise into development
	var release string
	backMerge := !onSupport && !opts.SkipMergeDevBranch
	if backMerge {
		releases, err := e.releaseBranches(ctx)
		if err != nil {
			return err
		}
		switch {
		case len(releases) > 1:
			return fmt.Errorf("release branches %s: %w", strings.Join(releases, ", "), gferrors.ErrAmbiguousBranch)
		case len(releases) == 1:
			release = releases[0]
		}
	}

	toSync := []string{branch, target}
	switch {
	case release != "":
		toSync = append(toSync, release)
	case backMerge && !e.settings.sameProdDev():
		toSync = append(toSync, dev)
	}
	if err := e.syncBranches(ctx, common, toSync...); err != nil {
		return err
	}

	if err := e.checkout(ctx, branch); err != nil {
		return err
	}
	if err := e.test(ctx, common); err != nil {
		return err
	}
	if err := e.runGoals(ctx, e.settings.PreHotfixGoals); err != nil {
		return err
	}

	hotfixInfo, err := e.stripSnapshot(ctx, common, e.settings.Messages.HotfixVersionUpdate)
	if err != nil {
		return err
	}
	hotfixVersion := hotfixInfo.String()

	if !opts.SkipMergeProdBranch {
		if err := e.checkout(ctx, target); err != nil {
			return err
		}
		if err := e.merge(ctx, common, branch, target, mergeModeOr(opts.MergeMode, git.MergeNoFF)); err != nil {
			return err
		}
	}

	tagName := e.settings.tagName(hotfixVersion)
	if !opts.SkipTag {
		tagMsg := e.settings.message(e.settings.Messages.TagHotfix, messageVars{version: hotfixVersion})
		if err := e.tag(ctx, common, tagName, tagMsg); err != nil {
			return err
		}
	}

	if err := e.runGoals(ctx, e.settings.PostHotfixGoals); err != nil {
		return err
	}

	var pushes []string
	if !opts.SkipMergeProdBranch {
		pushes = append(pushes, target)
	} else if !opts.SkipTag {
		pushes = append(pushes, tagName)
	}

	switch {
	case release != "":
		if err := e.hotfixToRelease(ctx, common, branch, release, hotfixVersion); err != nil {
			return err
		}
		pushes = append(pushes, release)
	case backMerge && !e.settings.sameProdDev():
		source := e.hotfixBackMergeSource(opts, branch, tagName)
		if err := e.hotfixToDevelopment(ctx, opts, source, hotfixInfo); err != nil {
			return err
		}
		pushes = append(pushes, dev)
	}

	if err := e.install(ctx, common); err != nil {
		return err
	}

	if !opts.KeepBranch {
		if err := e.checkout(ctx, target); err != nil {
			return err
		}
		if err := e.deleteBranch(ctx, branch, opts.SkipMergeProdBranch); err != nil {
			return err
		}
	}

	if common.PushRemote {
		if err := e.pushAndCleanup(ctx, common, branch, opts.KeepBranch, pushes...); err != nil {
			return err
		}
	}

	done(ctx)
	return nil
}

// hotfixBackMergeSource picks what is merged into development: the hotfix
// branch itself when production was not merged or back merging the hotfix
// is disabled, else the tag, else production.
func (e *Engine) hotfixBackMergeSource(opts HotfixFinishOptions, branch, tagName string) string {
	switch {
	case opts.NoBackMergeHotfix || opts.SkipMergeProdBranch:
		return branch
	case !opts.SkipTag:
		return tagName
	default:
		return e.settings.Production
	}
}

// hotfixToRelease merges the hotfix into the release in progress. The
// release keeps its own version.
func (e *Engine) hotfixToRelease(ctx context.Context, opts CommonOptions, branch, release, hotfixVersion string) error {
	msgs := e.settings.Messages
	return e.mergeAvoidingVersionConflicts(ctx, opts, alignedMerge{
		Target:        release,
		Source:        branch,
		SourceVersion: hotfixVersion,
		AlignMessage:  e.settings.message(msgs.UpdateReleaseToAvoidConflicts, messageVars{version: hotfixVersion}),
		After:         restorePre(e.settings.message(msgs.UpdateReleaseBackPreMerge, messageVars{})),
	})
}

// hotfixToDevelopment merges the hotfix into development. Development ends
// up at the greater of its own version and the next snapshot after the hotfix.
func (e *Engine) hotfixToDevelopment(ctx context.Context, opts HotfixFinishOptions, source string, hotfix version.Info) error {
	msgs := e.settings.Messages
	return e.mergeAvoidingVersionConflicts(ctx, opts.CommonOptions, alignedMerge{
		Target:        e.settings.Development,
		Source:        source,
		SourceVersion: hotfix.String(),
		AlignMessage:  e.settings.message(msgs.UpdateDevToAvoidConflicts, messageVars{version: hotfix.String()}),
		After: func(pre string) (string, string, error) {
			preInfo, err := version.Parse(pre)
			if err != nil {
				return "", "", err
			}
			if version.Compare(preInfo.DigitsOnly(), hotfix.DigitsOnly()) > 0 {
				return pre, e.settings.message(msgs.UpdateDevBackPreMerge, messageVars{version: pre}), nil
			}
			base := hotfix
			if e.settings.DigitsOnlyDevVersion {
				base = hotfix.DigitsOnly()
			}
			next, err := e.settings.Calculator.NextSnapshotVersion(base, opts.VersionDigitToIncrement)
			if err != nil {
				return "", "", err
			}
			return next, e.settings.message(msgs.HotfixFinish, messageVars{version: next}), nil
		},
	})
}
