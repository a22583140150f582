package flow

import (
	"context"
	"fmt"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// releaseBareName is the release branch name used with SameBranchName.
func (s Settings) releaseBareName() string {
	return strings.TrimSuffix(s.ReleasePrefix, "/")
}

// releaseBranches lists the existing release branches, including the bare
// release branch created with SameBranchName.
func (e *Engine) releaseBranches(ctx context.Context) ([]string, error) {
	branches, err := e.listBranches(ctx, e.settings.ReleasePrefix)
	if err != nil {
		return nil, err
	}
	bare := e.settings.releaseBareName()
	if bare == "" || bare == e.settings.ReleasePrefix {
		return branches, nil
	}
	ok, err := e.branchExists(ctx, bare)
	if err != nil {
		return nil, err
	}
	if ok {
		branches = append([]string{bare}, branches...)
	}
	return branches, nil
}

// selectRelease resolves the release branch of a finish run.
func (e *Engine) selectRelease(ctx context.Context, opts CommonOptions, explicit string) (string, error) {
	if explicit != "" {
		if explicit == e.settings.releaseBareName() {
			ok, err := e.branchExists(ctx, explicit)
			if err != nil {
				return "", err
			}
			if ok {
				return explicit, nil
			}
		}
		return e.selectBranch(ctx, opts, e.settings.ReleasePrefix, explicit, "")
	}
	branches, err := e.releaseBranches(ctx)
	if err != nil {
		return "", err
	}
	return e.chooseBranch(ctx, opts, branches, e.settings.ReleasePrefix, "Release branches:")
}

// requireNoRelease fails with ErrBranchExists while a release is in progress.
func (e *Engine) requireNoRelease(ctx context.Context) error {
	branches, err := e.releaseBranches(ctx)
	if err != nil {
		return err
	}
	if len(branches) > 0 {
		return fmt.Errorf("release in progress (%s): %w", strings.Join(branches, ", "), gferrors.ErrBranchExists)
	}
	return nil
}

// nextDevelopmentVersion returns the development version following release.
func (e *Engine) nextDevelopmentVersion(ctx context.Context, opts CommonOptions, explicit string, release version.Info, index int) (string, error) {
	base := release
	if e.settings.DigitsOnlyDevVersion {
		base = release.DigitsOnly()
	}
	def, err := e.settings.Calculator.NextSnapshotVersion(base, index)
	if err != nil {
		return "", err
	}
	return e.resolveVersion(ctx, opts, explicit, def, "What is the next development version?")
}

// ReleaseStart creates a release branch from the development branch and sets
// the release version on it. It returns the release branch name.
func (e *Engine) ReleaseStart(ctx context.Context, opts ReleaseStartOptions) (string, error) {
	ctx = e.begin(ctx, "release-start")
	common := opts.CommonOptions
	dev := e.settings.Development

	if err := e.requireClean(ctx); err != nil {
		return "", err
	}
	if err := e.requireNoRelease(ctx); err != nil {
		return "", err
	}
	if err := e.syncBranch(ctx, common, dev); err != nil {
		return "", err
	}

	startPoint := dev
	if opts.FromCommit != "" {
		startPoint = opts.FromCommit
	}
	if err := e.checkout(ctx, startPoint); err != nil {
		return "", err
	}
	current, err := e.currentVersion(ctx)
	if err != nil {
		return "", err
	}

	def, err := e.settings.Calculator.ReleaseVersion(current)
	if err != nil {
		return "", err
	}
	releaseVersion, err := e.resolveVersion(ctx, common, opts.ReleaseVersion, def, "What is release version?")
	if err != nil {
		return "", err
	}
	releaseInfo, err := version.Parse(releaseVersion)
	if err != nil {
		return "", err
	}

	branch := e.settings.ReleasePrefix + releaseVersion
	if opts.SameBranchName {
		branch = e.settings.releaseBareName()
	}
	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%s: %w", branch, gferrors.ErrBranchExists)
	}

	if err := e.checkoutNew(ctx, branch, startPoint); err != nil {
		return "", err
	}

	if opts.CommitDevelopmentVersionAtStart {
		if err := e.checkout(ctx, dev); err != nil {
			return "", err
		}
		next, err := e.nextDevelopmentVersion(ctx, common, opts.DevelopmentVersion, releaseInfo, opts.VersionDigitToIncrement)
		if err != nil {
			return "", err
		}
		devVersion, err := e.tool.CurrentVersion(ctx)
		if err != nil {
			return "", err
		}
		msg := e.settings.message(e.settings.Messages.ReleaseVersionUpdate, messageVars{version: next})
		if _, err := e.setVersionAndCommit(ctx, common, devVersion, next, msg); err != nil {
			return "", err
		}
		if err := e.checkout(ctx, branch); err != nil {
			return "", err
		}
	}

	target := releaseVersion
	if e.settings.SnapshotInRelease {
		target = releaseInfo.SnapshotVersionString()
	}
	msg := e.settings.message(e.settings.Messages.ReleaseStart, messageVars{version: target})
	if _, err := e.setVersionAndCommit(ctx, common, current.String(), target, msg); err != nil {
		return "", err
	}

	if err := e.recordBase(ctx, branch, dev); err != nil {
		return "", err
	}
	if err := e.install(ctx, common); err != nil {
		return "", err
	}
	if common.PushRemote {
		if opts.CommitDevelopmentVersionAtStart {
			if err := e.push(ctx, common, dev, false); err != nil {
				return "", err
			}
		}
		if err := e.push(ctx, common, branch, false); err != nil {
			return "", err
		}
	}

	done(ctx)
	return branch, nil
}

// ReleaseFinish merges a release branch into production, tags it and brings
// the release back into the development branch with the next development
// version.
func (e *Engine) ReleaseFinish(ctx context.Context, opts ReleaseFinishOptions) error {
	ctx = e.begin(ctx, "release-finish")
	common := opts.CommonOptions
	prod, dev := e.settings.Production, e.settings.Development
	mergeDev := !opts.SkipMergeDevBranch

	if err := e.requireClean(ctx); err != nil {
		return err
	}
	branch, err := e.selectRelease(ctx, common, opts.Name)
	if err != nil {
		return err
	}

	toSync := []string{branch, prod}
	if mergeDev && !e.settings.sameProdDev() {
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
	if err := e.runGoals(ctx, e.settings.PreReleaseGoals); err != nil {
		return err
	}

	releaseInfo, err := e.stripSnapshot(ctx, common, e.settings.Messages.ReleaseStart)
	if err != nil {
		return err
	}
	releaseVersion := releaseInfo.String()

	if !opts.SkipReleaseMergeProdBranch {
		if err := e.checkout(ctx, prod); err != nil {
			return err
		}
		if err := e.merge(ctx, common, branch, prod, mergeModeOr(opts.MergeMode, git.MergeNoFF)); err != nil {
			return err
		}
	}

	if !opts.SkipTag {
		tagMsg := e.settings.message(e.settings.Messages.TagRelease, messageVars{version: releaseVersion})
		if err := e.tag(ctx, common, e.settings.tagName(releaseVersion), tagMsg); err != nil {
			return err
		}
	}

	if mergeDev {
		if err := e.releaseToDevelopment(ctx, opts, branch, releaseInfo); err != nil {
			return err
		}
	}

	if err := e.runGoals(ctx, e.settings.PostReleaseGoals); err != nil {
		return err
	}
	if err := e.install(ctx, common); err != nil {
		return err
	}

	if !opts.KeepBranch {
		if err := e.checkout(ctx, dev); err != nil {
			return err
		}
		force := opts.SkipReleaseMergeProdBranch || opts.SkipMergeDevBranch
		if err := e.deleteBranch(ctx, branch, force); err != nil {
			return err
		}
	}

	if !common.PushRemote {
		done(ctx)
		return nil
	}
	var pushes []string
	if !opts.SkipReleaseMergeProdBranch {
		pushes = append(pushes, prod)
	}
	if mergeDev && !e.settings.sameProdDev() {
		pushes = append(pushes, dev)
	}
	if opts.SkipReleaseMergeProdBranch && !opts.SkipTag {
		// the tag sits on the release branch only
		pushes = append(pushes, e.settings.tagName(releaseVersion))
	}
	if err := e.pushAndCleanup(ctx, common, branch, opts.KeepBranch, pushes...); err != nil {
		return err
	}

	done(ctx)
	return nil
}

// releaseToDevelopment brings a finished release into the development
// branch and sets the next development version.
func (e *Engine) releaseToDevelopment(ctx context.Context, opts ReleaseFinishOptions, branch string, release version.Info) error {
	common := opts.CommonOptions
	dev := e.settings.Development
	msgs := e.settings.Messages

	if e.settings.sameProdDev() {
		// production is development: only the next version is missing
		if err := e.checkout(ctx, dev); err != nil {
			return err
		}
		return e.commitNextDevelopment(ctx, common, opts.DevelopmentVersion, release, opts.VersionDigitToIncrement)
	}

	if opts.CommitDevelopmentVersionAtStart {
		// development already carries its next version since release start
		return e.mergeAvoidingVersionConflicts(ctx, common, alignedMerge{
			Target:        dev,
			Source:        branch,
			SourceVersion: release.String(),
			AlignMessage:  e.settings.message(msgs.UpdateDevToAvoidConflicts, messageVars{version: release.String()}),
			After:         restorePre(e.settings.message(msgs.UpdateDevBackPreMerge, messageVars{})),
		})
	}

	if err := e.checkout(ctx, dev); err != nil {
		return err
	}
	if err := e.merge(ctx, common, branch, dev, git.MergeNoFF); err != nil {
		return err
	}
	return e.commitNextDevelopment(ctx, common, opts.DevelopmentVersion, release, opts.VersionDigitToIncrement)
}

// commitNextDevelopment sets and commits the development version following
// release on the checked out branch.
func (e *Engine) commitNextDevelopment(ctx context.Context, opts CommonOptions, explicit string, release version.Info, index int) error {
	next, err := e.nextDevelopmentVersion(ctx, opts, explicit, release, index)
	if err != nil {
		return err
	}
	current, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	msg := e.settings.message(e.settings.Messages.ReleaseFinish, messageVars{version: next})
	_, err = e.setVersionAndCommit(ctx, opts, current, next, msg)
	return err
}

// stripSnapshot removes a -SNAPSHOT marker from the checked out version and
// commits the change. It returns the resulting version.
func (e *Engine) stripSnapshot(ctx context.Context, opts CommonOptions, message string) (version.Info, error) {
	current, err := e.currentVersion(ctx)
	if err != nil {
		return version.Info{}, err
	}
	if !current.IsSnapshot() {
		return current, nil
	}
	release := current.ReleaseVersionString()
	msg := e.settings.message(message, messageVars{version: release})
	if _, err := e.setVersionAndCommit(ctx, opts, current.String(), release, msg); err != nil {
		return version.Info{}, err
	}
	return version.Parse(release)
}

// pushAndCleanup pushes refs with their tags, then pushes branch when kept
// or deletes it on the remote.
func (e *Engine) pushAndCleanup(ctx context.Context, opts CommonOptions, branch string, keep bool, refs ...string) error {
	for _, b := range refs {
		if err := e.push(ctx, opts, b, true); err != nil {
			return err
		}
	}
	if keep {
		return e.push(ctx, opts, branch, true)
	}
	return e.pushDelete(ctx, branch)
}

// Release runs a release without a release branch: the development branch is
// versioned, merged into production and tagged, then moved to the next
// development version.
func (e *Engine) Release(ctx context.Context, opts ReleaseOptions) error {
	ctx = e.begin(ctx, "release")
	common := opts.CommonOptions
	prod, dev := e.settings.Production, e.settings.Development

	if err := e.requireClean(ctx); err != nil {
		return err
	}
	if err := e.requireNoRelease(ctx); err != nil {
		return err
	}
	if err := e.syncBranches(ctx, common, dev, prod); err != nil {
		return err
	}

	if err := e.checkout(ctx, dev); err != nil {
		return err
	}
	if err := e.test(ctx, common); err != nil {
		return err
	}
	if err := e.runGoals(ctx, e.settings.PreReleaseGoals); err != nil {
		return err
	}

	current, err := e.currentVersion(ctx)
	if err != nil {
		return err
	}
	def, err := e.settings.Calculator.ReleaseVersion(current)
	if err != nil {
		return err
	}
	releaseVersion, err := e.resolveVersion(ctx, common, opts.ReleaseVersion, def, "What is release version?")
	if err != nil {
		return err
	}
	releaseInfo, err := version.Parse(releaseVersion)
	if err != nil {
		return err
	}
	msg := e.settings.message(e.settings.Messages.ReleaseStart, messageVars{version: releaseVersion})
	if _, err := e.setVersionAndCommit(ctx, common, current.String(), releaseVersion, msg); err != nil {
		return err
	}

	if !e.settings.sameProdDev() {
		if err := e.checkout(ctx, prod); err != nil {
			return err
		}
		if err := e.merge(ctx, common, dev, prod, mergeModeOr(opts.MergeMode, git.MergeNoFF)); err != nil {
			return err
		}
	}

	if !opts.SkipTag {
		tagMsg := e.settings.message(e.settings.Messages.TagRelease, messageVars{version: releaseVersion})
		if err := e.tag(ctx, common, e.settings.tagName(releaseVersion), tagMsg); err != nil {
			return err
		}
	}
	if err := e.runGoals(ctx, e.settings.PostReleaseGoals); err != nil {
		return err
	}

	if err := e.checkout(ctx, dev); err != nil {
		return err
	}
	if err := e.commitNextDevelopment(ctx, common, opts.DevelopmentVersion, releaseInfo, opts.VersionDigitToIncrement); err != nil {
		return err
	}

	if err := e.install(ctx, common); err != nil {
		return err
	}
	if common.PushRemote {
		if !e.settings.sameProdDev() {
			if err := e.push(ctx, common, prod, true); err != nil {
				return err
			}
		}
		if err := e.push(ctx, common, dev, true); err != nil {
			return err
		}
	}

	done(ctx)
	return nil
}
