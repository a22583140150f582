package flow

import (
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// FeatureStartOptions configures FeatureStart and BugfixStart.
type FeatureStartOptions struct {
	CommonOptions

	// Name is the branch name without prefix. An empty name is prompted for.
	Name string
}

// FeatureFinishOptions configures FeatureFinish and BugfixFinish.
type FeatureFinishOptions struct {
	CommonOptions

	// Name selects the branch to finish. Empty selects by listing.
	Name string

	// KeepBranch keeps the branch after the merge and restores its feature version.
	KeepBranch bool

	// Squash merges the branch as a single commit.
	Squash bool

	// MergeMode is used when Squash is not set. Zero value means no-ff.
	MergeMode git.MergeMode

	// IncrementVersionAtFinish bumps the development version after the merge.
	IncrementVersionAtFinish bool

	// VersionDigitToIncrement selects the digit bumped by IncrementVersionAtFinish.
	VersionDigitToIncrement int
}

// ReleaseStartOptions configures ReleaseStart.
type ReleaseStartOptions struct {
	CommonOptions

	// ReleaseVersion overrides the computed release version.
	ReleaseVersion string

	// FromCommit starts the release branch at a commit instead of the development tip.
	FromCommit string

	// SameBranchName names the branch by the bare release prefix.
	SameBranchName bool

	// CommitDevelopmentVersionAtStart commits the next development version to
	// the development branch right away.
	CommitDevelopmentVersionAtStart bool

	// DevelopmentVersion overrides the computed next development version.
	DevelopmentVersion string

	// VersionDigitToIncrement selects the digit bumped for the next development version.
	VersionDigitToIncrement int
}

// ReleaseFinishOptions configures ReleaseFinish.
type ReleaseFinishOptions struct {
	CommonOptions

	// Name selects the release branch. Empty selects by listing.
	Name string

	KeepBranch bool
	SkipTag    bool

	// SkipReleaseMergeProdBranch tags the release branch without merging it
	// into production.
	SkipReleaseMergeProdBranch bool

	// SkipMergeDevBranch leaves the development branch untouched.
	SkipMergeDevBranch bool

	// MergeMode is the production merge mode. Zero value means no-ff.
	MergeMode git.MergeMode

	// CommitDevelopmentVersionAtStart must match the value used at release start.
	CommitDevelopmentVersionAtStart bool

	DevelopmentVersion      string
	VersionDigitToIncrement int
}

// ReleaseOptions configures Release.
type ReleaseOptions struct {
	CommonOptions

	ReleaseVersion          string
	DevelopmentVersion      string
	VersionDigitToIncrement int
	SkipTag                 bool

	// MergeMode is the production merge mode. Zero value means no-ff.
	MergeMode git.MergeMode
}

// HotfixStartOptions configures HotfixStart.
type HotfixStartOptions struct {
	CommonOptions

	// FromBranch is the base branch, production or a support branch.
	FromBranch string

	HotfixVersion string

	// HotfixVersionDigitToIncrement selects the digit bumped for the hotfix version.
	HotfixVersionDigitToIncrement int
}

// HotfixFinishOptions configures HotfixFinish.
type HotfixFinishOptions struct {
	CommonOptions

	// Name selects the hotfix branch. Empty selects by listing.
	Name string

	KeepBranch bool
	SkipTag    bool

	// SkipMergeProdBranch tags the hotfix branch without merging it into production.
	SkipMergeProdBranch bool

	// SkipMergeDevBranch leaves development and any release branch untouched.
	SkipMergeDevBranch bool

	// NoBackMergeHotfix merges the hotfix branch itself into development
	// instead of the tag or production.
	NoBackMergeHotfix bool

	// MergeMode is the production merge mode. Zero value means no-ff.
	MergeMode git.MergeMode

	VersionDigitToIncrement int
}

// SupportStartOptions configures SupportStart.
type SupportStartOptions struct {
	CommonOptions

	// TagName is the tag to branch from. Empty selects by listing.
	TagName string
}

// VersionUpdateOptions configures VersionUpdate.
type VersionUpdateOptions struct {
	CommonOptions

	// Name selects the release or support branch. Empty selects by listing.
	Name string

	// UpdateVersion is the new version. Empty computes the next one.
	UpdateVersion string

	SkipTag                 bool
	VersionDigitToIncrement int
}

// NewFeatureFinishOptions returns finish options with the default increment.
func NewFeatureFinishOptions(common CommonOptions) FeatureFinishOptions {
	return FeatureFinishOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// NewReleaseStartOptions returns release start options with the default increment.
func NewReleaseStartOptions(common CommonOptions) ReleaseStartOptions {
	return ReleaseStartOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// NewReleaseFinishOptions returns release finish options with the default increment.
func NewReleaseFinishOptions(common CommonOptions) ReleaseFinishOptions {
	return ReleaseFinishOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// NewReleaseOptions returns release options with the default increment.
func NewReleaseOptions(common CommonOptions) ReleaseOptions {
	return ReleaseOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// NewHotfixStartOptions returns hotfix start options with the default increment.
func NewHotfixStartOptions(common CommonOptions) HotfixStartOptions {
	return HotfixStartOptions{CommonOptions: common, HotfixVersionDigitToIncrement: version.NoIndex}
}

// NewHotfixFinishOptions returns hotfix finish options with the default increment.
func NewHotfixFinishOptions(common CommonOptions) HotfixFinishOptions {
	return HotfixFinishOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// NewVersionUpdateOptions returns version update options with the default increment.
func NewVersionUpdateOptions(common CommonOptions) VersionUpdateOptions {
	return VersionUpdateOptions{CommonOptions: common, VersionDigitToIncrement: version.NoIndex}
}

// mergeModeOr returns m, or def when m is unset.
func mergeModeOr(m, def git.MergeMode) git.MergeMode {
	if m == "" {
		return def
	}
	return m
}
