package config

import (
	"github.com/spf13/viper"

	"github.com/gitflow-tools/gitflow/internal/constants"
)

// Default commit and tag messages.
const (
	DefaultFeatureStartMessage                  = "Update versions for feature branch"
	DefaultFeatureFinishMessage                 = "Update versions for development branch"
	DefaultFeatureSquashMessage                 = "Squash merge @{featureName}"
	DefaultUpdateFeatureBackMessage             = "Update feature branch back to feature version"
	DefaultBugfixStartMessage                   = "Update versions for bugfix branch"
	DefaultBugfixFinishMessage                  = "Update versions for development branch"
	DefaultBugfixSquashMessage                  = "Squash merge @{featureName}"
	DefaultReleaseStartMessage                  = "Update versions for release"
	DefaultReleaseFinishMessage                 = "Update for next development version"
	DefaultReleaseVersionUpdateMessage          = "Update for next development version"
	DefaultTagReleaseMessage                    = "Tag release"
	DefaultHotfixStartMessage                   = "Update versions for hotfix"
	DefaultHotfixFinishMessage                  = "Update for next development version"
	DefaultHotfixVersionUpdateMessage           = "Update to hotfix version"
	DefaultTagHotfixMessage                     = "Tag hotfix"
	DefaultUpdateDevToAvoidConflictsMessage     = "Update develop to production version to avoid merge conflicts"
	DefaultUpdateDevBackPreMergeMessage         = "Update develop version back to pre-merge state"
	DefaultUpdateReleaseToAvoidConflictsMessage = "Update release to hotfix version to avoid merge conflicts"
	DefaultUpdateReleaseBackPreMergeMessage     = "Update release version back to pre-merge state"
	DefaultVersionUpdateMessage                 = "Update versions"
	DefaultTagVersionUpdateMessage              = "Tag version update"
)

// DefaultConfig returns a new Config with the default values. These are the
// base layer overridden by config files, environment variables and flags.
func DefaultConfig() *Config {
	return &Config{
		Branches: BranchesConfig{
			Production:    constants.DefaultProductionBranch,
			Development:   constants.DefaultDevelopmentBranch,
			FeaturePrefix: constants.DefaultFeaturePrefix,
			BugfixPrefix:  constants.DefaultBugfixPrefix,
			ReleasePrefix: constants.DefaultReleasePrefix,
			HotfixPrefix:  constants.DefaultHotfixPrefix,
			SupportPrefix: constants.DefaultSupportPrefix,
		},
		Build: BuildConfig{
			Tool:        constants.BuildToolMaven,
			Executable:  constants.DefaultMavenExecutable,
			VersionFile: constants.DefaultVersionFileName,
		},
		Remote: RemoteConfig{
			Origin: constants.DefaultOrigin,
			Fetch:  true,
			Push:   true,
		},
		Messages: MessagesConfig{
			FeatureStart:                  DefaultFeatureStartMessage,
			FeatureFinish:                 DefaultFeatureFinishMessage,
			FeatureSquash:                 DefaultFeatureSquashMessage,
			UpdateFeatureBack:             DefaultUpdateFeatureBackMessage,
			BugfixStart:                   DefaultBugfixStartMessage,
			BugfixFinish:                  DefaultBugfixFinishMessage,
			BugfixSquash:                  DefaultBugfixSquashMessage,
			ReleaseStart:                  DefaultReleaseStartMessage,
			ReleaseFinish:                 DefaultReleaseFinishMessage,
			ReleaseVersionUpdate:          DefaultReleaseVersionUpdateMessage,
			TagRelease:                    DefaultTagReleaseMessage,
			HotfixStart:                   DefaultHotfixStartMessage,
			HotfixFinish:                  DefaultHotfixFinishMessage,
			HotfixVersionUpdate:           DefaultHotfixVersionUpdateMessage,
			TagHotfix:                     DefaultTagHotfixMessage,
			UpdateDevToAvoidConflicts:     DefaultUpdateDevToAvoidConflictsMessage,
			UpdateDevBackPreMerge:         DefaultUpdateDevBackPreMergeMessage,
			UpdateReleaseToAvoidConflicts: DefaultUpdateReleaseToAvoidConflictsMessage,
			UpdateReleaseBackPreMerge:     DefaultUpdateReleaseBackPreMergeMessage,
			VersionUpdate:                 DefaultVersionUpdateMessage,
			TagVersionUpdate:              DefaultTagVersionUpdateMessage,
		},
	}
}

// setDefaults registers DefaultConfig on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly, otherwise
// environment variables for the key are not picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("branches.production", d.Branches.Production)
	v.SetDefault("branches.development", d.Branches.Development)
	v.SetDefault("branches.feature_prefix", d.Branches.FeaturePrefix)
	v.SetDefault("branches.bugfix_prefix", d.Branches.BugfixPrefix)
	v.SetDefault("branches.release_prefix", d.Branches.ReleasePrefix)
	v.SetDefault("branches.hotfix_prefix", d.Branches.HotfixPrefix)
	v.SetDefault("branches.support_prefix", d.Branches.SupportPrefix)
	v.SetDefault("branches.feature_name_pattern", "")

	v.SetDefault("version.tag_prefix", "")
	v.SetDefault("version.policy", "")
	v.SetDefault("version.digits_only_dev_version", false)
	v.SetDefault("version.snapshot_in_release", false)
	v.SetDefault("version.snapshot_in_hotfix", false)
	v.SetDefault("version.skip_feature_version", false)

	v.SetDefault("build.tool", d.Build.Tool)
	v.SetDefault("build.executable", d.Build.Executable)
	v.SetDefault("build.arg_line", "")
	v.SetDefault("build.version_file", d.Build.VersionFile)
	v.SetDefault("build.test_command", "")
	v.SetDefault("build.install_command", "")
	v.SetDefault("build.version_property", "")
	v.SetDefault("build.force_update", false)
	v.SetDefault("build.skip_test", false)
	v.SetDefault("build.install", false)
	v.SetDefault("build.pre_release_goals", "")
	v.SetDefault("build.post_release_goals", "")
	v.SetDefault("build.pre_hotfix_goals", "")
	v.SetDefault("build.post_hotfix_goals", "")

	v.SetDefault("remote.origin", d.Remote.Origin)
	v.SetDefault("remote.fetch", d.Remote.Fetch)
	v.SetDefault("remote.push", d.Remote.Push)
	v.SetDefault("remote.push_options", []string{})

	v.SetDefault("messages.prefix", "")
	v.SetDefault("messages.feature_start", d.Messages.FeatureStart)
	v.SetDefault("messages.feature_finish", d.Messages.FeatureFinish)
	v.SetDefault("messages.feature_squash", d.Messages.FeatureSquash)
	v.SetDefault("messages.update_feature_back", d.Messages.UpdateFeatureBack)
	v.SetDefault("messages.bugfix_start", d.Messages.BugfixStart)
	v.SetDefault("messages.bugfix_finish", d.Messages.BugfixFinish)
	v.SetDefault("messages.bugfix_squash", d.Messages.BugfixSquash)
	v.SetDefault("messages.release_start", d.Messages.ReleaseStart)
	v.SetDefault("messages.release_finish", d.Messages.ReleaseFinish)
	v.SetDefault("messages.release_version_update", d.Messages.ReleaseVersionUpdate)
	v.SetDefault("messages.tag_release", d.Messages.TagRelease)
	v.SetDefault("messages.hotfix_start", d.Messages.HotfixStart)
	v.SetDefault("messages.hotfix_finish", d.Messages.HotfixFinish)
	v.SetDefault("messages.hotfix_version_update", d.Messages.HotfixVersionUpdate)
	v.SetDefault("messages.tag_hotfix", d.Messages.TagHotfix)
	v.SetDefault("messages.update_dev_to_avoid_conflicts", d.Messages.UpdateDevToAvoidConflicts)
	v.SetDefault("messages.update_dev_back_pre_merge", d.Messages.UpdateDevBackPreMerge)
	v.SetDefault("messages.update_release_to_avoid_conflicts", d.Messages.UpdateReleaseToAvoidConflicts)
	v.SetDefault("messages.update_release_back_pre_merge", d.Messages.UpdateReleaseBackPreMerge)
	v.SetDefault("messages.version_update", d.Messages.VersionUpdate)
	v.SetDefault("messages.tag_version_update", d.Messages.TagVersionUpdate)

	v.SetDefault("gpg_sign", false)
}
