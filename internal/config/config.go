// Package config provides configuration management for gitflow with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the cli package on top of the loaded Config)
//  2. Environment variables (GITFLOW_* prefix, e.g. GITFLOW_BRANCHES_DEVELOPMENT)
//  3. Project config (.gitflow.yaml at the repository root)
//  4. Global config (~/.gitflow/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// the leaf packages it validates against (internal/build, internal/version),
// but MUST NOT import internal/flow or internal/cli.
package config

// Config is the root configuration structure for gitflow.
type Config struct {
	// Branches names the long-lived branches and the prefixes of short-lived ones.
	Branches BranchesConfig `yaml:"branches" mapstructure:"branches"`

	// Version contains version computation and tagging settings.
	Version VersionConfig `yaml:"version" mapstructure:"version"`

	// Build contains the build tool used to read and write the project version.
	Build BuildConfig `yaml:"build" mapstructure:"build"`

	// Remote contains remote synchronization settings.
	Remote RemoteConfig `yaml:"remote" mapstructure:"remote"`

	// Messages contains commit and tag message templates.
	Messages MessagesConfig `yaml:"messages" mapstructure:"messages"`

	// GPGSign signs commits, merges and tags.
	// Default: false
	GPGSign bool `yaml:"gpg_sign" mapstructure:"gpg_sign"`
}

// BranchesConfig names the git-flow branches.
type BranchesConfig struct {
	// Production is the branch releases are merged into and tagged on.
	// Default: "master"
	Production string `yaml:"production" mapstructure:"production"`

	// Development is the integration branch features are merged into.
	// Default: "develop"
	Development string `yaml:"development" mapstructure:"development"`

	// FeaturePrefix is prepended to feature branch names.
	// Default: "feature/"
	FeaturePrefix string `yaml:"feature_prefix" mapstructure:"feature_prefix"`

	// BugfixPrefix is prepended to bugfix branch names.
	// Default: "bugfix/"
	BugfixPrefix string `yaml:"bugfix_prefix" mapstructure:"bugfix_prefix"`

	// ReleasePrefix is prepended to release branch names.
	// Default: "release/"
	ReleasePrefix string `yaml:"release_prefix" mapstructure:"release_prefix"`

	// HotfixPrefix is prepended to hotfix branch names.
	// Default: "hotfix/"
	HotfixPrefix string `yaml:"hotfix_prefix" mapstructure:"hotfix_prefix"`

	// SupportPrefix is prepended to support branch names.
	// Default: "support/"
	SupportPrefix string `yaml:"support_prefix" mapstructure:"support_prefix"`

	// FeatureNamePattern is a regular expression feature names must match.
	// Default: "" (any name git accepts)
	FeatureNamePattern string `yaml:"feature_name_pattern" mapstructure:"feature_name_pattern"`
}

// VersionConfig contains version computation settings.
type VersionConfig struct {
	// TagPrefix is prepended to the version to form tag names.
	// Default: ""
	TagPrefix string `yaml:"tag_prefix" mapstructure:"tag_prefix"`

	// Policy selects a registered version policy ("semver", "odd-even").
	// Default: "" (built-in digit arithmetic)
	Policy string `yaml:"policy" mapstructure:"policy"`

	// DigitsOnlyDevVersion drops qualifiers from the next development version.
	DigitsOnlyDevVersion bool `yaml:"digits_only_dev_version" mapstructure:"digits_only_dev_version"`

	// SnapshotInRelease keeps a -SNAPSHOT version on release branches until finish.
	SnapshotInRelease bool `yaml:"snapshot_in_release" mapstructure:"snapshot_in_release"`

	// SnapshotInHotfix keeps a -SNAPSHOT version on hotfix branches until finish.
	SnapshotInHotfix bool `yaml:"snapshot_in_hotfix" mapstructure:"snapshot_in_hotfix"`

	// SkipFeatureVersion leaves the version alone on feature branches.
	SkipFeatureVersion bool `yaml:"skip_feature_version" mapstructure:"skip_feature_version"`
}

// BuildConfig selects and configures the build tool.
type BuildConfig struct {
	// Tool is "maven" or "versionfile".
	// Default: "maven"
	Tool string `yaml:"tool" mapstructure:"tool"`

	// Executable overrides the Maven executable.
	// Default: "mvn"
	Executable string `yaml:"executable" mapstructure:"executable"`

	// ArgLine is appended to every build tool invocation. It must not contain & | or ;.
	ArgLine string `yaml:"arg_line" mapstructure:"arg_line"`

	// VersionFile is the file holding the version for the versionfile tool.
	// Default: "VERSION"
	VersionFile string `yaml:"version_file" mapstructure:"version_file"`

	// TestCommand is the shell command the versionfile tool runs as its test step.
	TestCommand string `yaml:"test_command" mapstructure:"test_command"`

	// InstallCommand is the shell command the versionfile tool runs as its install step.
	InstallCommand string `yaml:"install_command" mapstructure:"install_command"`

	// VersionProperty, when set, is updated with the version after every version change.
	VersionProperty string `yaml:"version_property" mapstructure:"version_property"`

	// ForceUpdate updates the version of every module, not only those at the old version.
	ForceUpdate bool `yaml:"force_update" mapstructure:"force_update"`

	// SkipTest skips the test step before finishing a branch.
	SkipTest bool `yaml:"skip_test" mapstructure:"skip_test"`

	// Install runs the install step after finishing a branch.
	Install bool `yaml:"install" mapstructure:"install"`

	// PreReleaseGoals run on the release branch before it is merged.
	PreReleaseGoals string `yaml:"pre_release_goals" mapstructure:"pre_release_goals"`

	// PostReleaseGoals run on the development branch after a release is finished.
	PostReleaseGoals string `yaml:"post_release_goals" mapstructure:"post_release_goals"`

	// PreHotfixGoals run on the hotfix branch before it is merged.
	PreHotfixGoals string `yaml:"pre_hotfix_goals" mapstructure:"pre_hotfix_goals"`

	// PostHotfixGoals run after a hotfix is finished.
	PostHotfixGoals string `yaml:"post_hotfix_goals" mapstructure:"post_hotfix_goals"`
}

// RemoteConfig contains remote synchronization settings.
type RemoteConfig struct {
	// Origin is the remote name.
	// Default: "origin"
	Origin string `yaml:"origin" mapstructure:"origin"`

	// Fetch fetches and compares branches with the remote before changing them.
	// Default: true
	Fetch bool `yaml:"fetch" mapstructure:"fetch"`

	// Push pushes changed branches and tags when a flow completes.
	// Default: true
	Push bool `yaml:"push" mapstructure:"push"`

	// PushOptions are passed to git push as --push-option values.
	PushOptions []string `yaml:"push_options" mapstructure:"push_options"`
}

// MessagesConfig holds commit and tag messages. Messages may contain the
// placeholders @{version} and @{featureName}.
type MessagesConfig struct {
	// Prefix is prepended to every commit message.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	FeatureStart                  string `yaml:"feature_start" mapstructure:"feature_start"`
	FeatureFinish                 string `yaml:"feature_finish" mapstructure:"feature_finish"`
	FeatureSquash                 string `yaml:"feature_squash" mapstructure:"feature_squash"`
	UpdateFeatureBack             string `yaml:"update_feature_back" mapstructure:"update_feature_back"`
	BugfixStart                   string `yaml:"bugfix_start" mapstructure:"bugfix_start"`
	BugfixFinish                  string `yaml:"bugfix_finish" mapstructure:"bugfix_finish"`
	BugfixSquash                  string `yaml:"bugfix_squash" mapstructure:"bugfix_squash"`
	ReleaseStart                  string `yaml:"release_start" mapstructure:"release_start"`
	ReleaseFinish                 string `yaml:"release_finish" mapstructure:"release_finish"`
	ReleaseVersionUpdate          string `yaml:"release_version_update" mapstructure:"release_version_update"`
	TagRelease                    string `yaml:"tag_release" mapstructure:"tag_release"`
	HotfixStart                   string `yaml:"hotfix_start" mapstructure:"hotfix_start"`
	HotfixFinish                  string `yaml:"hotfix_finish" mapstructure:"hotfix_finish"`
	HotfixVersionUpdate           string `yaml:"hotfix_version_update" mapstructure:"hotfix_version_update"`
	TagHotfix                     string `yaml:"tag_hotfix" mapstructure:"tag_hotfix"`
	UpdateDevToAvoidConflicts     string `yaml:"update_dev_to_avoid_conflicts" mapstructure:"update_dev_to_avoid_conflicts"`
	UpdateDevBackPreMerge         string `yaml:"update_dev_back_pre_merge" mapstructure:"update_dev_back_pre_merge"`
	UpdateReleaseToAvoidConflicts string `yaml:"update_release_to_avoid_conflicts" mapstructure:"update_release_to_avoid_conflicts"`
	UpdateReleaseBackPreMerge     string `yaml:"update_release_back_pre_merge" mapstructure:"update_release_back_pre_merge"`
	VersionUpdate                 string `yaml:"version_update" mapstructure:"version_update"`
	TagVersionUpdate              string `yaml:"tag_version_update" mapstructure:"tag_version_update"`
}
