// Package constants provides centralized constant values used throughout gitflow.
// This package is the single source of truth for shared defaults and MUST NOT
// import any other internal packages.
package constants

// Default branch layout.
const (
	// DefaultProductionBranch is the long-lived branch holding released code.
	DefaultProductionBranch = "master"

	// DefaultDevelopmentBranch is the long-lived integration branch.
	DefaultDevelopmentBranch = "develop"

	// DefaultFeaturePrefix is the prefix of feature branches.
	DefaultFeaturePrefix = "feature/"

	// DefaultBugfixPrefix is the prefix of bugfix branches.
	DefaultBugfixPrefix = "bugfix/"

	// DefaultReleasePrefix is the prefix of release branches.
	DefaultReleasePrefix = "release/"

	// DefaultHotfixPrefix is the prefix of hotfix branches.
	DefaultHotfixPrefix = "hotfix/"

	// DefaultSupportPrefix is the prefix of support branches.
	DefaultSupportPrefix = "support/"

	// DefaultOrigin is the name of the remote repository.
	DefaultOrigin = "origin"
)

// Build tool names.
const (
	// BuildToolMaven drives a Maven project through the mvn executable.
	BuildToolMaven = "maven"

	// BuildToolVersionFile keeps the project version in a plain or YAML file.
	BuildToolVersionFile = "versionfile"

	// DefaultMavenExecutable is the Maven executable looked up on PATH.
	DefaultMavenExecutable = "mvn"

	// DefaultVersionFileName is the version file used by the versionfile tool.
	DefaultVersionFileName = "VERSION"
)

// RunLockFileName is the lock file created in the git directory while a
// workflow runs.
const RunLockFileName = "gitflow.lock"

// Git config keys written by gitflow.
const (
	// BaseBranchConfigKeyFormat records the branch a short-lived branch was started from.
	BaseBranchConfigKeyFormat = "gitflow.branch.%s.base"
)
