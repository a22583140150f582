package flow

import (
	"regexp"
	"strings"

	"github.com/gitflow-tools/gitflow/internal/config"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// Settings are the repository-wide git-flow settings shared by every flow.
// They are built once per run and never modified.
type Settings struct {
	Production  string
	Development string

	FeaturePrefix string
	BugfixPrefix  string
	ReleasePrefix string
	HotfixPrefix  string
	SupportPrefix string

	// FeatureNamePattern, when set, must match feature and bugfix names.
	FeatureNamePattern *regexp.Regexp

	Origin    string
	TagPrefix string

	Messages config.MessagesConfig

	VersionProperty      string
	ForceUpdate          bool
	SnapshotInRelease    bool
	SnapshotInHotfix     bool
	DigitsOnlyDevVersion bool
	SkipFeatureVersion   bool

	PreReleaseGoals  string
	PostReleaseGoals string
	PreHotfixGoals   string
	PostHotfixGoals  string

	// Calculator applies the configured version policy.
	Calculator version.Calculator
}

// NewSettings derives Settings from a validated configuration.
func NewSettings(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, gferrors.ErrConfigNil
	}

	calc, err := version.NewCalculatorFor(cfg.Version.Policy)
	if err != nil {
		return Settings{}, err
	}

	var pattern *regexp.Regexp
	if cfg.Branches.FeatureNamePattern != "" {
		pattern, err = regexp.Compile(cfg.Branches.FeatureNamePattern)
		if err != nil {
			return Settings{}, gferrors.Wrapf(gferrors.ErrInvalidPattern, "%q: %v", cfg.Branches.FeatureNamePattern, err)
		}
	}

	return Settings{
		Production:           cfg.Branches.Production,
		Development:          cfg.Branches.Development,
		FeaturePrefix:        cfg.Branches.FeaturePrefix,
		BugfixPrefix:         cfg.Branches.BugfixPrefix,
		ReleasePrefix:        cfg.Branches.ReleasePrefix,
		HotfixPrefix:         cfg.Branches.HotfixPrefix,
		SupportPrefix:        cfg.Branches.SupportPrefix,
		FeatureNamePattern:   pattern,
		Origin:               cfg.Remote.Origin,
		TagPrefix:            cfg.Version.TagPrefix,
		Messages:             cfg.Messages,
		VersionProperty:      cfg.Build.VersionProperty,
		ForceUpdate:          cfg.Build.ForceUpdate,
		SnapshotInRelease:    cfg.Version.SnapshotInRelease,
		SnapshotInHotfix:     cfg.Version.SnapshotInHotfix,
		DigitsOnlyDevVersion: cfg.Version.DigitsOnlyDevVersion,
		SkipFeatureVersion:   cfg.Version.SkipFeatureVersion,
		PreReleaseGoals:      cfg.Build.PreReleaseGoals,
		PostReleaseGoals:     cfg.Build.PostReleaseGoals,
		PreHotfixGoals:       cfg.Build.PreHotfixGoals,
		PostHotfixGoals:      cfg.Build.PostHotfixGoals,
		Calculator:           calc,
	}, nil
}

// DefaultSettings returns the Settings of the default configuration.
func DefaultSettings() Settings {
	s, err := NewSettings(config.DefaultConfig())
	if err != nil {
		// the default configuration always validates
		panic(err)
	}
	return s
}

// sameProdDev reports whether production and development are one branch.
func (s Settings) sameProdDev() bool {
	return s.Production == s.Development
}

// message expands a commit or tag message template.
func (s Settings) message(tmpl string, vars messageVars) string {
	r := strings.NewReplacer(
		"@{version}", vars.version,
		"@{featureName}", vars.featureName,
	)
	return s.Messages.Prefix + r.Replace(tmpl)
}

// tagName returns the tag for a release version.
func (s Settings) tagName(releaseVersion string) string {
	return s.TagPrefix + releaseVersion
}

type messageVars struct {
	version     string
	featureName string
}

// CommonOptions are the per-run switches shared by every flow.
type CommonOptions struct {
	// FetchRemote fetches and compares branches with the remote before changing them.
	FetchRemote bool
	// PushRemote pushes changed branches and tags at the end.
	PushRemote bool
	// SkipTest skips the build tool test step.
	SkipTest bool
	// Install runs the build tool install step at the end.
	Install bool
	// Interactive allows prompting. Without it flows use defaults or fail
	// with ErrInteractiveRequired where no default exists.
	Interactive bool
	// GPGSign signs commits, merges and tags.
	GPGSign bool
	// PushOptions are sent with every push as --push-option values.
	PushOptions []string
}

// CommonOptionsFrom returns the CommonOptions configured in cfg.
func CommonOptionsFrom(cfg *config.Config) CommonOptions {
	return CommonOptions{
		FetchRemote: cfg.Remote.Fetch,
		PushRemote:  cfg.Remote.Push,
		SkipTest:    cfg.Build.SkipTest,
		Install:     cfg.Build.Install,
		GPGSign:     cfg.GPGSign,
		PushOptions: cfg.Remote.PushOptions,
	}
}
