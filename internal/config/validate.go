package config

import (
	"regexp"
	"strings"

	"github.com/gitflow-tools/gitflow/internal/build"
	"github.com/gitflow-tools/gitflow/internal/constants"
	"github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found. Every
// failure is a configuration error.
//
// Validation rules:
//   - production and development branch names must not be empty
//   - short-lived branch prefixes must not be empty
//   - the feature name pattern must compile
//   - the version policy must be registered
//   - the build tool must be known and its arg line free of & | ;
//   - the remote name must not be empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateBranches(&cfg.Branches); err != nil {
		return err
	}

	if _, err := version.Lookup(cfg.Version.Policy); err != nil {
		return errors.Wrap(err, "version.policy")
	}

	if err := validateBuild(&cfg.Build); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Remote.Origin) == "" {
		return errors.Wrap(errors.ErrEmptyValue, "remote.origin must not be empty")
	}

	return nil
}

func validateBranches(cfg *BranchesConfig) error {
	required := []struct {
		key, value string
	}{
		{"branches.production", cfg.Production},
		{"branches.development", cfg.Development},
		{"branches.feature_prefix", cfg.FeaturePrefix},
		{"branches.bugfix_prefix", cfg.BugfixPrefix},
		{"branches.release_prefix", cfg.ReleasePrefix},
		{"branches.hotfix_prefix", cfg.HotfixPrefix},
		{"branches.support_prefix", cfg.SupportPrefix},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Wrapf(errors.ErrEmptyValue, "%s must not be empty", r.key)
		}
	}

	if cfg.FeatureNamePattern != "" {
		if _, err := regexp.Compile(cfg.FeatureNamePattern); err != nil {
			return errors.Wrapf(errors.ErrInvalidPattern,
				"branches.feature_name_pattern %q: %v", cfg.FeatureNamePattern, err)
		}
	}

	return nil
}

func validateBuild(cfg *BuildConfig) error {
	switch cfg.Tool {
	case "", constants.BuildToolMaven, constants.BuildToolVersionFile:
	default:
		return errors.Wrapf(errors.ErrUnknownBuildTool, "build.tool %q", cfg.Tool)
	}

	if err := build.ValidateArgLine(cfg.ArgLine); err != nil {
		return errors.Wrap(err, "build.arg_line")
	}

	return nil
}
