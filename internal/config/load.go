package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gitflow-tools/gitflow/internal/constants"
	"github.com/gitflow-tools/gitflow/internal/errors"
)

// LoadOptions select the configuration files.
type LoadOptions struct {
	// ProjectDir is the repository root holding .gitflow.yaml.
	ProjectDir string

	// ConfigFile replaces the project config file when set. Unlike the
	// implicit project file it must exist.
	ConfigFile string
}

// newViperInstance creates a Viper instance with defaults and GITFLOW_*
// environment variable binding.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are skipped; only unreadable or invalid files fail.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// no home directory means no global config
		globalPath = ""
	}

	projectPath := ProjectConfigPath(opts.ProjectDir)
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(errors.ErrConfiguration, "config file %s: %v", opts.ConfigFile, err)
		}
		projectPath = opts.ConfigFile
	}

	cfg, err := LoadFromPaths(ctx, projectPath, globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("production", cfg.Branches.Production).
		Str("development", cfg.Branches.Development).
		Str("build_tool", cfg.Build.Tool).
		Str("version_policy", cfg.Version.Policy).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty or missing to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeConfigFile(v, globalConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
	}

	return unmarshalAndValidate(v)
}

// mergeConfigFile merges path into v. Empty or missing paths are ignored.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return stderrors.Join(err, errors.ErrConfiguration)
	}
	return nil
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(stderrors.Join(err, errors.ErrConfiguration), "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// Comma separated strings from the environment decode into slices such as
// remote.push_options.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
