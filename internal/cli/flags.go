package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitflow-tools/gitflow/internal/constants"
	"github.com/gitflow-tools/gitflow/internal/flow"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a failed workflow.
	ExitError = 1
	// ExitInvalidInput indicates a configuration error.
	ExitInvalidInput = 2
	// ExitInterrupted is used when SIGINT ended the run.
	ExitInterrupted = 130
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// Batch disables every prompt. Flows use defaults or fail.
	Batch bool
	// Dir is the repository directory. Defaults to the working directory.
	Dir string
	// ConfigFile replaces the project .gitflow.yaml.
	ConfigFile string
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&flags.Batch, "batch", "B", false, "never prompt; use defaults")
	cmd.PersistentFlags().StringVarP(&flags.Dir, "dir", "C", "", "run as if started in this directory")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (default is .gitflow.yaml in the repository)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper so GITFLOW_VERBOSE, GITFLOW_QUIET
// and GITFLOW_BATCH work like the flags.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command, flags *GlobalFlags) error {
	rootFlags := cmd.Root().PersistentFlags()
	for _, name := range []string{"verbose", "quiet", "batch"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
	flags.Batch = v.GetBool("batch")
	return nil
}

// commonFlags are the per-run switches of every flow command. They override
// the configuration only when given.
type commonFlags struct {
	fetch       bool
	push        bool
	skipTest    bool
	install     bool
	gpgSign     bool
	pushOptions []string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().BoolVar(&f.fetch, "fetch", true, "fetch and compare branches with the remote first")
	cmd.Flags().BoolVar(&f.push, "push", true, "push changed branches and tags")
	cmd.Flags().BoolVar(&f.skipTest, "skip-test", false, "skip the build tool test step")
	cmd.Flags().BoolVar(&f.install, "install", false, "run the build tool install step at the end")
	cmd.Flags().BoolVar(&f.gpgSign, "gpg-sign", false, "sign commits, merges and tags")
	cmd.Flags().StringSliceVar(&f.pushOptions, "push-option", nil, "git push --push-option value (repeatable)")
}

// apply overrides opts with the flags set on cmd.
func (f *commonFlags) apply(cmd *cobra.Command, opts *flow.CommonOptions) {
	changed := cmd.Flags().Changed
	if changed("fetch") {
		opts.FetchRemote = f.fetch
	}
	if changed("push") {
		opts.PushRemote = f.push
	}
	if changed("skip-test") {
		opts.SkipTest = f.skipTest
	}
	if changed("install") {
		opts.Install = f.install
	}
	if changed("gpg-sign") {
		opts.GPGSign = f.gpgSign
	}
	if changed("push-option") {
		opts.PushOptions = f.pushOptions
	}
}

// addMergeModeFlag registers --merge-mode on a finish command.
func addMergeModeFlag(cmd *cobra.Command, mode *string) {
	cmd.Flags().StringVar(mode, "merge-mode", "", "merge into the target with merge, no-ff, ff-only, rebase or squash")
}

// parseMergeMode returns the merge mode of a --merge-mode value; empty keeps the flow default.
func parseMergeMode(s string) (git.MergeMode, error) {
	if s == "" {
		return "", nil
	}
	return git.ParseMergeMode(s)
}
