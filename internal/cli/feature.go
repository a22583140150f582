package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/flow"
	"github.com/gitflow-tools/gitflow/internal/git"
)

type (
	topicStartFunc  func(*flow.Engine, context.Context, flow.FeatureStartOptions) (string, error)
	topicFinishFunc func(*flow.Engine, context.Context, flow.FeatureFinishOptions) error
)

// AddFeatureCommands adds feature-start, feature-finish, bugfix-start and bugfix-finish.
func AddFeatureCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(
		newTopicStartCmd(flags, "feature", (*flow.Engine).FeatureStart),
		newTopicFinishCmd(flags, "feature", (*flow.Engine).FeatureFinish),
		newTopicStartCmd(flags, "bugfix", (*flow.Engine).BugfixStart),
		newTopicFinishCmd(flags, "bugfix", (*flow.Engine).BugfixFinish),
	)
}

func newTopicStartCmd(flags *GlobalFlags, kind string, start topicStartFunc) *cobra.Command {
	cf := &commonFlags{}
	cmd := &cobra.Command{
		Use:   kind + "-start [name]",
		Short: fmt.Sprintf("Start a %s branch from the development branch", kind),
		Long: fmt.Sprintf(`Create a %[1]s branch from the development branch.

Unless feature versions are disabled, the %[1]s name is inserted into the
project version (1.0-SNAPSHOT becomes 1.0-name-SNAPSHOT) and committed.

Examples:
  gitflow %[1]s-start PROJ-42
  gitflow %[1]s-start --batch --push=false PROJ-42`, kind),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				branch, err := start(e, ctx, flow.FeatureStartOptions{CommonOptions: common, Name: argOrEmpty(args)})
				if err != nil {
					return "", err
				}
				return "Started " + branch, nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	return cmd
}

type topicFinishFlags struct {
	keepBranch bool
	squash     bool
	mergeMode  string
	increment  bool
	digit      int
}

func newTopicFinishCmd(flags *GlobalFlags, kind string, finish topicFinishFunc) *cobra.Command {
	cf := &commonFlags{}
	tf := &topicFinishFlags{}
	cmd := &cobra.Command{
		Use:   kind + "-finish [name]",
		Short: fmt.Sprintf("Merge a %s branch into the development branch", kind),
		Long: fmt.Sprintf(`Merge a %[1]s branch into the development branch and delete it.

The %[1]s version is removed before merging. Without a name the only %[1]s
branch is used, or one is chosen interactively.

Examples:
  gitflow %[1]s-finish
  gitflow %[1]s-finish PROJ-42 --squash`, kind),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				opts, err := tf.options(common, argOrEmpty(args))
				if err != nil {
					return "", err
				}
				if err := finish(e, ctx, opts); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s branch merged into %s", cases.Title(language.English).String(kind), e.Settings().Development), nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().BoolVar(&tf.keepBranch, "keep-branch", false, "keep the branch after merging")
	cmd.Flags().BoolVar(&tf.squash, "squash", false, "squash the branch into one commit")
	cmd.Flags().BoolVar(&tf.increment, "increment-version", false, "increment the development version after merging")
	addMergeModeFlag(cmd, &tf.mergeMode)
	addDigitFlag(cmd, &tf.digit)
	return cmd
}

func (tf *topicFinishFlags) options(common flow.CommonOptions, name string) (flow.FeatureFinishOptions, error) {
	mode, err := parseMergeMode(tf.mergeMode)
	if err != nil {
		return flow.FeatureFinishOptions{}, err
	}
	if tf.squash && mode != "" && mode != git.MergeSquash {
		return flow.FeatureFinishOptions{}, fmt.Errorf("--squash with --merge-mode %s: %w", mode, gferrors.ErrConflictingFlags)
	}
	if mode == git.MergeSquash {
		tf.squash = true
	}

	opts := flow.NewFeatureFinishOptions(common)
	opts.Name = name
	opts.KeepBranch = tf.keepBranch
	opts.Squash = tf.squash
	opts.MergeMode = mode
	opts.IncrementVersionAtFinish = tf.increment
	opts.VersionDigitToIncrement = tf.digit
	return opts, nil
}
