package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gitflow-tools/gitflow/internal/flow"
)

// AddHotfixCommands adds hotfix-start and hotfix-finish.
func AddHotfixCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newHotfixStartCmd(flags), newHotfixFinishCmd(flags))
}

func newHotfixStartCmd(flags *GlobalFlags) *cobra.Command {
	cf := &commonFlags{}
	var (
		fromBranch    string
		hotfixVersion string
		digit         int
	)
	cmd := &cobra.Command{
		Use:   "hotfix-start",
		Short: "Start a hotfix branch from production or a support branch",
		Long: `Create a hotfix branch from the production branch or a support branch
and commit the hotfix version on it.

Examples:
  gitflow hotfix-start
  gitflow hotfix-start --from-branch support/1.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				opts := flow.NewHotfixStartOptions(common)
				opts.FromBranch = fromBranch
				opts.HotfixVersion = hotfixVersion
				opts.HotfixVersionDigitToIncrement = digit
				branch, err := e.HotfixStart(ctx, opts)
				if err != nil {
					return "", err
				}
				return "Started " + branch, nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().StringVar(&fromBranch, "from-branch", "", "production or support branch to start from")
	cmd.Flags().StringVar(&hotfixVersion, "hotfix-version", "", "hotfix version (default: computed)")
	addDigitFlag(cmd, &digit)
	return cmd
}

func newHotfixFinishCmd(flags *GlobalFlags) *cobra.Command {
	cf := &commonFlags{}
	var (
		keepBranch  bool
		skipTag     bool
		skipProd    bool
		skipDev     bool
		noBackMerge bool
		mergeMode   string
		digit       int
	)
	cmd := &cobra.Command{
		Use:   "hotfix-finish [branch]",
		Short: "Merge a hotfix branch into production and back",
		Long: `Merge a hotfix branch into its production or support branch and tag it.
A hotfix of production is then merged into the release in progress or into
the development branch without disturbing their versions.

Examples:
  gitflow hotfix-finish
  gitflow hotfix-finish hotfix/1.0.1 --no-back-merge`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				mode, err := parseMergeMode(mergeMode)
				if err != nil {
					return "", err
				}
				opts := flow.NewHotfixFinishOptions(common)
				opts.Name = argOrEmpty(args)
				opts.KeepBranch = keepBranch
				opts.SkipTag = skipTag
				opts.SkipMergeProdBranch = skipProd
				opts.SkipMergeDevBranch = skipDev
				opts.NoBackMergeHotfix = noBackMerge
				opts.MergeMode = mode
				opts.VersionDigitToIncrement = digit
				if err := e.HotfixFinish(ctx, opts); err != nil {
					return "", err
				}
				return "Hotfix finished", nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().BoolVar(&keepBranch, "keep-branch", false, "keep the hotfix branch")
	cmd.Flags().BoolVar(&skipTag, "skip-tag", false, "do not tag the hotfix")
	cmd.Flags().BoolVar(&skipProd, "skip-merge-prod", false, "do not merge into the production or support branch")
	cmd.Flags().BoolVar(&skipDev, "skip-merge-dev", false, "do not merge into the release or development branch")
	cmd.Flags().BoolVar(&noBackMerge, "no-back-merge", false, "merge the hotfix branch instead of the tag into development")
	addMergeModeFlag(cmd, &mergeMode)
	addDigitFlag(cmd, &digit)
	return cmd
}
