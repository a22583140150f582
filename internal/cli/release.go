package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gitflow-tools/gitflow/internal/flow"
)

// AddReleaseCommands adds release-start, release-finish and release.
func AddReleaseCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(
		newReleaseStartCmd(flags),
		newReleaseFinishCmd(flags),
		newReleaseCmd(flags),
	)
}

func newReleaseStartCmd(flags *GlobalFlags) *cobra.Command {
	cf := &commonFlags{}
	var (
		releaseVersion string
		fromCommit     string
		sameName       bool
		commitDev      bool
		devVersion     string
		digit          int
	)
	cmd := &cobra.Command{
		Use:   "release-start",
		Short: "Start a release branch from the development branch",
		Long: `Create a release branch from the development branch and commit the
release version on it.

Examples:
  gitflow release-start
  gitflow release-start --release-version 2.0.0 --commit-development-version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				opts := flow.NewReleaseStartOptions(common)
				opts.ReleaseVersion = releaseVersion
				opts.FromCommit = fromCommit
				opts.SameBranchName = sameName
				opts.CommitDevelopmentVersionAtStart = commitDev
				opts.DevelopmentVersion = devVersion
				opts.VersionDigitToIncrement = digit
				branch, err := e.ReleaseStart(ctx, opts)
				if err != nil {
					return "", err
				}
				return "Started " + branch, nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().StringVar(&releaseVersion, "release-version", "", "release version (default: computed)")
	cmd.Flags().StringVar(&fromCommit, "from-commit", "", "start the release from this commit instead of the development branch head")
	cmd.Flags().BoolVar(&sameName, "same-branch-name", false, "use the bare release branch name without the version")
	cmd.Flags().BoolVar(&commitDev, "commit-development-version", false, "commit the next development version right away")
	cmd.Flags().StringVar(&devVersion, "development-version", "", "next development version (default: computed)")
	addDigitFlag(cmd, &digit)
	return cmd
}

func newReleaseFinishCmd(flags *GlobalFlags) *cobra.Command {
	cf := &commonFlags{}
	var (
		keepBranch bool
		skipTag    bool
		skipProd   bool
		skipDev    bool
		mergeMode  string
		commitDev  bool
		devVersion string
		digit      int
	)
	cmd := &cobra.Command{
		Use:   "release-finish [branch]",
		Short: "Merge a release branch into production and development",
		Long: `Merge a release branch into the production branch, tag it and merge it
back into the development branch with the next development version.

Examples:
  gitflow release-finish
  gitflow release-finish release/1.2.0 --skip-tag`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				mode, err := parseMergeMode(mergeMode)
				if err != nil {
					return "", err
				}
				opts := flow.NewReleaseFinishOptions(common)
				opts.Name = argOrEmpty(args)
				opts.KeepBranch = keepBranch
				opts.SkipTag = skipTag
				opts.SkipReleaseMergeProdBranch = skipProd
				opts.SkipMergeDevBranch = skipDev
				opts.MergeMode = mode
				opts.CommitDevelopmentVersionAtStart = commitDev
				opts.DevelopmentVersion = devVersion
				opts.VersionDigitToIncrement = digit
				if err := e.ReleaseFinish(ctx, opts); err != nil {
					return "", err
				}
				return "Release finished", nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().BoolVar(&keepBranch, "keep-branch", false, "keep the release branch")
	cmd.Flags().BoolVar(&skipTag, "skip-tag", false, "do not tag the release")
	cmd.Flags().BoolVar(&skipProd, "skip-merge-prod", false, "do not merge into the production branch")
	cmd.Flags().BoolVar(&skipDev, "skip-merge-dev", false, "do not merge into the development branch")
	cmd.Flags().BoolVar(&commitDev, "commit-development-version", false, "the development version was committed at release start")
	cmd.Flags().StringVar(&devVersion, "development-version", "", "next development version (default: computed)")
	addMergeModeFlag(cmd, &mergeMode)
	addDigitFlag(cmd, &digit)
	return cmd
}

func newReleaseCmd(flags *GlobalFlags) *cobra.Command {
	cf := &commonFlags{}
	var (
		releaseVersion string
		devVersion     string
		skipTag        bool
		mergeMode      string
		digit          int
	)
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Release the development branch without a release branch",
		Long: `Commit the release version on the development branch, merge it into the
production branch, tag it and commit the next development version.

Examples:
  gitflow release
  gitflow release --batch --release-version 1.4.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				mode, err := parseMergeMode(mergeMode)
				if err != nil {
					return "", err
				}
				opts := flow.NewReleaseOptions(common)
				opts.ReleaseVersion = releaseVersion
				opts.DevelopmentVersion = devVersion
				opts.SkipTag = skipTag
				opts.MergeMode = mode
				opts.VersionDigitToIncrement = digit
				if err := e.Release(ctx, opts); err != nil {
					return "", err
				}
				return "Release finished", nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().StringVar(&releaseVersion, "release-version", "", "release version (default: computed)")
	cmd.Flags().StringVar(&devVersion, "development-version", "", "next development version (default: computed)")
	cmd.Flags().BoolVar(&skipTag, "skip-tag", false, "do not tag the release")
	addMergeModeFlag(cmd, &mergeMode)
	addDigitFlag(cmd, &digit)
	return cmd
}
