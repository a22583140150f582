package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gitflow-tools/gitflow/internal/flow"
)

// AddSupportCommand adds support-start.
func AddSupportCommand(root *cobra.Command, flags *GlobalFlags) {
	cf := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "support-start [tag]",
		Short: "Start a support branch from a release tag",
		Long: `Create a support branch from a release tag. Without a tag the newest one
is used in batch mode, or one is chosen interactively.

Examples:
  gitflow support-start 1.0.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				branch, err := e.SupportStart(ctx, flow.SupportStartOptions{CommonOptions: common, TagName: argOrEmpty(args)})
				if err != nil {
					return "", err
				}
				return "Started " + branch, nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	root.AddCommand(cmd)
}

// AddVersionUpdateCommand adds version-update.
func AddVersionUpdateCommand(root *cobra.Command, flags *GlobalFlags) {
	cf := &commonFlags{}
	var (
		updateVersion string
		skipTag       bool
		digit         int
	)
	cmd := &cobra.Command{
		Use:   "version-update [branch]",
		Short: "Set a new version on a release or support branch",
		Long: `Commit a new version on a release or support branch and tag it. Nothing
is merged. Setting the current version again only tags.

Examples:
  gitflow version-update support/1.0
  gitflow version-update --update-version 1.0.5 --skip-tag`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, flags, cf, func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error) {
				opts := flow.NewVersionUpdateOptions(common)
				opts.Name = argOrEmpty(args)
				opts.UpdateVersion = updateVersion
				opts.SkipTag = skipTag
				opts.VersionDigitToIncrement = digit
				if err := e.VersionUpdate(ctx, opts); err != nil {
					return "", err
				}
				return "Version updated", nil
			})
		},
	}
	addCommonFlags(cmd, cf)
	cmd.Flags().StringVar(&updateVersion, "update-version", "", "new version (default: computed)")
	cmd.Flags().BoolVar(&skipTag, "skip-tag", false, "do not tag the new version")
	addDigitFlag(cmd, &digit)
	root.AddCommand(cmd)
}
