package cli

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gitflow-tools/gitflow/internal/constants"
	"github.com/gitflow-tools/gitflow/internal/flock"
	"github.com/gitflow-tools/gitflow/internal/flow"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/tui"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// flowFunc runs one workflow and returns the success message.
type flowFunc func(ctx context.Context, e *flow.Engine, common flow.CommonOptions) (string, error)

// runFlow resolves the execution context, applies the flag overrides to the
// configured options and runs fn.
func runFlow(cmd *cobra.Command, flags *GlobalFlags, cf *commonFlags, fn flowFunc) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())

	ec, err := ResolveExecutionContext(ctx, flags)
	if err != nil {
		return err
	}
	lock, err := acquireRunLock(ctx, ec.WorkDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	common := ec.Common
	cf.apply(cmd, &common)

	msg, err := fn(ctx, ec.Engine, common)
	if err != nil {
		return err
	}
	if !flags.Quiet {
		tui.NewOutput(cmd.OutOrStdout(), tui.FormatText).Success(msg)
	}
	return nil
}

// acquireRunLock takes the run lock in the git directory of dir. Outside a
// repository no lock is taken and the workflow reports the git failure itself.
func acquireRunLock(ctx context.Context, dir string) (*flock.Lock, error) {
	gitDir, err := git.RunCommand(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("dir", dir).Msg("no git directory, running without lock")
		return nil, nil //nolint:nilnil // a nil lock releases as a no-op
	}
	return flock.TryLock(filepath.Join(gitDir, constants.RunLockFileName))
}

// argOrEmpty returns the first positional argument, if any.
func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// addDigitFlag registers --version-digit. The default increments the last digit.
func addDigitFlag(cmd *cobra.Command, digit *int) {
	cmd.Flags().IntVar(digit, "version-digit", version.NoIndex, "zero-based version digit to increment (default: last)")
}
