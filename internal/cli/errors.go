package cli

import (
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/tui"
)

// ExitCode maps a command error to the process exit code: 2 for
// configuration and usage errors, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case gferrors.IsExitCode2Error(err), stderrors.Is(err, gferrors.ErrConfiguration):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

// ReportError prints err as one message with the suggested action.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	tui.NewOutput(w, tui.FormatText).Error(actionableError(err))
}

func actionableError(err error) *tui.ActionableError {
	message, action := gferrors.Actionable(err)
	ae := tui.NewActionableError(message, action)
	if detail := err.Error(); detail != message {
		ae.WithContext(detail)
	}
	return ae
}

// flagError marks cobra flag parsing errors as usage errors.
func flagError(_ *cobra.Command, err error) error {
	return gferrors.NewExitCode2Error(err)
}
