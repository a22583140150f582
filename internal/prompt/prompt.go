// Package prompt asks the operator for values a flow cannot infer: which
// branch to finish, which tag to base a support branch on, which version to
// release.
package prompt

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/tui"
)

// Prompter is consumed by the flow engine.
type Prompter interface {
	// ChooseOne asks to pick one of choices. pre and post surround the
	// question. def is preselected when it is one of choices.
	ChooseOne(ctx context.Context, choices []string, def, pre, post string) (string, error)

	// PromptValidated asks for free text until validate accepts it.
	PromptValidated(ctx context.Context, message, def string, validate func(string) error) (string, error)

	// ChooseFromList asks to pick one of choices, listed under message.
	ChooseFromList(ctx context.Context, message string, choices []string) (string, error)
}

// Interactive prompts on the terminal with huh forms.
type Interactive struct {
	selectFn func(title string, options []tui.Option, preselected string) (string, error)
	inputFn  func(prompt, def string, validate func(string) error) (string, error)
}

// NewInteractive creates an Interactive prompter.
func NewInteractive() *Interactive {
	return &Interactive{
		selectFn: func(title string, options []tui.Option, preselected string) (string, error) {
			return tui.SelectWithConfig(title, options, preselected, tui.NewMenuConfig())
		},
		inputFn: tui.InputWithValidation,
	}
}

// ChooseOne implements Prompter.
func (p *Interactive) ChooseOne(ctx context.Context, choices []string, def, pre, post string) (string, error) {
	title := post
	if pre != "" {
		title = pre + "\n" + post
	}
	zerolog.Ctx(ctx).Debug().Strs("choices", choices).Str("default", def).Msg("prompting for choice")
	return p.choose(title, choices, def)
}

// PromptValidated implements Prompter.
func (p *Interactive) PromptValidated(ctx context.Context, message, def string, validate func(string) error) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("default", def).Msg("prompting for value")
	return p.inputFn(message, def, validate)
}

// ChooseFromList implements Prompter.
func (p *Interactive) ChooseFromList(ctx context.Context, message string, choices []string) (string, error) {
	zerolog.Ctx(ctx).Debug().Strs("choices", choices).Msg("prompting for list choice")
	return p.choose(message, choices, "")
}

func (p *Interactive) choose(title string, choices []string, def string) (string, error) {
	if len(choices) == 0 {
		return "", gferrors.ErrNoMenuOptions
	}
	options := make([]tui.Option, len(choices))
	preselected := ""
	for i, c := range choices {
		options[i] = tui.Option{Label: c, Value: c}
		if c == def {
			preselected = c
		}
	}
	return p.selectFn(title, options, preselected)
}

// Batch never prompts. Every call fails with ErrInteractiveRequired, so flows
// run this way must receive explicit values.
type Batch struct{}

// ChooseOne implements Prompter.
func (Batch) ChooseOne(_ context.Context, _ []string, _, _, post string) (string, error) {
	return "", fmt.Errorf("%s: %w", post, gferrors.ErrInteractiveRequired)
}

// PromptValidated implements Prompter.
func (Batch) PromptValidated(_ context.Context, message, _ string, _ func(string) error) (string, error) {
	return "", fmt.Errorf("%s: %w", message, gferrors.ErrInteractiveRequired)
}

// ChooseFromList implements Prompter.
func (Batch) ChooseFromList(_ context.Context, message string, _ []string) (string, error) {
	return "", fmt.Errorf("%s: %w", message, gferrors.ErrInteractiveRequired)
}

// New returns the Interactive prompter when interactive is set and stdin is a
// terminal, and Batch otherwise.
func New(interactive bool) Prompter {
	if interactive && tui.IsInteractive() {
		return NewInteractive()
	}
	return Batch{}
}

var (
	_ Prompter = (*Interactive)(nil)
	_ Prompter = Batch{}
)
