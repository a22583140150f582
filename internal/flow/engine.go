// Package flow implements the git-flow workflows: feature, bugfix, release,
// hotfix, support and version-update.
//
// Every flow is a fixed sequence of steps (validate clean tree, sync with
// the remote, checkout, set version and commit, test, merge, tag, restore or
// bump the version, push, delete the branch). Steps run one at a time; the
// first failing step ends the run and nothing is rolled back, so the
// repository is left as it was at the failure for inspection.
//
// Import rules:
//   - CAN import: internal/build, internal/config, internal/constants,
//     internal/errors, internal/git, internal/prompt, internal/version
//   - MUST NOT import: internal/cli, internal/tui
package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gitflow-tools/gitflow/internal/build"
	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/prompt"
	"github.com/gitflow-tools/gitflow/internal/version"
)

// Engine runs git-flow workflows against a repository and a build tool.
type Engine struct {
	repo     git.Repository
	tool     build.Tool
	prompter prompt.Prompter
	settings Settings
	logger   zerolog.Logger
	newRunID func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRunIDGenerator replaces the uuid based run id generator.
func WithRunIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newRunID = fn
	}
}

// New creates an Engine. A nil prompter never prompts.
func New(repo git.Repository, tool build.Tool, prompter prompt.Prompter, settings Settings, opts ...EngineOption) *Engine {
	if prompter == nil {
		prompter = prompt.Batch{}
	}
	e := &Engine{
		repo:     repo,
		tool:     tool,
		prompter: prompter,
		settings: settings,
		logger:   zerolog.Nop(),
		newRunID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the engine settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// begin starts a run: it attaches a logger carrying the flow name and a run
// id to the context and logs the branch checked out at the start.
func (e *Engine) begin(ctx context.Context, flowName string) context.Context {
	base := zerolog.Ctx(ctx)
	if base.GetLevel() == zerolog.Disabled {
		base = &e.logger
	}
	logger := base.With().
		Str("flow", flowName).
		Str("run_id", e.newRunID()).
		Logger()
	event := logger.Info()
	if branch, err := e.repo.CurrentBranch(ctx); err == nil {
		event = event.Str("start_branch", branch)
	}
	event.Msg("starting")
	return logger.WithContext(ctx)
}

// done logs the end of a successful run.
func done(ctx context.Context) {
	zerolog.Ctx(ctx).Info().Msg("finished")
}

// step logs the start of a workflow step.
func step(ctx context.Context, name string) *zerolog.Event {
	return zerolog.Ctx(ctx).Info().Str("step", name)
}

// requireClean fails with ErrDirtyWorkingTree when tracked files are modified.
func (e *Engine) requireClean(ctx context.Context) error {
	step(ctx, "validate_clean").Msg("checking for uncommitted changes")
	dirty, err := e.repo.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return gferrors.ErrDirtyWorkingTree
	}
	return nil
}

// checkout switches to branch.
func (e *Engine) checkout(ctx context.Context, branch string) error {
	step(ctx, "checkout").Str("branch", branch).Msg("checking out")
	return e.repo.Checkout(ctx, branch)
}

// checkoutNew creates branch from fromRef and switches to it.
func (e *Engine) checkoutNew(ctx context.Context, branch, fromRef string) error {
	step(ctx, "checkout").Str("branch", branch).Str("from", fromRef).Msg("creating branch")
	return e.repo.CheckoutNew(ctx, branch, fromRef)
}

// currentVersion reads and parses the project version of the checked out branch.
func (e *Engine) currentVersion(ctx context.Context) (version.Info, error) {
	raw, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return version.Info{}, err
	}
	v, err := version.Parse(raw)
	if err != nil {
		return version.Info{}, gferrors.Wrapf(err, "project version %q", raw)
	}
	return v, nil
}

// setVersion sets the project version and the configured version property.
func (e *Engine) setVersion(ctx context.Context, v string) error {
	step(ctx, "set_version").Str("version", v).Msg("setting version")
	if err := e.tool.SetVersion(ctx, v, e.settings.ForceUpdate); err != nil {
		return err
	}
	if e.settings.VersionProperty != "" {
		if err := e.tool.SetProperty(ctx, e.settings.VersionProperty, v); err != nil {
			return err
		}
	}
	return nil
}

// commit records all tracked changes.
func (e *Engine) commit(ctx context.Context, opts CommonOptions, message string) error {
	step(ctx, "commit").Str("message", message).Msg("committing")
	return e.repo.Commit(ctx, message, git.CommitOptions{All: true, Sign: opts.GPGSign})
}

// setVersionAndCommit sets v and commits when it differs from current.
// It reports whether a commit was made.
func (e *Engine) setVersionAndCommit(ctx context.Context, opts CommonOptions, current, v, message string) (bool, error) {
	if current == v {
		zerolog.Ctx(ctx).Debug().Str("version", v).Msg("version unchanged, nothing to commit")
		return false, nil
	}
	if err := e.setVersion(ctx, v); err != nil {
		return false, err
	}
	if err := e.commit(ctx, opts, message); err != nil {
		return false, err
	}
	return true, nil
}

// merge merges source into target, which must be checked out.
func (e *Engine) merge(ctx context.Context, opts CommonOptions, source, target string, mode git.MergeMode) error {
	step(ctx, "merge").Str("source", source).Str("target", target).Str("mode", string(mode)).Msg("merging")
	return e.repo.Merge(ctx, source, git.MergeOptions{
		Mode:    mode,
		Message: fmt.Sprintf("Merge branch '%s' into %s", source, target),
		Sign:    opts.GPGSign,
	})
}

// tag creates a tag at HEAD.
func (e *Engine) tag(ctx context.Context, opts CommonOptions, name, message string) error {
	step(ctx, "tag").Str("tag", name).Msg("tagging")
	return e.repo.Tag(ctx, name, message, opts.GPGSign)
}

// test runs the build tool tests unless skipped.
func (e *Engine) test(ctx context.Context, opts CommonOptions) error {
	if opts.SkipTest {
		return nil
	}
	step(ctx, "test").Msg("running tests")
	return e.tool.Test(ctx)
}

// install runs the build tool install step when requested.
func (e *Engine) install(ctx context.Context, opts CommonOptions) error {
	if !opts.Install {
		return nil
	}
	step(ctx, "install").Msg("installing project")
	return e.tool.Install(ctx)
}

// runGoals runs build goals; empty goals are skipped.
func (e *Engine) runGoals(ctx context.Context, goals string) error {
	if goals == "" {
		return nil
	}
	step(ctx, "goals").Str("goals", goals).Msg("running build goals")
	return e.tool.RunGoals(ctx, goals)
}

// push pushes branch to the remote.
func (e *Engine) push(ctx context.Context, opts CommonOptions, branch string, followTags bool) error {
	step(ctx, "push").Str("branch", branch).Bool("follow_tags", followTags).Msg("pushing")
	return e.repo.Push(ctx, e.settings.Origin, branch, git.PushOptions{FollowTags: followTags, Options: opts.PushOptions})
}

// pushDelete removes branch on the remote if it was ever pushed.
func (e *Engine) pushDelete(ctx context.Context, branch string) error {
	remote, err := e.repo.RefExists(ctx, git.RemoteRef(e.settings.Origin, branch))
	if err != nil {
		return err
	}
	if !remote {
		zerolog.Ctx(ctx).Debug().Str("branch", branch).Msg("branch not on remote, nothing to delete")
		return nil
	}
	step(ctx, "push").Str("branch", branch).Msg("deleting remote branch")
	return e.repo.PushDelete(ctx, e.settings.Origin, branch)
}

// deleteBranch deletes a local branch.
func (e *Engine) deleteBranch(ctx context.Context, branch string, force bool) error {
	step(ctx, "delete_branch").Str("branch", branch).Bool("force", force).Msg("deleting branch")
	return e.repo.DeleteBranch(ctx, branch, force)
}

// recordBase stores the branch a new branch was started from.
func (e *Engine) recordBase(ctx context.Context, branch, base string) error {
	return e.repo.SetConfig(ctx, fmt.Sprintf(constants.BaseBranchConfigKeyFormat, branch), base)
}

// resolveVersion returns explicit when set, prompts when interactive, and
// falls back to def otherwise. The result must be a valid version.
func (e *Engine) resolveVersion(ctx context.Context, opts CommonOptions, explicit, def, question string) (string, error) {
	if explicit != "" {
		if !version.IsValid(explicit) {
			return "", fmt.Errorf("%q: %w", explicit, gferrors.ErrVersionFormat)
		}
		return explicit, nil
	}
	if !opts.Interactive {
		return def, nil
	}
	return e.prompter.PromptValidated(ctx, question, def, validateVersion)
}

func validateVersion(s string) error {
	if !version.IsValid(s) {
		return fmt.Errorf("%q: %w", s, gferrors.ErrVersionFormat)
	}
	return nil
}
