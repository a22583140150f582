package flow

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// topicKind parameterizes the shared feature and bugfix implementation.
type topicKind struct {
	kind          BranchKind
	prefix        string
	startMessage  string
	finishMessage string
	squashMessage string
}

func (e *Engine) featureKind() topicKind {
	m := e.settings.Messages
	return topicKind{
		kind:          KindFeature,
		prefix:        e.settings.FeaturePrefix,
		startMessage:  m.FeatureStart,
		finishMessage: m.FeatureFinish,
		squashMessage: m.FeatureSquash,
	}
}

func (e *Engine) bugfixKind() topicKind {
	m := e.settings.Messages
	return topicKind{
		kind:          KindBugfix,
		prefix:        e.settings.BugfixPrefix,
		startMessage:  m.BugfixStart,
		finishMessage: m.BugfixFinish,
		squashMessage: m.BugfixSquash,
	}
}

// FeatureStart creates a feature branch from the development branch.
func (e *Engine) FeatureStart(ctx context.Context, opts FeatureStartOptions) (string, error) {
	return e.topicStart(e.begin(ctx, "feature-start"), e.featureKind(), opts)
}

// FeatureFinish merges a feature branch into the development branch.
func (e *Engine) FeatureFinish(ctx context.Context, opts FeatureFinishOptions) error {
	return e.topicFinish(e.begin(ctx, "feature-finish"), e.featureKind(), opts)
}

// BugfixStart creates a bugfix branch from the development branch.
func (e *Engine) BugfixStart(ctx context.Context, opts FeatureStartOptions) (string, error) {
	return e.topicStart(e.begin(ctx, "bugfix-start"), e.bugfixKind(), opts)
}

// BugfixFinish merges a bugfix branch into the development branch.
func (e *Engine) BugfixFinish(ctx context.Context, opts FeatureFinishOptions) error {
	return e.topicFinish(e.begin(ctx, "bugfix-finish"), e.bugfixKind(), opts)
}

func (e *Engine) topicStart(ctx context.Context, k topicKind, opts FeatureStartOptions) (string, error) {
	if err := e.requireClean(ctx); err != nil {
		return "", err
	}

	name, err := e.topicName(ctx, k, opts)
	if err != nil {
		return "", err
	}
	branch := k.prefix + name

	dev := e.settings.Development
	if err := e.syncBranch(ctx, opts.CommonOptions, dev); err != nil {
		return "", err
	}

	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%s: %w", branch, gferrors.ErrBranchExists)
	}

	if err := e.checkoutNew(ctx, branch, dev); err != nil {
		return "", err
	}

	if !e.settings.SkipFeatureVersion {
		current, err := e.currentVersion(ctx)
		if err != nil {
			return "", err
		}
		featureVersion, err := e.settings.Calculator.FeatureVersion(current, name)
		if err != nil {
			return "", err
		}
		msg := e.settings.message(k.startMessage, messageVars{version: featureVersion, featureName: name})
		if _, err := e.setVersionAndCommit(ctx, opts.CommonOptions, current.String(), featureVersion, msg); err != nil {
			return "", err
		}
	}

	if err := e.recordBase(ctx, branch, dev); err != nil {
		return "", err
	}
	if err := e.install(ctx, opts.CommonOptions); err != nil {
		return "", err
	}
	if opts.PushRemote {
		if err := e.push(ctx, opts.CommonOptions, branch, false); err != nil {
			return "", err
		}
	}

	done(ctx)
	return branch, nil
}

// topicName resolves and validates the name of a new feature or bugfix branch.
func (e *Engine) topicName(ctx context.Context, k topicKind, opts FeatureStartOptions) (string, error) {
	name := opts.Name
	if name == "" {
		if !opts.Interactive {
			return "", fmt.Errorf("%s name: %w", k.kind, gferrors.ErrInteractiveRequired)
		}
		var err error
		name, err = e.prompter.PromptValidated(ctx, fmt.Sprintf("What is a name of %s branch? %s", k.kind, k.prefix), "", e.validateTopicName)
		if err != nil {
			return "", err
		}
	}

	name = removeWhitespace(name)
	if err := e.validateTopicName(name); err != nil {
		return "", err
	}
	ok, err := e.repo.ValidBranchName(ctx, k.prefix+name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%q: %w", k.prefix+name, gferrors.ErrInvalidBranchName)
	}
	return name, nil
}

func (e *Engine) validateTopicName(name string) error {
	name = removeWhitespace(name)
	if name == "" {
		return fmt.Errorf("name: %w", gferrors.ErrInvalidBranchName)
	}
	if p := e.settings.FeatureNamePattern; p != nil && !p.MatchString(name) {
		return fmt.Errorf("%q does not match %s: %w", name, p, gferrors.ErrInvalidBranchName)
	}
	return nil
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func (e *Engine) topicFinish(ctx context.Context, k topicKind, opts FeatureFinishOptions) error {
	if err := e.requireClean(ctx); err != nil {
		return err
	}

	branch, err := e.selectBranch(ctx, opts.CommonOptions, k.prefix, opts.Name, fmt.Sprintf("%s branches:", k.kind))
	if err != nil {
		return err
	}
	name := strings.TrimPrefix(branch, k.prefix)
	dev := e.settings.Development

	if err := e.syncBranches(ctx, opts.CommonOptions, branch, dev); err != nil {
		return err
	}

	if err := e.checkout(ctx, branch); err != nil {
		return err
	}
	if err := e.test(ctx, opts.CommonOptions); err != nil {
		return err
	}

	// strip the feature name from the version before it reaches development
	current, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if !e.settings.SkipFeatureVersion && strings.Contains(current, "-"+name) {
		stripped := strings.Replace(current, "-"+name, "", 1)
		msg := e.settings.message(k.finishMessage, messageVars{version: stripped, featureName: name})
		if _, err := e.setVersionAndCommit(ctx, opts.CommonOptions, current, stripped, msg); err != nil {
			return err
		}
	}

	if err := e.checkout(ctx, dev); err != nil {
		return err
	}
	if opts.Squash {
		if err := e.merge(ctx, opts.CommonOptions, branch, dev, git.MergeSquash); err != nil {
			return err
		}
		msg := e.settings.message(k.squashMessage, messageVars{featureName: name})
		if err := e.commit(ctx, opts.CommonOptions, msg); err != nil {
			return err
		}
	} else {
		if err := e.merge(ctx, opts.CommonOptions, branch, dev, mergeModeOr(opts.MergeMode, git.MergeNoFF)); err != nil {
			return err
		}
	}

	if opts.IncrementVersionAtFinish {
		if err := e.incrementDevelopment(ctx, opts); err != nil {
			return err
		}
	}

	if err := e.install(ctx, opts.CommonOptions); err != nil {
		return err
	}

	if opts.KeepBranch {
		if err := e.restoreTopicVersion(ctx, opts, branch, name); err != nil {
			return err
		}
	} else if err := e.deleteBranch(ctx, branch, opts.Squash); err != nil {
		return err
	}

	if opts.PushRemote {
		if err := e.push(ctx, opts.CommonOptions, dev, false); err != nil {
			return err
		}
		if opts.KeepBranch {
			err = e.push(ctx, opts.CommonOptions, branch, false)
		} else {
			err = e.pushDelete(ctx, branch)
		}
		if err != nil {
			return err
		}
	}

	done(ctx)
	return nil
}

// incrementDevelopment bumps the checked out development version.
func (e *Engine) incrementDevelopment(ctx context.Context, opts FeatureFinishOptions) error {
	current, err := e.currentVersion(ctx)
	if err != nil {
		return err
	}
	next, err := e.settings.Calculator.NextSnapshotVersion(current, opts.VersionDigitToIncrement)
	if err != nil {
		return err
	}
	msg := e.settings.message(e.settings.Messages.ReleaseVersionUpdate, messageVars{version: next})
	_, err = e.setVersionAndCommit(ctx, opts.CommonOptions, current.String(), next, msg)
	return err
}

// restoreTopicVersion puts the feature version back on a kept branch and
// returns to the development branch.
func (e *Engine) restoreTopicVersion(ctx context.Context, opts FeatureFinishOptions, branch, name string) error {
	if e.settings.SkipFeatureVersion {
		return nil
	}
	devVersion, err := e.currentVersion(ctx)
	if err != nil {
		return err
	}
	featureVersion, err := e.settings.Calculator.FeatureVersion(devVersion, name)
	if err != nil {
		return err
	}

	if err := e.checkout(ctx, branch); err != nil {
		return err
	}
	current, err := e.tool.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	msg := e.settings.message(e.settings.Messages.UpdateFeatureBack, messageVars{version: featureVersion, featureName: name})
	if _, err := e.setVersionAndCommit(ctx, opts.CommonOptions, current, featureVersion, msg); err != nil {
		return err
	}
	return e.checkout(ctx, e.settings.Development)
}
