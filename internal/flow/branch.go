package flow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// BranchKind classifies git-flow branches.
type BranchKind string

// Branch kinds.
const (
	KindFeature     BranchKind = "feature"
	KindBugfix      BranchKind = "bugfix"
	KindRelease     BranchKind = "release"
	KindHotfix      BranchKind = "hotfix"
	KindSupport     BranchKind = "support"
	KindProduction  BranchKind = "production"
	KindDevelopment BranchKind = "development"
)

// Branch is a git-flow branch.
type Branch struct {
	Name   string
	Kind   BranchKind
	Prefix string
}

// ShortName returns the name without its prefix.
func (b Branch) ShortName() string {
	return strings.TrimPrefix(b.Name, b.Prefix)
}

// Prefix returns the branch prefix configured for kind. Long-lived kinds
// have no prefix.
func (s Settings) Prefix(kind BranchKind) string {
	switch kind {
	case KindFeature:
		return s.FeaturePrefix
	case KindBugfix:
		return s.BugfixPrefix
	case KindRelease:
		return s.ReleasePrefix
	case KindHotfix:
		return s.HotfixPrefix
	case KindSupport:
		return s.SupportPrefix
	default:
		return ""
	}
}

// Classify returns the Branch for name.
func (s Settings) Classify(name string) Branch {
	switch name {
	case s.Production:
		return Branch{Name: name, Kind: KindProduction}
	case s.Development:
		return Branch{Name: name, Kind: KindDevelopment}
	}
	// hotfix before support: hotfix/support/x/1.0.1 is a hotfix
	for _, kind := range []BranchKind{KindHotfix, KindRelease, KindFeature, KindBugfix, KindSupport} {
		if p := s.Prefix(kind); p != "" && strings.HasPrefix(name, p) {
			return Branch{Name: name, Kind: kind, Prefix: p}
		}
	}
	return Branch{Name: name}
}

// listBranches returns the local and remote branches starting with prefix,
// deduplicated and sorted. for-each-ref globs do not match across '/', so
// whole namespaces are listed and filtered here; hotfix/support/1.0/1.0.4
// counts as a hotfix branch.
func (e *Engine) listBranches(ctx context.Context, prefix string) ([]string, error) {
	local, err := e.repo.FindRefs(ctx, git.HeadsPrefix, "", git.FindRefsOptions{})
	if err != nil {
		return nil, err
	}
	remotePrefix := git.RemotesPrefix + e.settings.Origin + "/"
	remote, err := e.repo.FindRefs(ctx, remotePrefix, "", git.FindRefsOptions{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(local)+len(remote))
	out := make([]string, 0, len(local)+len(remote))
	for _, name := range append(local, remote...) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	slices.Sort(out)
	return out, nil
}

// branchExists reports whether branch exists locally or on the remote.
func (e *Engine) branchExists(ctx context.Context, branch string) (bool, error) {
	local, err := e.repo.RefExists(ctx, git.LocalRef(branch))
	if err != nil || local {
		return local, err
	}
	return e.repo.RefExists(ctx, git.RemoteRef(e.settings.Origin, branch))
}

// selectBranch resolves the branch a finish flow works on.
//
// An explicit name gets the prefix added when missing and must exist. Without
// a name the branches starting with prefix are listed: none is
// ErrBranchNotFound, one is selected, several are offered to the prompter or
// rejected with ErrAmbiguousBranch in batch mode.
func (e *Engine) selectBranch(ctx context.Context, opts CommonOptions, prefix, explicit, question string) (string, error) {
	if explicit != "" {
		name := explicit
		if !strings.HasPrefix(name, prefix) {
			name = prefix + name
		}
		ok, err := e.branchExists(ctx, name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s: %w", name, gferrors.ErrBranchNotFound)
		}
		return name, nil
	}

	branches, err := e.listBranches(ctx, prefix)
	if err != nil {
		return "", err
	}
	return e.chooseBranch(ctx, opts, branches, prefix, question)
}

func (e *Engine) chooseBranch(ctx context.Context, opts CommonOptions, branches []string, prefix, question string) (string, error) {
	switch {
	case len(branches) == 0:
		return "", fmt.Errorf("no %s* branches: %w", prefix, gferrors.ErrBranchNotFound)
	case len(branches) == 1:
		return branches[0], nil
	case !opts.Interactive:
		return "", fmt.Errorf("%s: %w", strings.Join(branches, ", "), gferrors.ErrAmbiguousBranch)
	}
	return e.prompter.ChooseOne(ctx, branches, "", question, "Branch name")
}
