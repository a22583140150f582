package flow

import (
	"context"
	"fmt"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// fakeBranch is a branch of fakeRepo. The project version is the only file
// content the fake tracks.
type fakeBranch struct {
	version string // committed version
	working string // version in the working tree
	commits []string
	squash  bool // squashed changes are staged
}

type fakeTag struct {
	version string
	branch  string
	message string
}

// fakeRepo is an in-memory git.Repository. FindRefs patterns are matched
// with path.Match, so like for-each-ref a '*' does not match '/', and an
// empty pattern lists the whole namespace.
type fakeRepo struct {
	branches map[string]*fakeBranch
	remote   map[string]string // remote branch -> version
	diverged map[string][2]int // branch -> ahead, behind
	tags     []string          // in FindRefs order
	tagInfo  map[string]fakeTag
	config   map[string]string
	current  string
	dirty    bool
	fetchErr error
	ops      []string
}

var _ git.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches: map[string]*fakeBranch{},
		remote:   map[string]string{},
		diverged: map[string][2]int{},
		tagInfo:  map[string]fakeTag{},
		config:   map[string]string{},
	}
}

// withBranch adds a local branch at version and checks it out when it is the first one.
func (r *fakeRepo) withBranch(name, version string) *fakeRepo {
	r.branches[name] = &fakeBranch{version: version, working: version}
	if r.current == "" {
		r.current = name
	}
	return r
}

func (r *fakeRepo) withRemote(name, version string) *fakeRepo {
	r.remote[name] = version
	return r
}

func (r *fakeRepo) withTag(name, version string) *fakeRepo {
	r.tags = append(r.tags, name)
	r.tagInfo[name] = fakeTag{version: version}
	return r
}

func (r *fakeRepo) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *fakeRepo) branch(t *testing.T, name string) *fakeBranch {
	t.Helper()
	b, ok := r.branches[name]
	require.True(t, ok, "branch %s does not exist", name)
	return b
}

func (r *fakeRepo) hasOp(op string) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}

func (r *fakeRepo) FindRefs(_ context.Context, refPrefix, pattern string, _ git.FindRefsOptions) ([]string, error) {
	var names []string
	switch refPrefix {
	case git.HeadsPrefix:
		for name := range r.branches {
			names = append(names, name)
		}
	case git.RemotesPrefix + "origin/":
		for name := range r.remote {
			names = append(names, name)
		}
	case git.TagsPrefix:
		names = append(names, r.tags...)
	}

	var out []string
	for _, name := range names {
		if pattern == "" {
			out = append(out, name)
			continue
		}
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func (r *fakeRepo) RefExists(_ context.Context, ref string) (bool, error) {
	switch {
	case strings.HasPrefix(ref, git.HeadsPrefix):
		_, ok := r.branches[strings.TrimPrefix(ref, git.HeadsPrefix)]
		return ok, nil
	case strings.HasPrefix(ref, git.RemotesPrefix+"origin/"):
		_, ok := r.remote[strings.TrimPrefix(ref, git.RemotesPrefix+"origin/")]
		return ok, nil
	case strings.HasPrefix(ref, git.TagsPrefix):
		_, ok := r.tagInfo[strings.TrimPrefix(ref, git.TagsPrefix)]
		return ok, nil
	}
	return false, nil
}

func (r *fakeRepo) HasUncommittedChanges(context.Context) (bool, error) {
	if r.dirty {
		return true, nil
	}
	if b, ok := r.branches[r.current]; ok {
		return b.working != b.version || b.squash, nil
	}
	return false, nil
}

func (r *fakeRepo) RevListLeftRightCount(_ context.Context, a, b string) (int, int, error) {
	r.log("rev-list %s...%s", a, b)
	d := r.diverged[a]
	return d[0], d[1], nil
}

func (r *fakeRepo) Checkout(_ context.Context, ref string) error {
	if _, ok := r.branches[ref]; !ok {
		return fmt.Errorf("checkout %s: %w", ref, gferrors.ErrExternalTool)
	}
	r.current = ref
	r.log("checkout %s", ref)
	return nil
}

// resolve returns the committed version at ref.
func (r *fakeRepo) resolve(ref string) (string, bool) {
	if b, ok := r.branches[ref]; ok {
		return b.version, true
	}
	if v, ok := r.remote[strings.TrimPrefix(ref, "origin/")]; ok && strings.HasPrefix(ref, "origin/") {
		return v, true
	}
	if t, ok := r.tagInfo[strings.TrimPrefix(ref, git.TagsPrefix)]; ok {
		return t.version, true
	}
	return "", false
}

func (r *fakeRepo) CheckoutNew(_ context.Context, branch, fromRef string) error {
	if _, ok := r.branches[branch]; ok {
		return fmt.Errorf("branch %s exists: %w", branch, gferrors.ErrExternalTool)
	}
	v, ok := r.resolve(fromRef)
	if !ok {
		return fmt.Errorf("unknown ref %s: %w", fromRef, gferrors.ErrExternalTool)
	}
	r.branches[branch] = &fakeBranch{version: v, working: v}
	r.current = branch
	r.log("checkout-new %s %s", branch, fromRef)
	return nil
}

func (r *fakeRepo) DeleteBranch(_ context.Context, name string, force bool) error {
	if name == r.current {
		return fmt.Errorf("cannot delete checked out %s: %w", name, gferrors.ErrExternalTool)
	}
	delete(r.branches, name)
	if force {
		r.log("delete %s force", name)
	} else {
		r.log("delete %s", name)
	}
	return nil
}

// Merge makes the target take the source version, which is what a three-way
// merge does when only the source changed the version.
func (r *fakeRepo) Merge(_ context.Context, ref string, opts git.MergeOptions) error {
	v, ok := r.resolve(ref)
	if !ok {
		return fmt.Errorf("unknown ref %s: %w", ref, gferrors.ErrExternalTool)
	}
	target := r.branches[r.current]
	r.log("merge %s into %s %s", ref, r.current, opts.Mode)

	switch opts.Mode {
	case git.MergeSquash:
		target.working = v
		target.squash = true
	case git.MergeFFOnly, git.MergeRebase:
		target.version, target.working = v, v
	default:
		target.version, target.working = v, v
		target.commits = append(target.commits, opts.Message)
	}
	return nil
}

func (r *fakeRepo) Tag(_ context.Context, name, message string, _ bool) error {
	if _, ok := r.tagInfo[name]; ok {
		return fmt.Errorf("tag %s exists: %w", name, gferrors.ErrExternalTool)
	}
	r.tags = append(r.tags, name)
	r.tagInfo[name] = fakeTag{version: r.branches[r.current].version, branch: r.current, message: message}
	r.log("tag %s", name)
	return nil
}

func (r *fakeRepo) Commit(_ context.Context, message string, _ git.CommitOptions) error {
	b := r.branches[r.current]
	if b.working == b.version && !b.squash {
		return fmt.Errorf("nothing to commit on %s: %w", r.current, gferrors.ErrExternalTool)
	}
	b.version = b.working
	b.squash = false
	b.commits = append(b.commits, message)
	r.log("commit %s: %s", r.current, message)
	return nil
}

func (r *fakeRepo) Push(_ context.Context, remote, ref string, opts git.PushOptions) error {
	if b, ok := r.branches[ref]; ok {
		r.remote[ref] = b.version
	}
	if opts.FollowTags {
		r.log("push %s %s --follow-tags", remote, ref)
	} else {
		r.log("push %s %s", remote, ref)
	}
	return nil
}

func (r *fakeRepo) PushDelete(_ context.Context, remote, ref string) error {
	delete(r.remote, ref)
	r.log("push-delete %s %s", remote, ref)
	return nil
}

func (r *fakeRepo) Fetch(_ context.Context, remote string, refspecs ...string) error {
	r.log("fetch %s %s", remote, strings.Join(refspecs, " "))
	return r.fetchErr
}

func (r *fakeRepo) SetConfig(_ context.Context, key, value string) error {
	r.config[key] = value
	return nil
}

func (r *fakeRepo) CurrentBranch(context.Context) (string, error) {
	return r.current, nil
}

func (r *fakeRepo) ValidBranchName(_ context.Context, name string) (bool, error) {
	return !strings.ContainsAny(name, " ~^:?*[\\") && !strings.Contains(name, ".."), nil
}

// fakeTool is a build.Tool editing the version of the checked out fakeRepo branch.
type fakeTool struct {
	repo    *fakeRepo
	testErr error
	props   map[string]string
}

func newFakeTool(repo *fakeRepo) *fakeTool {
	return &fakeTool{repo: repo, props: map[string]string{}}
}

func (f *fakeTool) Name() string { return "fake" }

func (f *fakeTool) CurrentVersion(context.Context) (string, error) {
	return f.repo.branches[f.repo.current].working, nil
}

func (f *fakeTool) SetVersion(_ context.Context, version string, _ bool) error {
	f.repo.branches[f.repo.current].working = version
	f.repo.log("set-version %s %s", f.repo.current, version)
	return nil
}

func (f *fakeTool) SetProperty(_ context.Context, name, value string) error {
	f.props[name] = value
	return nil
}

func (f *fakeTool) RunGoals(_ context.Context, goals string) error {
	f.repo.log("goals %s", goals)
	return nil
}

func (f *fakeTool) Test(context.Context) error {
	f.repo.log("test %s", f.repo.current)
	return f.testErr
}

func (f *fakeTool) Install(context.Context) error {
	f.repo.log("install")
	return nil
}

// fakePrompter answers with scripted values.
type fakePrompter struct {
	choice  string
	answer  string
	err     error
	choices [][]string
}

func (p *fakePrompter) ChooseOne(_ context.Context, choices []string, _, _, _ string) (string, error) {
	p.choices = append(p.choices, choices)
	return p.choice, p.err
}

func (p *fakePrompter) PromptValidated(_ context.Context, _, def string, validate func(string) error) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	answer := p.answer
	if answer == "" {
		answer = def
	}
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (p *fakePrompter) ChooseFromList(_ context.Context, _ string, choices []string) (string, error) {
	p.choices = append(p.choices, choices)
	return p.choice, p.err
}

// newTestEngine wires an Engine with the default settings to the fakes.
func newTestEngine(repo *fakeRepo, prompter *fakePrompter, opts ...func(*Settings)) (*Engine, *fakeTool) {
	settings := DefaultSettings()
	for _, o := range opts {
		o(&settings)
	}
	tool := newFakeTool(repo)
	if prompter == nil {
		prompter = &fakePrompter{}
	}
	return New(repo, tool, prompter, settings), tool
}

// local returns options that neither fetch nor push.
func local() CommonOptions {
	return CommonOptions{}
}
