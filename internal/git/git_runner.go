// Package git provides the repository gateway used by the git-flow engine.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// CLIRunner implements Repository using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
}

// compile-time interface check
var _ Repository = (*CLIRunner)(nil)

// NewRunner creates a new CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir}

	// Verify this is a git repository
	_, err := r.runGitCommand(ctx, "rev-parse", "--git-dir")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", gferrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// WorkDir returns the repository working directory.
func (r *CLIRunner) WorkDir() string {
	return r.workDir
}

// FindRefs lists matching refs using git for-each-ref.
func (r *CLIRunner) FindRefs(ctx context.Context, refPrefix, pattern string, opts FindRefsOptions) ([]string, error) {
	args := []string{"for-each-ref", "--format=%(refname)"}

	// for-each-ref treats the last --sort as the primary key
	for _, key := range slices.Backward(opts.Sort) {
		args = append(args, "--sort="+key)
	}
	if opts.Limit > 0 {
		args = append(args, "--count="+strconv.Itoa(opts.Limit))
	}
	if pattern == "" {
		args = append(args, strings.TrimSuffix(refPrefix, "/"))
	} else {
		args = append(args, refPrefix+pattern)
	}

	output, err := r.runGitCommand(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs %s%s: %w", refPrefix, pattern, err)
	}

	var refs []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		refs = append(refs, strings.TrimPrefix(line, refPrefix))
	}
	return refs, nil
}

// RefExists reports whether the fully qualified ref exists.
func (r *CLIRunner) RefExists(ctx context.Context, ref string) (bool, error) {
	_, err := r.runGitCommand(ctx, "show-ref", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	// Exit code 1 means ref not found, which is expected
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check ref %s: %w", ref, err)
}

// HasUncommittedChanges reports changes to tracked files. Untracked files do
// not count.
func (r *CLIRunner) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := r.runGitCommand(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output != "", nil
}

// RevListLeftRightCount runs git rev-list --left-right --count a...b.
func (r *CLIRunner) RevListLeftRightCount(ctx context.Context, a, b string) (int, int, error) {
	output, err := r.runGitCommand(ctx, "rev-list", "--left-right", "--count", a+"..."+b)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compare %s with %s: %w", a, b, err)
	}
	return parseLeftRight(output)
}

// Checkout switches to an existing branch or ref.
func (r *CLIRunner) Checkout(ctx context.Context, ref string) error {
	if ref == "" {
		return fmt.Errorf("checkout target cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	if _, err := r.runGitCommand(ctx, "checkout", ref); err != nil {
		return fmt.Errorf("failed to checkout '%s': %w", ref, err)
	}
	return nil
}

// CheckoutNew creates branch from fromRef and checks it out.
// If fromRef is empty, creates from current HEAD.
func (r *CLIRunner) CheckoutNew(ctx context.Context, branch, fromRef string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	// Check if branch already exists
	exists, err := r.RefExists(ctx, LocalRef(branch))
	if err != nil {
		return fmt.Errorf("checking branch existence: %w", err)
	}
	if exists {
		return fmt.Errorf("branch '%s' already exists: %w", branch, gferrors.ErrBranchExists)
	}

	args := []string{"checkout", "-b", branch}
	if fromRef != "" {
		args = append(args, fromRef)
	}

	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to create branch '%s': %w", branch, err)
	}
	return nil
}

// DeleteBranch deletes a local branch with -d, or -D when force is set.
func (r *CLIRunner) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}

	if _, err := r.runGitCommand(ctx, "branch", flag, name); err != nil {
		return fmt.Errorf("failed to delete branch '%s': %w", name, err)
	}
	return nil
}

// Merge merges ref into the current branch.
func (r *CLIRunner) Merge(ctx context.Context, ref string, opts MergeOptions) error {
	if ref == "" {
		return fmt.Errorf("merge source cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	args := mergeArgs(ref, opts)
	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to %s '%s': %w", args[0], ref, err)
	}
	return nil
}

// mergeArgs builds the git arguments for a merge in the given mode.
func mergeArgs(ref string, opts MergeOptions) []string {
	var args []string
	withMessage := false
	switch opts.Mode {
	case MergeRebase:
		args = []string{"rebase"}
	case MergeFFOnly:
		args = []string{"merge", "--ff-only"}
	case MergeSquash:
		args = []string{"merge", "--squash"}
	case MergeNoFF:
		args = []string{"merge", "--no-ff"}
		withMessage = true
	default:
		args = []string{"merge"}
		withMessage = true
	}

	if opts.Sign && opts.Mode != MergeSquash {
		args = append(args, "-S")
	}
	if withMessage && opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	return append(args, ref)
}

// Tag creates an annotated tag, or a signed tag when signed is set.
func (r *CLIRunner) Tag(ctx context.Context, name, message string, signed bool) error {
	if name == "" {
		return fmt.Errorf("tag name cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	flag := "-a"
	if signed {
		flag = "-s"
	}

	if _, err := r.runGitCommand(ctx, "tag", flag, name, "-m", message); err != nil {
		return fmt.Errorf("failed to tag '%s': %w", name, err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string, opts CommitOptions) error {
	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	args := []string{"commit"}
	if opts.All {
		args = append(args, "-a")
	}
	if opts.Sign {
		args = append(args, "-S")
	}
	args = append(args, "-m", message)

	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes ref to remote.
func (r *CLIRunner) Push(ctx context.Context, remote, ref string, opts PushOptions) error {
	args := []string{"push", "--quiet"}
	if opts.FollowTags {
		args = append(args, "--follow-tags")
	}
	for _, o := range opts.Options {
		if o = strings.TrimSpace(o); o != "" {
			args = append(args, "--push-option="+o)
		}
	}
	args = append(args, remote, ref)

	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to push '%s' to %s: %w", ref, remote, err)
	}
	return nil
}

// PushDelete deletes ref on remote.
func (r *CLIRunner) PushDelete(ctx context.Context, remote, ref string) error {
	if _, err := r.runGitCommand(ctx, "push", "--quiet", "--delete", remote, ref); err != nil {
		return fmt.Errorf("failed to delete '%s' on %s: %w", ref, remote, err)
	}
	return nil
}

// Fetch downloads objects and refs from a remote repository.
func (r *CLIRunner) Fetch(ctx context.Context, remote string, refspecs ...string) error {
	if remote == "" {
		remote = "origin"
	}

	args := append([]string{"fetch", "--quiet", remote}, refspecs...)
	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// SetConfig writes a repository-local config value.
func (r *CLIRunner) SetConfig(ctx context.Context, key, value string) error {
	if _, err := r.runGitCommand(ctx, "config", key, value); err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// CurrentBranch returns the name of the currently checked out branch.
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.runGitCommand(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		// symbolic-ref exits 1 when HEAD is detached
		if exitCode(err) == 1 {
			return "", ErrDetachedHead
		}
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

// ValidBranchName checks name with git check-ref-format --allow-onelevel.
func (r *CLIRunner) ValidBranchName(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "-") {
		return false, nil
	}

	_, err := r.runGitCommand(ctx, "check-ref-format", "--allow-onelevel", LocalRef(name))
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check branch name: %w", err)
}

// runGitCommand executes a git command and returns its output.
// This is a convenience wrapper around RunCommand that uses the runner's workDir.
func (r *CLIRunner) runGitCommand(ctx context.Context, args ...string) (string, error) {
	return RunCommand(ctx, r.workDir, args...)
}

// parseLeftRight parses the "<left>\t<right>" output of rev-list --left-right --count.
func parseLeftRight(output string) (int, int, error) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, gferrors.ErrExternalTool)
	}

	left, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, gferrors.ErrExternalTool)
	}
	right, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, gferrors.ErrExternalTool)
	}
	return left, right, nil
}
