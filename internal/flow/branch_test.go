package flow

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/git"
)

// gitRepoWithBranches creates a real repository holding one commit and the
// given branches.
func gitRepoWithBranches(t *testing.T, branches ...string) *git.CLIRunner {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.CommandContext(context.Background(), "git", append([]string{"-C", dir}, args...)...) // #nosec G204
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	}
	run("init", "--initial-branch=master")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.0.0\n"), 0o600))
	run("add", "-A")
	run("commit", "-m", "initial")
	for _, b := range branches {
		run("branch", b)
	}

	runner, err := git.NewRunner(context.Background(), dir)
	require.NoError(t, err)
	return runner
}

func TestSelectBranch_NestedNames(t *testing.T) {
	ctx := context.Background()

	t.Run("support hotfix is found", func(t *testing.T) {
		repo := gitRepoWithBranches(t, "support/1.0", "hotfix/support/1.0/1.0.4")
		e := New(repo, nil, nil, DefaultSettings())

		branch, err := e.selectBranch(ctx, CommonOptions{}, "hotfix/", "", "")
		require.NoError(t, err)
		assert.Equal(t, "hotfix/support/1.0/1.0.4", branch)
	})

	t.Run("support and production hotfix are ambiguous", func(t *testing.T) {
		repo := gitRepoWithBranches(t, "support/1.0", "hotfix/support/1.0/1.0.4", "hotfix/1.1.1")
		e := New(repo, nil, nil, DefaultSettings())

		_, err := e.selectBranch(ctx, CommonOptions{}, "hotfix/", "", "")
		require.ErrorIs(t, err, gferrors.ErrAmbiguousBranch)
	})

	t.Run("feature name with a slash", func(t *testing.T) {
		repo := gitRepoWithBranches(t, "develop", "feature/team/login")
		e := New(repo, nil, nil, DefaultSettings())

		branches, err := e.listBranches(ctx, "feature/")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature/team/login"}, branches)
	})
}
