package cli

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/flock"
)

// gitOut runs git in dir and returns its trimmed output.
func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", append([]string{"-C", dir}, args...)...) // #nosec G204
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

// createFlowRepo creates a repository with a develop branch at 1.0-SNAPSHOT
// that uses the versionfile build tool.
func createFlowRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	gitOut(t, dir, "init", "--initial-branch=master")
	gitOut(t, dir, "config", "user.email", "test@example.com")
	gitOut(t, dir, "config", "user.name", "Test User")
	gitOut(t, dir, "config", "commit.gpgsign", "false")
	gitOut(t, dir, "config", "tag.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultVersionFileName), []byte("1.0-SNAPSHOT\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ProjectConfigName), []byte("build:\n  tool: versionfile\n"), 0o600))
	gitOut(t, dir, "add", "-A")
	gitOut(t, dir, "commit", "-m", "initial")
	gitOut(t, dir, "checkout", "-b", "develop")
	return dir
}

// runGitflow executes the root command with args against dir.
func runGitflow(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(CloseLogFile)

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"-C", dir, "--batch"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func readVersion(t *testing.T, dir, ref string) string {
	t.Helper()
	return gitOut(t, dir, "show", ref+":"+constants.DefaultVersionFileName)
}

func TestCommands_FeatureRoundTrip(t *testing.T) {
	dir := createFlowRepo(t)

	out, err := runGitflow(t, dir, "feature-start", "x", "--fetch=false", "--push=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "feature/x")
	assert.Equal(t, "feature/x", gitOut(t, dir, "rev-parse", "--abbrev-ref", "HEAD"))
	assert.Equal(t, "1.0-x-SNAPSHOT", readVersion(t, dir, "feature/x"))

	out, err = runGitflow(t, dir, "feature-finish", "x", "--fetch=false", "--push=false")
	require.NoError(t, err, out)
	assert.Equal(t, "develop", gitOut(t, dir, "rev-parse", "--abbrev-ref", "HEAD"))
	assert.Equal(t, "1.0-SNAPSHOT", readVersion(t, dir, "develop"))
	assert.Empty(t, gitOut(t, dir, "branch", "--list", "feature/x"))
}

func TestCommands_ReleaseRoundTrip(t *testing.T) {
	dir := createFlowRepo(t)

	out, err := runGitflow(t, dir, "release-start", "--fetch=false", "--push=false")
	require.NoError(t, err, out)
	assert.Equal(t, "1.0", readVersion(t, dir, "release/1.0"))

	out, err = runGitflow(t, dir, "release-finish", "--fetch=false", "--push=false")
	require.NoError(t, err, out)
	assert.Equal(t, "1.0", readVersion(t, dir, "master"))
	assert.Equal(t, "1.0", readVersion(t, dir, "1.0"))
	assert.Equal(t, "1.1-SNAPSHOT", readVersion(t, dir, "develop"))
	assert.Empty(t, gitOut(t, dir, "branch", "--list", "release/1.0"))
}

func TestCommands_DirtyTreeFails(t *testing.T) {
	dir := createFlowRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultVersionFileName), []byte("1.1-SNAPSHOT\n"), 0o600))

	_, err := runGitflow(t, dir, "feature-start", "x", "--fetch=false", "--push=false")
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
	assert.Empty(t, gitOut(t, dir, "branch", "--list", "feature/x"))
}

func TestCommands_BatchFeatureStartNeedsName(t *testing.T) {
	dir := createFlowRepo(t)

	_, err := runGitflow(t, dir, "feature-start", "--fetch=false", "--push=false")
	require.Error(t, err)
	assert.Empty(t, gitOut(t, dir, "branch", "--list", "feature/*"))
}

func TestCommands_BugfixFinishMessage(t *testing.T) {
	dir := createFlowRepo(t)

	_, err := runGitflow(t, dir, "bugfix-start", "crash", "--fetch=false", "--push=false")
	require.NoError(t, err)

	out, err := runGitflow(t, dir, "bugfix-finish", "--fetch=false", "--push=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Bugfix branch merged into develop")
	assert.Equal(t, "1.0-SNAPSHOT", readVersion(t, dir, "develop"))
}

func TestCommands_RunLockHeld(t *testing.T) {
	dir := createFlowRepo(t)

	lock, err := flock.TryLock(filepath.Join(dir, ".git", constants.RunLockFileName))
	require.NoError(t, err)
	defer func() { _ = lock.Release() }()

	_, err = runGitflow(t, dir, "feature-start", "x", "--fetch=false", "--push=false")
	require.ErrorIs(t, err, gferrors.ErrRepositoryLocked)
	assert.Empty(t, gitOut(t, dir, "branch", "--list", "feature/x"))
}
