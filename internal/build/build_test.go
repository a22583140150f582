package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// recordingRunner records every command and replays canned results.
type recordingRunner struct {
	calls    [][]string
	stdout   string
	stderr   string
	exitCode int
	err      error
}

func (r *recordingRunner) Run(_ context.Context, _ string, argv []string) (string, string, int, error) {
	r.calls = append(r.calls, append([]string(nil), argv...))
	return r.stdout, r.stderr, r.exitCode, r.err
}

func (r *recordingRunner) lastCall() []string {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func TestValidateArgLine(t *testing.T) {
	tests := []struct {
		argLine string
		wantErr bool
	}{
		{"", false},
		{"-DskipITs -Pci", false},
		{`-Dmsg="hello world"`, false},
		{"-DskipTests && rm -rf /", true},
		{"-X | tee log", true},
		{"-X; echo", true},
	}

	for _, tc := range tests {
		t.Run(tc.argLine, func(t *testing.T) {
			err := ValidateArgLine(tc.argLine)
			if tc.wantErr {
				require.ErrorIs(t, err, gferrors.ErrInvalidArgLine)
				require.ErrorIs(t, err, gferrors.ErrConfiguration)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSplitArgLine(t *testing.T) {
	args, err := SplitArgLine(`-DskipITs -Dmsg="hello world" -P 'a b'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-DskipITs", "-Dmsg=hello world", "-P", "a b"}, args)

	args, err = SplitArgLine("   ")
	require.NoError(t, err)
	assert.Nil(t, args)

	_, err = SplitArgLine("-X; whoami")
	require.ErrorIs(t, err, gferrors.ErrInvalidArgLine)
}

func TestNew(t *testing.T) {
	tool, err := New("maven", Options{})
	require.NoError(t, err)
	assert.Equal(t, "maven", tool.Name())

	tool, err = New("", Options{})
	require.NoError(t, err)
	assert.Equal(t, "maven", tool.Name(), "maven is the default")

	tool, err = New("VersionFile", Options{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "versionfile", tool.Name())

	_, err = New("gradle", Options{})
	require.ErrorIs(t, err, gferrors.ErrUnknownBuildTool)

	_, err = New("maven", Options{ArgLine: "-X & evil"})
	require.ErrorIs(t, err, gferrors.ErrInvalidArgLine)
}

func newTestMaven(t *testing.T, runner *recordingRunner, argLine string) *Maven {
	t.Helper()
	m, err := NewMaven(Options{WorkDir: "/project", ArgLine: argLine, Runner: runner})
	require.NoError(t, err)
	return m
}

func TestMaven_Commands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(m *Maven) error
		want []string
	}{
		{
			name: "set version",
			run:  func(m *Maven) error { return m.SetVersion(ctx, "1.2.0", false) },
			want: []string{"mvn", "-B", "versions:set", "-DnewVersion=1.2.0", "-DgenerateBackupPoms=false", "-Pci"},
		},
		{
			name: "set version forced",
			run:  func(m *Maven) error { return m.SetVersion(ctx, "1.2.0", true) },
			want: []string{
				"mvn", "-B", "versions:set", "-DgroupId=", "-DartifactId=*", "-DoldVersion=*",
				"-DnewVersion=1.2.0", "-DgenerateBackupPoms=false", "-Pci",
			},
		},
		{
			name: "set property",
			run:  func(m *Maven) error { return m.SetProperty(ctx, "revision", "1.2.0") },
			want: []string{
				"mvn", "-B", "versions:set-property", "-Dproperty=revision",
				"-DnewVersion=1.2.0", "-DgenerateBackupPoms=false", "-Pci",
			},
		},
		{
			name: "test",
			run:  func(m *Maven) error { return m.Test(ctx) },
			want: []string{"mvn", "-B", "clean", "test", "-Pci"},
		},
		{
			name: "install",
			run:  func(m *Maven) error { return m.Install(ctx) },
			want: []string{"mvn", "-B", "clean", "install", "-Pci"},
		},
		{
			name: "goals",
			run:  func(m *Maven) error { return m.RunGoals(ctx, "clean verify") },
			want: []string{"mvn", "-B", "clean", "verify", "-Pci"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := &recordingRunner{}
			m := newTestMaven(t, runner, "-Pci")

			require.NoError(t, tc.run(m))
			assert.Equal(t, tc.want, runner.lastCall())
		})
	}
}

func TestMaven_EmptyGoalsRunNothing(t *testing.T) {
	runner := &recordingRunner{}
	m := newTestMaven(t, runner, "")

	require.NoError(t, m.RunGoals(context.Background(), "  "))
	assert.Empty(t, runner.calls)
}

func TestMaven_CurrentVersion(t *testing.T) {
	runner := &recordingRunner{stdout: "Picked up JAVA_TOOL_OPTIONS: x\n1.2.0-SNAPSHOT"}
	m := newTestMaven(t, runner, "")

	v, err := m.CurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.0-SNAPSHOT", v)
	assert.Equal(t, []string{"mvn", "-B", "help:evaluate", "-Dexpression=project.version", "-q", "-DforceStdout"}, runner.lastCall())

	runner.stdout = "\n"
	_, err = m.CurrentVersion(context.Background())
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)
}

func TestMaven_FailureCarriesOutput(t *testing.T) {
	runner := &recordingRunner{
		stdout:   "[ERROR] BUILD FAILURE",
		exitCode: 1,
		err:      errors.New("exit status 1"),
	}
	m := newTestMaven(t, runner, "")

	err := m.Test(context.Background())
	require.ErrorIs(t, err, gferrors.ErrExternalTool)

	var toolErr *gferrors.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "mvn", toolErr.Tool)
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Equal(t, "[ERROR] BUILD FAILURE", toolErr.Output, "stdout is used when stderr is empty")
}

func TestVersionFile_Plain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.2.0-SNAPSHOT\n"), 0o600))

	vf, err := NewVersionFile(Options{WorkDir: dir})
	require.NoError(t, err)
	ctx := context.Background()

	v, err := vf.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0-SNAPSHOT", v)

	require.NoError(t, vf.SetVersion(ctx, "1.2.0", false))
	data, err := os.ReadFile(filepath.Join(dir, "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0\n", string(data))

	err = vf.SetProperty(ctx, "revision", "1.2.0")
	require.ErrorIs(t, err, gferrors.ErrUnsupported)
}

func TestVersionFile_Missing(t *testing.T) {
	vf, err := NewVersionFile(Options{WorkDir: t.TempDir()})
	require.NoError(t, err)

	_, err = vf.CurrentVersion(context.Background())
	require.ErrorIs(t, err, gferrors.ErrConfiguration)
}

func TestVersionFile_Blank(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("\n\n"), 0o600))

	vf, err := NewVersionFile(Options{WorkDir: dir})
	require.NoError(t, err)

	_, err = vf.CurrentVersion(context.Background())
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)
}

func TestVersionFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.yaml")
	content := "# project metadata\nname: demo\nversion: 1.0-SNAPSHOT # current\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	vf, err := NewVersionFile(Options{WorkDir: dir, VersionFile: "version.yaml"})
	require.NoError(t, err)
	ctx := context.Background()

	v, err := vf.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0-SNAPSHOT", v)

	require.NoError(t, vf.SetVersion(ctx, "1.0", false))
	require.NoError(t, vf.SetProperty(ctx, "revision", "1.0"))

	v, err = vf.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# project metadata")
	assert.Contains(t, text, "name: demo")
	assert.Contains(t, text, "# current")
	assert.Contains(t, text, "properties:")
	assert.Contains(t, text, "revision:")
}

func TestVersionFile_YAMLCreatesFile(t *testing.T) {
	dir := t.TempDir()
	vf, err := NewVersionFile(Options{WorkDir: dir, VersionFile: "release.yml"})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, vf.SetVersion(ctx, "2.0.0", false))
	v, err := vf.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v)
}

func TestVersionFile_YAMLNotAMapping(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v.yaml"), []byte("- a\n- b\n"), 0o600))

	vf, err := NewVersionFile(Options{WorkDir: dir, VersionFile: "v.yaml"})
	require.NoError(t, err)

	_, err = vf.CurrentVersion(context.Background())
	require.ErrorIs(t, err, gferrors.ErrConfiguration)
}

func TestVersionFile_Commands(t *testing.T) {
	runner := &recordingRunner{}
	vf, err := NewVersionFile(Options{
		WorkDir:        t.TempDir(),
		ArgLine:        "-v",
		TestCommand:    "make test",
		InstallCommand: "make install",
		Runner:         runner,
	})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, vf.Test(ctx))
	assert.Equal(t, []string{"sh", "-c", "make test -v"}, runner.lastCall())

	require.NoError(t, vf.Install(ctx))
	assert.Equal(t, []string{"sh", "-c", "make install -v"}, runner.lastCall())

	require.NoError(t, vf.RunGoals(ctx, "make lint"))
	assert.Equal(t, []string{"sh", "-c", "make lint -v"}, runner.lastCall())

	require.ErrorIs(t, vf.RunGoals(ctx, "make lint; rm x"), gferrors.ErrInvalidArgLine)
	assert.Len(t, runner.calls, 3)
}

func TestVersionFile_NoCommandsConfigured(t *testing.T) {
	runner := &recordingRunner{}
	vf, err := NewVersionFile(Options{WorkDir: t.TempDir(), Runner: runner})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, vf.Test(ctx))
	require.NoError(t, vf.Install(ctx))
	require.NoError(t, vf.RunGoals(ctx, ""))
	assert.Empty(t, runner.calls)
}

func TestDefaultCommandRunner(t *testing.T) {
	runner := &DefaultCommandRunner{}
	ctx := context.Background()
	dir := t.TempDir()

	stdout, stderr, exitCode, err := runner.Run(ctx, dir, ShellCommand("echo hello; echo oops >&2"))
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", stdout)
	assert.Equal(t, "oops\n", stderr)

	_, _, exitCode, err = runner.Run(ctx, dir, ShellCommand("exit 42"))
	require.Error(t, err)
	assert.Equal(t, 42, exitCode)

	_, _, _, err = runner.Run(ctx, dir, nil)
	require.Error(t, err)
}

func TestDefaultCommandRunner_LiveOutput(t *testing.T) {
	var live strings.Builder
	runner := &DefaultCommandRunner{LiveOutput: &live}

	stdout, _, _, err := runner.Run(context.Background(), t.TempDir(), ShellCommand("echo streamed"))
	require.NoError(t, err)
	assert.Equal(t, "streamed\n", stdout)
	assert.Equal(t, "streamed\n", live.String())
}

func TestExecute_StartFailure(t *testing.T) {
	_, err := execute(context.Background(), &DefaultCommandRunner{}, t.TempDir(), []string{"/nonexistent/mvn", "clean"})

	var toolErr *gferrors.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "mvn", toolErr.Tool)
	assert.NotEmpty(t, toolErr.Output)
}
