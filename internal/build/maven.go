package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Maven goals used by the gateway.
const (
	mavenSetGoal         = "versions:set"
	mavenSetPropertyGoal = "versions:set-property"
	mavenEvaluateGoal    = "help:evaluate"
)

// Maven drives Apache Maven through the mvn binary.
type Maven struct {
	workDir    string
	executable string
	argLine    []string
	runner     CommandRunner
}

// NewMaven creates a Maven tool. The argument line is split once up front.
func NewMaven(opts Options) (*Maven, error) {
	argLine, err := SplitArgLine(opts.ArgLine)
	if err != nil {
		return nil, err
	}

	executable := opts.Executable
	if executable == "" {
		executable = constants.DefaultMavenExecutable
	}
	runner := opts.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}

	return &Maven{
		workDir:    opts.WorkDir,
		executable: executable,
		argLine:    argLine,
		runner:     runner,
	}, nil
}

// Name implements Tool.
func (m *Maven) Name() string {
	return constants.BuildToolMaven
}

// CurrentVersion evaluates project.version.
func (m *Maven) CurrentVersion(ctx context.Context) (string, error) {
	out, err := m.mvn(ctx, mavenEvaluateGoal, "-Dexpression=project.version", "-q", "-DforceStdout")
	if err != nil {
		return "", fmt.Errorf("read project version: %w", err)
	}

	version := lastLine(out)
	if version == "" {
		return "", fmt.Errorf("maven returned no project version: %w", gferrors.ErrBlankVersion)
	}
	return version, nil
}

// SetVersion runs versions:set. forceUpdate matches every module version (-DoldVersion=*).
func (m *Maven) SetVersion(ctx context.Context, version string, forceUpdate bool) error {
	args := []string{mavenSetGoal}
	if forceUpdate {
		args = append(args, "-DgroupId=", "-DartifactId=*", "-DoldVersion=*")
	}
	args = append(args, "-DnewVersion="+version, "-DgenerateBackupPoms=false")

	zerolog.Ctx(ctx).Info().Str("version", version).Msg("setting project version")
	if _, err := m.mvn(ctx, args...); err != nil {
		return fmt.Errorf("set version %s: %w", version, err)
	}
	return nil
}

// SetProperty runs versions:set-property.
func (m *Maven) SetProperty(ctx context.Context, name, value string) error {
	if name == "" {
		return fmt.Errorf("property name cannot be empty: %w", gferrors.ErrEmptyValue)
	}

	zerolog.Ctx(ctx).Info().Str("property", name).Str("value", value).Msg("setting project property")
	_, err := m.mvn(ctx, mavenSetPropertyGoal, "-Dproperty="+name, "-DnewVersion="+value, "-DgenerateBackupPoms=false")
	if err != nil {
		return fmt.Errorf("set property %s: %w", name, err)
	}
	return nil
}

// RunGoals runs custom goals such as "clean verify".
func (m *Maven) RunGoals(ctx context.Context, goals string) error {
	args, err := SplitArgLine(goals)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	zerolog.Ctx(ctx).Info().Str("goals", goals).Msg("running maven goals")
	if _, err := m.mvn(ctx, args...); err != nil {
		return fmt.Errorf("run goals %q: %w", goals, err)
	}
	return nil
}

// Test runs clean test.
func (m *Maven) Test(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Msg("cleaning and testing the project")
	if _, err := m.mvn(ctx, "clean", "test"); err != nil {
		return fmt.Errorf("test project: %w", err)
	}
	return nil
}

// Install runs clean install.
func (m *Maven) Install(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Msg("cleaning and installing the project")
	if _, err := m.mvn(ctx, "clean", "install"); err != nil {
		return fmt.Errorf("install project: %w", err)
	}
	return nil
}

// mvn runs the executable in batch mode with args followed by the argument line.
func (m *Maven) mvn(ctx context.Context, args ...string) (string, error) {
	argv := make([]string, 0, len(args)+len(m.argLine)+2)
	argv = append(argv, m.executable, "-B")
	argv = append(argv, args...)
	argv = append(argv, m.argLine...)
	return execute(ctx, m.runner, m.workDir, argv)
}

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ Tool = (*Maven)(nil)
