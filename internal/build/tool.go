package build

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Tool is the build tool gateway consumed by the workflow engine.
type Tool interface {
	// Name identifies the tool in logs and messages.
	Name() string

	// CurrentVersion reads the project version.
	CurrentVersion(ctx context.Context) (string, error)

	// SetVersion writes the project version. forceUpdate also rewrites
	// modules whose version does not match the current one, where supported.
	SetVersion(ctx context.Context, version string, forceUpdate bool) error

	// SetProperty writes a named project property.
	SetProperty(ctx context.Context, name, value string) error

	// RunGoals runs a configured goal list (e.g. "clean verify").
	RunGoals(ctx context.Context, goals string) error

	// Test runs the project's tests.
	Test(ctx context.Context) error

	// Install builds and installs the project.
	Install(ctx context.Context) error
}

// Options configures a Tool.
type Options struct {
	// WorkDir is the project root.
	WorkDir string
	// Executable overrides the build tool binary (maven only).
	Executable string
	// ArgLine is appended to every build tool invocation.
	ArgLine string
	// VersionFile is the version file path relative to WorkDir (versionfile only).
	VersionFile string
	// TestCommand and InstallCommand are shell commands (versionfile only).
	TestCommand    string
	InstallCommand string
	// Runner executes commands. Defaults to DefaultCommandRunner.
	Runner CommandRunner
}

// New builds the Tool registered under kind. The argument line is validated
// before anything is returned.
func New(kind string, opts Options) (Tool, error) {
	if err := ValidateArgLine(opts.ArgLine); err != nil {
		return nil, err
	}
	if opts.Runner == nil {
		opts.Runner = &DefaultCommandRunner{}
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case constants.BuildToolMaven, "":
		return NewMaven(opts)
	case constants.BuildToolVersionFile:
		return NewVersionFile(opts)
	default:
		return nil, fmt.Errorf("%q (supported: %s, %s): %w", kind,
			constants.BuildToolMaven, constants.BuildToolVersionFile, gferrors.ErrUnknownBuildTool)
	}
}

// execute runs argv through runner and maps a failure to an ExternalToolError.
func execute(ctx context.Context, runner CommandRunner, workDir string, argv []string) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("dir", workDir).
		Strs("argv", argv).
		Msg("build command")

	stdout, stderr, exitCode, err := runner.Run(ctx, workDir, argv)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr == "" && stdout == "" {
			stderr = err.Error()
		}
		return "", gferrors.NewExternalToolError(filepath.Base(argv[0]), argv[1:], exitCode, stdout, stderr)
	}
	return stdout, nil
}
