package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitflow-tools/gitflow/internal/build"
	"github.com/gitflow-tools/gitflow/internal/config"
	"github.com/gitflow-tools/gitflow/internal/flow"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/prompt"
	"github.com/gitflow-tools/gitflow/internal/tui"
)

// ExecutionContext holds what a flow command needs: the repository, its
// configuration and an engine wired to both.
type ExecutionContext struct {
	// WorkDir is the repository directory commands run in.
	WorkDir string

	// Config is the merged configuration.
	Config *config.Config

	// Engine runs the workflows.
	Engine *flow.Engine

	// Common are the configured per-run switches before flag overrides.
	Common flow.CommonOptions
}

// engineFactory builds the engine of an ExecutionContext. Tests replace it
// to run commands against fakes.
//
//nolint:gochecknoglobals // test seam
var engineFactory = newEngine

// ResolveExecutionContext opens the repository in flags.Dir (or the working
// directory), loads its configuration and wires the engine.
func ResolveExecutionContext(ctx context.Context, flags *GlobalFlags) (*ExecutionContext, error) {
	dir := flags.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", flags.Dir, err)
	}

	cfg, err := config.Load(ctx, config.LoadOptions{ProjectDir: dir, ConfigFile: flags.ConfigFile})
	if err != nil {
		return nil, err
	}

	common := flow.CommonOptionsFrom(cfg)
	common.Interactive = !flags.Batch && tui.IsInteractive()

	engine, err := engineFactory(ctx, dir, cfg, common.Interactive)
	if err != nil {
		return nil, err
	}

	return &ExecutionContext{
		WorkDir: dir,
		Config:  cfg,
		Engine:  engine,
		Common:  common,
	}, nil
}

// newEngine wires the git CLI, the configured build tool and the prompter.
func newEngine(ctx context.Context, dir string, cfg *config.Config, interactive bool) (*flow.Engine, error) {
	repo, err := git.NewRunner(ctx, dir)
	if err != nil {
		return nil, err
	}

	tool, err := build.New(cfg.Build.Tool, build.Options{
		WorkDir:        dir,
		Executable:     cfg.Build.Executable,
		ArgLine:        cfg.Build.ArgLine,
		VersionFile:    cfg.Build.VersionFile,
		TestCommand:    cfg.Build.TestCommand,
		InstallCommand: cfg.Build.InstallCommand,
	})
	if err != nil {
		return nil, err
	}

	settings, err := flow.NewSettings(cfg)
	if err != nil {
		return nil, err
	}

	return flow.New(repo, tool, prompt.New(interactive), settings, flow.WithLogger(GetLogger())), nil
}
