package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gitflow-tools/gitflow/internal/config"
	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ProjectConfigName), []byte(content), 0o600))
}

func TestConfigShow_YAML(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	dir := t.TempDir()
	writeProjectConfig(t, dir, "branches:\n  development: dev\nversion:\n  tag_prefix: v\n")

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, &GlobalFlags{Dir: dir}, &ConfigShowFlags{OutputFormat: formatYAML})
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &cfg))
	assert.Equal(t, "dev", cfg.Branches.Development)
	assert.Equal(t, "master", cfg.Branches.Production)
	assert.Equal(t, "v", cfg.Version.TagPrefix)
	assert.Equal(t, config.DefaultReleaseStartMessage, cfg.Messages.ReleaseStart)
}

func TestConfigShow_JSON(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	dir := t.TempDir()

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, &GlobalFlags{Dir: dir}, &ConfigShowFlags{OutputFormat: formatJSON})
	require.NoError(t, err)
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestConfigShow_Errors(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	dir := t.TempDir()

	err := runConfigShow(context.Background(), &bytes.Buffer{}, &GlobalFlags{Dir: dir}, &ConfigShowFlags{OutputFormat: "toml"})
	require.ErrorIs(t, err, gferrors.ErrConfiguration)

	writeProjectConfig(t, dir, "build:\n  tool: gradle\n")
	err = runConfigShow(context.Background(), &bytes.Buffer{}, &GlobalFlags{Dir: dir}, &ConfigShowFlags{OutputFormat: formatYAML})
	require.ErrorIs(t, err, gferrors.ErrUnknownBuildTool)
	assert.Equal(t, ExitInvalidInput, ExitCode(err))
}

func TestConfigShow_RedactsCredentials(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	dir := t.TempDir()
	writeProjectConfig(t, dir, "build:\n  arg_line: -Dpassword=hunter22secret\n")

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, &GlobalFlags{Dir: dir}, &ConfigShowFlags{OutputFormat: formatYAML})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "hunter22secret")
}
