package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/flow"
	"github.com/gitflow-tools/gitflow/internal/git"
	"github.com/gitflow-tools/gitflow/internal/version"
)

func TestCommonFlags_OverrideOnlyWhenSet(t *testing.T) {
	t.Parallel()

	cf := &commonFlags{}
	cmd := &cobra.Command{Use: "x"}
	addCommonFlags(cmd, cf)
	require.NoError(t, cmd.ParseFlags([]string{"--push=false", "--skip-test", "--push-option", "ci.skip"}))

	opts := flow.CommonOptions{FetchRemote: true, PushRemote: true, Install: true}
	cf.apply(cmd, &opts)

	assert.Equal(t, flow.CommonOptions{
		FetchRemote: true,
		PushRemote:  false,
		SkipTest:    true,
		Install:     true,
		PushOptions: []string{"ci.skip"},
	}, opts)
}

func TestTopicFinishFlags_Options(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		tf := &topicFinishFlags{digit: version.NoIndex}
		opts, err := tf.options(flow.CommonOptions{}, "x")
		require.NoError(t, err)
		assert.Equal(t, "x", opts.Name)
		assert.Equal(t, version.NoIndex, opts.VersionDigitToIncrement)
		assert.Equal(t, git.MergeMode(""), opts.MergeMode)
	})

	t.Run("squash merge mode implies squash", func(t *testing.T) {
		tf := &topicFinishFlags{mergeMode: "squash"}
		opts, err := tf.options(flow.CommonOptions{}, "")
		require.NoError(t, err)
		assert.True(t, opts.Squash)
	})

	t.Run("squash conflicts with another merge mode", func(t *testing.T) {
		tf := &topicFinishFlags{squash: true, mergeMode: "ff-only"}
		_, err := tf.options(flow.CommonOptions{}, "")
		require.ErrorIs(t, err, gferrors.ErrConflictingFlags)
		assert.Equal(t, ExitInvalidInput, ExitCode(err))
	})

	t.Run("unknown merge mode", func(t *testing.T) {
		tf := &topicFinishFlags{mergeMode: "octopus"}
		_, err := tf.options(flow.CommonOptions{}, "")
		require.ErrorIs(t, err, gferrors.ErrInvalidMergeMode)
	})
}

func TestParseMergeMode(t *testing.T) {
	t.Parallel()

	mode, err := parseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, git.MergeMode(""), mode)

	mode, err = parseMergeMode("No-FF")
	require.NoError(t, err)
	assert.Equal(t, git.MergeNoFF, mode)
}
