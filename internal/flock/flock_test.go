package flock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

func TestTryLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "gitflow.lock")

	lock, err := TryLock(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	_, err = TryLock(path)
	require.ErrorIs(t, err, gferrors.ErrRepositoryLocked)
	require.ErrorIs(t, err, gferrors.ErrPrecondition)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := TryLock(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestRelease_Nil(t *testing.T) {
	t.Parallel()

	var lock *Lock
	assert.NoError(t, lock.Release())
}
