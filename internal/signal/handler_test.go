package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_SignalCancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())
	assert.Nil(t, h.Signal())

	h.handle(syscall.SIGINT)

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, syscall.SIGINT, h.Signal())
}

func TestHandler_FirstSignalWins(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handle(syscall.SIGTERM)
	h.handle(syscall.SIGINT)

	assert.Equal(t, syscall.SIGTERM, h.Signal())
}

func TestHandler_RepeatedSignalsDoNotBlock(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.sigChan <- syscall.SIGINT
	select {
	case <-h.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("interrupt not handled")
	}
	h.sigChan <- syscall.SIGINT

	assert.Equal(t, syscall.SIGINT, h.Signal())
}

func TestHandler_Stop(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()
	h.Stop()

	require.Error(t, h.Context().Err())
	assert.False(t, h.WasInterrupted(), "stopping is not an interrupt")
}

func TestHandler_ParentCanceled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()
	require.Error(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())
}
