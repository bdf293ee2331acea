package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ContextLiveUntilSignal(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())
}

func TestHandler_SignalCancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGTERM)

	select {
	case <-h.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("interrupted channel not closed")
	}
	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, syscall.SIGTERM, h.Signal())

	// Only the first signal is recorded.
	assert.NotPanics(t, func() { h.handleSignal(syscall.SIGINT) })
	assert.Equal(t, syscall.SIGTERM, h.Signal())
}

func TestHandler_StopCancelsWithoutInterrupt(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()
	h.Stop()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.False(t, h.WasInterrupted())
	assert.Nil(t, h.Signal())
}

func TestHandler_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()
	<-h.Context().Done()
	assert.False(t, h.WasInterrupted())
}
