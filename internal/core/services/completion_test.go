package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
)

func TestCompletion_SignalThenWait(t *testing.T) {
	c := NewCompletion()
	assert.False(t, c.Signalled())

	require.NoError(t, c.Signal())
	assert.True(t, c.Signalled())
	require.NoError(t, c.Wait(context.Background()))

	select {
	case <-c.Done():
	default:
		t.Fatal("Done not closed after Signal")
	}
}

func TestCompletion_WaitBlocksUntilSignal(t *testing.T) {
	c := NewCompletion()
	result := make(chan error, 1)
	go func() { result <- c.Wait(context.Background()) }()

	select {
	case <-result:
		t.Fatal("Wait returned before Signal")
	case <-time.After(10 * time.Millisecond):
	}

	require.NoError(t, c.Signal())
	require.NoError(t, <-result)
}

func TestCompletion_DoubleSignal(t *testing.T) {
	c := NewCompletion()
	require.NoError(t, c.Signal())
	assert.ErrorIs(t, c.Signal(), domain.ErrAlreadySignalled)
}

func TestCompletion_DoubleWait(t *testing.T) {
	c := NewCompletion()
	require.NoError(t, c.Signal())
	require.NoError(t, c.Wait(context.Background()))
	assert.ErrorIs(t, c.Wait(context.Background()), domain.ErrAlreadyAwaited)
}

func TestCompletion_WaitCancelled(t *testing.T) {
	c := NewCompletion()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Wait(ctx), context.Canceled)
}
