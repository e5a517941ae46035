package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/plato/internal/core/domain"
)

func TestSteeringSession_InitialState(t *testing.T) {
	s := NewSteeringSession("abc")

	assert.Equal(t, "abc", s.ID())
	assert.Equal(t, domain.StateRunning, s.State())
	assert.False(t, s.ShutdownRequested())
	assert.False(t, s.ConsumeRender())
	assert.NotNil(t, s.Completion())
}

func TestSteeringSession_RenderFlag(t *testing.T) {
	s := NewSteeringSession("x")

	assert.True(t, s.RequestRender())
	// Raising an already raised flag does not count again.
	assert.False(t, s.RequestRender())
	assert.Equal(t, 1, s.RenderRequests())

	assert.True(t, s.ConsumeRender())
	assert.False(t, s.ConsumeRender())

	assert.True(t, s.RequestRender())
	assert.Equal(t, 2, s.RenderRequests())
}

func TestSteeringSession_Shutdown(t *testing.T) {
	s := NewSteeringSession("x")

	s.RequestShutdown()
	assert.True(t, s.ShutdownRequested())
	assert.Equal(t, domain.StateShutdownRequested, s.State())

	s.markWorkerExited()
	s.RequestShutdown()
	assert.Equal(t, domain.StateWorkerExited, s.State())
	assert.True(t, s.ShutdownRequested())
}

func TestSteeringSession_ConcurrentRender(t *testing.T) {
	s := NewSteeringSession("x")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.RequestRender() }()
		go func() { defer wg.Done(); s.ConsumeRender() }()
	}
	wg.Wait()

	s.ConsumeRender()
	assert.False(t, s.ConsumeRender())
}
