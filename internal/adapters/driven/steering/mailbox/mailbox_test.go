package mailbox

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
)

func openMailbox(t *testing.T) *Mailbox {
	t.Helper()
	m := New()
	require.NoError(t, m.Open(context.Background(), "pvs", []domain.Parameter{
		domain.ToggleParameter(domain.ParamOrthoslice, false),
		{Name: domain.IsoValueParam(0), Kind: domain.ParameterDouble, Value: 0.5, Min: 0, Max: 1},
	}))
	return m
}

func TestMailbox_PushAndPoll(t *testing.T) {
	m := openMailbox(t)
	assert.Equal(t, "pvs", m.App())

	require.NoError(t, m.Push(domain.IsoValueParam(0), 0.25))
	require.NoError(t, m.Push(domain.ParamOrthoslice, 1.9))
	require.NoError(t, m.PushCommand(domain.CommandStop))
	assert.Equal(t, 3, m.Pending())

	res, err := m.Poll(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.PollSuccess, res.Status)
	assert.Equal(t, []domain.ParameterChange{
		{Name: domain.IsoValueParam(0), Value: 0.25},
		{Name: domain.ParamOrthoslice, Value: 1},
	}, res.Changes)
	assert.Equal(t, []domain.Command{domain.CommandStop}, res.Commands)

	res, err = m.Poll(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Commands)
	assert.Zero(t, m.Pending())
}

func TestMailbox_PushValidates(t *testing.T) {
	m := openMailbox(t)

	err := m.Push("nope", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)

	err = m.Push(domain.IsoValueParam(0), 2)
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)
	assert.Zero(t, m.Pending())
}

func TestMailbox_ParametersTrackPushes(t *testing.T) {
	m := openMailbox(t)
	require.NoError(t, m.Push(domain.IsoValueParam(0), 0.75))

	params := m.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, domain.ParamOrthoslice, params[0].Name)
	assert.InDelta(t, 0.75, params[1].Value, 1e-12)

	// Returned slice is a copy.
	params[1].Value = 0
	assert.InDelta(t, 0.75, m.Parameters()[1].Value, 1e-12)
}

func TestMailbox_Unopened(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.Push("x", 1), domain.ErrSessionClosed)
	assert.ErrorIs(t, m.PushCommand(domain.CommandStop), domain.ErrSessionClosed)
	_, err := m.Poll(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestMailbox_Closed(t *testing.T) {
	m := openMailbox(t)
	require.NoError(t, m.Push(domain.IsoValueParam(0), 0.1))
	require.NoError(t, m.Close())
	assert.True(t, m.Closed())

	assert.ErrorIs(t, m.Push(domain.IsoValueParam(0), 0.2), domain.ErrSessionClosed)
	_, err := m.Poll(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	assert.ErrorIs(t, m.Open(context.Background(), "pvs", nil), domain.ErrSessionClosed)
}

func TestMailbox_ConcurrentPush(t *testing.T) {
	m := openMailbox(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Push(domain.IsoValueParam(0), 0.5)
		}()
	}
	wg.Wait()

	res, err := m.Poll(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, res.Changes, 50)
}
