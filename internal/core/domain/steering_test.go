package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameter_InBounds(t *testing.T) {
	p := Parameter{Name: "Iso 0 value", Kind: ParameterDouble, Min: -1, Max: 1}

	assert.True(t, p.InBounds(-1))
	assert.True(t, p.InBounds(0.25))
	assert.True(t, p.InBounds(1))
	assert.False(t, p.InBounds(1.01))
	assert.False(t, p.InBounds(math.NaN()))
}

func TestToggleParameter(t *testing.T) {
	on := ToggleParameter(ParamOrthoslice, true)
	off := ToggleParameter(ParamCutPlane, false)

	assert.Equal(t, ParameterInt, on.Kind)
	assert.True(t, on.Bool())
	assert.False(t, off.Bool())
	assert.Equal(t, 0.0, off.Min)
	assert.Equal(t, 1.0, off.Max)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "shutdown-requested", StateShutdownRequested.String())
	assert.Equal(t, "worker-exited", StateWorkerExited.String())
	assert.Equal(t, "unknown", SessionState(42).String())
}

func TestColourOwnership_String(t *testing.T) {
	assert.Equal(t, "owned", ColourOwned.String())
	assert.Equal(t, "borrowed", ColourBorrowed.String())
}
