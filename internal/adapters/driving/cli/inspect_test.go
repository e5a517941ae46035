package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_Text(t *testing.T) {
	env := setupTestServices(t)
	rhoFile, _ := env.writeInputs(t)

	out, err := execute(t, env.services, "inspect", rhoFile)

	require.NoError(t, err)
	assert.Contains(t, out, "File:     "+rhoFile)
	assert.Contains(t, out, "Lattice:  2 x 2 x 2")
	assert.Contains(t, out, "Samples:  8")
	assert.Contains(t, out, "Range:    [1, 8]")
}

func TestInspect_JSON(t *testing.T) {
	env := setupTestServices(t)
	rhoFile, _ := env.writeInputs(t)

	out, err := execute(t, env.services, "inspect", "--json", rhoFile)
	require.NoError(t, err)

	var got fieldSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Uniform)
	assert.Equal(t, [3]int{2, 2, 2}, got.Dimensions)
	assert.Equal(t, 8, got.Samples)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 8.0, got.Max)
}

func TestInspect_MissingFile(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, env.services, "inspect", filepath.Join(env.dir, "missing.rho"))

	require.Error(t, err)
}

func TestInspect_RequiresArg(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, env.services, "inspect")

	require.Error(t, err)
}
