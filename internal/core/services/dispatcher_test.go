package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
)

func newTestDispatcher(t *testing.T, scene *pipeline.Scene) (*Dispatcher, *ParameterSet) {
	t.Helper()
	ps := NewParameterSet()
	for _, p := range SceneParameters(scene) {
		require.NoError(t, ps.Register(p))
	}
	return NewDispatcher(scene, ps), ps
}

func set(t *testing.T, ps *ParameterSet, name string, v float64) {
	t.Helper()
	_, err := ps.Apply(domain.ParameterChange{Name: name, Value: v})
	require.NoError(t, err)
}

func TestSceneParameters_Order(t *testing.T) {
	params := SceneParameters(testScene(t))

	var names []string
	for _, p := range params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"Molecule visible?",
		"Bonds visible?",
		"Iso 0 visible?",
		"Iso 0 value",
		"Iso 1 visible?",
		"Iso 1 value",
		"Orthoslice?",
		"Cut-plane?",
	}, names)

	iso0 := params[3]
	assert.Equal(t, domain.ParameterDouble, iso0.Kind)
	assert.Equal(t, 3.5, iso0.Value)
	assert.Equal(t, 0.0, iso0.Min)
	assert.Equal(t, 7.0, iso0.Max)
	assert.Equal(t, 1.0, params[2].Value)
	assert.Equal(t, 0.0, params[4].Value)
}

func TestSceneParameters_MoleculeOnly(t *testing.T) {
	scene := &pipeline.Scene{XYZ: pipeline.NewXYZPipeline(testMolecule())}
	assert.Len(t, SceneParameters(scene), 2)
}

func TestDispatcher_Iso(t *testing.T) {
	scene := testScene(t)
	d, ps := newTestDispatcher(t, scene)

	// Value change on a hidden surface is dropped by the pipeline.
	set(t, ps, "Iso 1 value", 6)
	require.NoError(t, d.Dispatch("Iso 1 value"))
	assert.False(t, scene.Iso.IsIsoVisible(1))
	assert.Equal(t, 3.5, scene.Iso.IsoValue(1))

	// Showing it applies the stored value.
	set(t, ps, "Iso 1 visible?", 1)
	require.NoError(t, d.Dispatch("Iso 1 visible?"))
	assert.True(t, scene.Iso.IsIsoVisible(1))
	assert.Equal(t, 6.0, scene.Iso.IsoValue(1))

	set(t, ps, "Iso 0 visible?", 0)
	require.NoError(t, d.Dispatch("Iso 0 visible?"))
	assert.False(t, scene.Iso.IsIsoVisible(0))
}

func TestDispatcher_Molecule(t *testing.T) {
	scene := testScene(t)
	d, ps := newTestDispatcher(t, scene)

	set(t, ps, domain.ParamBondsVisible, 0)
	require.NoError(t, d.Dispatch(domain.ParamBondsVisible))
	assert.False(t, scene.XYZ.IsBondsVisible())
	assert.True(t, scene.XYZ.IsMoleculeVisible())

	set(t, ps, domain.ParamMoleculeVisible, 0)
	require.NoError(t, d.Dispatch(domain.ParamMoleculeVisible))
	assert.False(t, scene.XYZ.IsMoleculeVisible())
}

func TestDispatcher_Toggles(t *testing.T) {
	scene := testScene(t)
	d, ps := newTestDispatcher(t, scene)

	set(t, ps, domain.ParamOrthoslice, 1)
	require.NoError(t, d.Dispatch(domain.ParamOrthoslice))
	assert.True(t, scene.Ortho.IsOrthosliceOn())

	set(t, ps, domain.ParamCutPlane, 1)
	require.NoError(t, d.Dispatch(domain.ParamCutPlane))
	assert.True(t, scene.Iso.IsCutPlaneOn())
}

func TestDispatcher_Unknown(t *testing.T) {
	d, _ := newTestDispatcher(t, testScene(t))

	for _, label := range []string{"Zoom", "Iso", "Iso x value", "Iso 9 value", "orthoslice?", "Cut-plane"} {
		assert.ErrorIs(t, d.Dispatch(label), domain.ErrUnknownParameter, label)
	}
}

func TestDispatcher_MissingPipeline(t *testing.T) {
	scene := &pipeline.Scene{XYZ: pipeline.NewXYZPipeline(testMolecule())}
	d, _ := newTestDispatcher(t, scene)

	assert.ErrorIs(t, d.Dispatch("Iso 0 value"), domain.ErrUnknownParameter)
	assert.ErrorIs(t, d.Dispatch(domain.ParamOrthoslice), domain.ErrUnknownParameter)
	assert.ErrorIs(t, d.Dispatch(domain.ParamCutPlane), domain.ErrUnknownParameter)
}

func TestIsoIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Iso 0 value", 0, true},
		{"Iso 12 visible?", 12, true},
		{"Iso  3 value", 3, true},
		{"Iso", 0, false},
		{"Iso ", 0, false},
		{"Isovalue", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := isoIndex(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
