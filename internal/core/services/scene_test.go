package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
)

func TestSceneService_BuildAll(t *testing.T) {
	fields := &fakeFieldReader{field: testField(t)}
	svc := NewSceneService(fields, &fakeMoleculeReader{molecule: testMolecule()})

	scene, err := svc.Build(context.Background(), domain.SceneOptions{
		RhoPath:     "f.rho",
		XYZPath:     "m.xyz",
		Isosurface:  true,
		Orthoslice:  true,
		CutPlane:    true,
		IsoSurfaces: 3,
	})
	require.NoError(t, err)

	require.NotNil(t, scene.XYZ)
	require.NotNil(t, scene.Iso)
	require.NotNil(t, scene.Ortho)
	assert.Equal(t, 3, scene.Iso.Surfaces())
	assert.True(t, scene.Iso.IsCutPlaneOn())
	assert.True(t, scene.Ortho.IsOrthosliceOn())
	assert.Equal(t, domain.ColourBorrowed, scene.Iso.Ownership())
	assert.Equal(t, []string{"f.rho"}, fields.paths)

	require.NoError(t, scene.Close())
	assert.True(t, scene.Colours.Released())
}

func TestSceneService_BuildMoleculeOnly(t *testing.T) {
	svc := NewSceneService(&fakeFieldReader{}, &fakeMoleculeReader{molecule: testMolecule()})

	scene, err := svc.Build(context.Background(), domain.SceneOptions{XYZPath: "m.xyz", Isosurface: true})
	require.NoError(t, err)
	assert.NotNil(t, scene.XYZ)
	assert.Nil(t, scene.Iso)
	assert.Nil(t, scene.Ortho)
	assert.Nil(t, scene.Field)
}

func TestSceneService_DefaultSurfaces(t *testing.T) {
	svc := NewSceneService(&fakeFieldReader{field: testField(t)}, &fakeMoleculeReader{})

	scene, err := svc.Build(context.Background(), domain.SceneOptions{RhoPath: "f.rho", Isosurface: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIsoSurfaces, scene.Iso.Surfaces())
	assert.Nil(t, scene.Ortho)
}

func TestSceneService_NoInput(t *testing.T) {
	svc := NewSceneService(&fakeFieldReader{}, &fakeMoleculeReader{})

	_, err := svc.Build(context.Background(), domain.SceneOptions{Isosurface: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSceneService_ReaderError(t *testing.T) {
	svc := NewSceneService(&fakeFieldReader{err: domain.ErrMalformedData}, &fakeMoleculeReader{})

	_, err := svc.Build(context.Background(), domain.SceneOptions{RhoPath: "bad.rho"})
	assert.ErrorIs(t, err, domain.ErrMalformedData)

	_, err = svc.LoadField(context.Background(), "bad.rho")
	assert.ErrorIs(t, err, domain.ErrMalformedData)
}

func TestSceneService_MoleculeError(t *testing.T) {
	svc := NewSceneService(&fakeFieldReader{}, &fakeMoleculeReader{err: domain.ErrFileOpen})

	_, err := svc.Build(context.Background(), domain.SceneOptions{XYZPath: "gone.xyz"})
	assert.ErrorIs(t, err, domain.ErrFileOpen)
}
