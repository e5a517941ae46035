package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
)

// Dispatcher routes an applied parameter change to the pipeline it
// controls. Routing is by label: any label containing "Molecule" or
// "Bonds" updates molecule visibility, labels starting with "Iso" update
// the isosurface whose index follows the prefix, and the orthoslice and
// cut-plane toggles match exactly.
type Dispatcher struct {
	scene  *pipeline.Scene
	params *ParameterSet
}

// NewDispatcher creates a dispatcher reading current values from params.
func NewDispatcher(scene *pipeline.Scene, params *ParameterSet) *Dispatcher {
	return &Dispatcher{scene: scene, params: params}
}

// Dispatch applies the parameter named label to its pipeline.
// Returns domain.ErrUnknownParameter when no pipeline claims the label.
func (d *Dispatcher) Dispatch(label string) error {
	switch {
	case strings.Contains(label, "Molecule") || strings.Contains(label, "Bonds"):
		return d.molecule(label)
	case strings.HasPrefix(label, domain.IsoParamPrefix):
		return d.iso(label)
	case label == domain.ParamOrthoslice:
		if d.scene.Ortho == nil {
			return unknown(label)
		}
		d.scene.Ortho.SetOrthoslice(d.params.Value(label) == 1)
		return nil
	case label == domain.ParamCutPlane:
		if d.scene.Iso == nil {
			return unknown(label)
		}
		d.scene.Iso.SetCutPlane(d.params.Value(label) == 1)
		return nil
	}
	return unknown(label)
}

func (d *Dispatcher) molecule(label string) error {
	if d.scene.XYZ == nil {
		return unknown(label)
	}
	d.scene.XYZ.SetMoleculeVisible(d.params.Value(domain.ParamMoleculeVisible) == 1)
	d.scene.XYZ.SetBondsVisible(d.params.Value(domain.ParamBondsVisible) == 1)
	return nil
}

func (d *Dispatcher) iso(label string) error {
	iso := d.scene.Iso
	if iso == nil {
		return unknown(label)
	}
	idx, ok := isoIndex(label)
	if !ok || idx >= iso.Surfaces() {
		return unknown(label)
	}
	if d.params.Value(domain.IsoVisibleParam(idx)) == 1 {
		iso.SetIsoVisible(idx, true)
		iso.SetIsoValue(idx, d.params.Value(domain.IsoValueParam(idx)))
		return nil
	}
	iso.SetIsoVisible(idx, false)
	return nil
}

// isoIndex reads the decimal index that follows "Iso " in a label.
func isoIndex(label string) (int, bool) {
	if len(label) <= len(domain.IsoParamPrefix)+1 {
		return 0, false
	}
	rest := strings.TrimLeft(label[len(domain.IsoParamPrefix)+1:], " ")
	n, digits := 0, 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}

func unknown(label string) error {
	return fmt.Errorf("%q: %w", label, domain.ErrUnknownParameter)
}

// SceneParameters lists the steerable parameters for a scene, initialised
// from the pipelines' current state: molecule toggles, then a visibility
// toggle and a value for each isosurface, then the orthoslice and
// cut-plane toggles. Isovalues are bounded by the field's data range.
func SceneParameters(scene *pipeline.Scene) []domain.Parameter {
	var params []domain.Parameter
	if scene.XYZ != nil {
		params = append(params,
			domain.ToggleParameter(domain.ParamMoleculeVisible, scene.XYZ.IsMoleculeVisible()),
			domain.ToggleParameter(domain.ParamBondsVisible, scene.XYZ.IsBondsVisible()),
		)
	}
	if scene.Iso != nil {
		r := scene.Iso.Range()
		for i := 0; i < scene.Iso.Surfaces(); i++ {
			params = append(params,
				domain.ToggleParameter(domain.IsoVisibleParam(i), scene.Iso.IsIsoVisible(i)),
				domain.Parameter{
					Name:  domain.IsoValueParam(i),
					Kind:  domain.ParameterDouble,
					Value: scene.Iso.IsoValue(i),
					Min:   r.Min,
					Max:   r.Max,
				},
			)
		}
	}
	if scene.Ortho != nil {
		params = append(params, domain.ToggleParameter(domain.ParamOrthoslice, scene.Ortho.IsOrthosliceOn()))
	}
	if scene.Iso != nil {
		params = append(params, domain.ToggleParameter(domain.ParamCutPlane, scene.Iso.IsCutPlaneOn()))
	}
	return params
}
