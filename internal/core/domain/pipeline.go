package domain

// PipelineKind identifies one of the fixed pipeline variants.
type PipelineKind string

// Pipeline variants.
const (
	PipelineIso   PipelineKind = "iso"
	PipelineOrtho PipelineKind = "ortho"
	PipelineXYZ   PipelineKind = "xyz"
)

// Renderable is a drawable item produced by a pipeline.
type Renderable struct {
	// Pipeline is the variant that produced the item.
	Pipeline PipelineKind

	// Name identifies the item within its pipeline, e.g. "iso 0" or "bonds".
	Name string

	// Visible reports whether the item is currently drawn.
	Visible bool

	// Summary is a one-line description of what would be drawn.
	Summary string
}

// ColourOwnership records whether a pipeline owns its colour table.
type ColourOwnership int

const (
	// ColourOwned tables are created by the pipeline and released with it.
	ColourOwned ColourOwnership = iota

	// ColourBorrowed tables belong to the caller and outlive the pipeline.
	ColourBorrowed
)

// String returns the ownership name.
func (o ColourOwnership) String() string {
	if o == ColourBorrowed {
		return "borrowed"
	}
	return "owned"
}

// SceneOptions selects the inputs and pipelines for one viewer run.
type SceneOptions struct {
	// RhoPath is the volumetric field file. Empty means no field.
	RhoPath string

	// XYZPath is the molecule file. Empty means no molecule.
	XYZPath string

	// Isosurface builds the iso pipeline when a field is loaded.
	Isosurface bool

	// Orthoslice builds the orthoslice pipeline when a field is loaded.
	Orthoslice bool

	// CutPlane starts the iso pipeline with clipping enabled.
	CutPlane bool

	// IsoSurfaces is the number of steerable isosurfaces.
	IsoSurfaces int
}

// HasInput reports whether at least one input file was given.
func (o SceneOptions) HasInput() bool {
	return o.RhoPath != "" || o.XYZPath != ""
}
