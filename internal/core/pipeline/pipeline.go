package pipeline

import "github.com/custodia-labs/plato/internal/core/domain"

// Pipeline is the capability shared by every variant.
type Pipeline interface {
	// Kind identifies the variant.
	Kind() domain.PipelineKind

	// Renderables returns the items the render loop should draw.
	Renderables() []domain.Renderable

	// Close releases owned resources. Renderables is empty afterwards.
	Close() error
}

// Option configures a pipeline at construction time.
type Option func(*options)

type options struct {
	colours *ColourTable
}

// WithColourTable makes the pipeline borrow ct instead of creating its own.
func WithColourTable(ct *ColourTable) Option {
	return func(o *options) {
		o.colours = ct
	}
}

// colourSlot holds a pipeline's colour table and whether it owns it.
type colourSlot struct {
	table     *ColourTable
	ownership domain.ColourOwnership
}

func newColourSlot(opts []Option) colourSlot {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.colours != nil {
		return colourSlot{table: o.colours, ownership: domain.ColourBorrowed}
	}
	return colourSlot{table: NewColourTable(), ownership: domain.ColourOwned}
}

// release drops an owned table. Borrowed tables are left to their owner.
func (c *colourSlot) release() {
	if c.ownership == domain.ColourOwned && c.table != nil {
		c.table.Release()
	}
	c.table = nil
}
