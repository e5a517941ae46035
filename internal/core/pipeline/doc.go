// Package pipeline holds the state of the viewer's three pipeline variants:
// isosurfaces, the orthoslice and the molecule. The set is closed; callers
// select a variant at construction time and work through the Pipeline
// interface when they only need renderables.
//
// Pipelines are written by the steering worker and read by the render loop,
// so every variant guards its state with its own lock.
package pipeline
