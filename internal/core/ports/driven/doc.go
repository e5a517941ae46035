// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FieldReader: Loads a volumetric field from a rho file
//   - MoleculeReader: Loads a molecule from an XYZ file
//   - RenderLoop: The blocking window loop that draws the scene
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SteeringSource: External parameter source. Without it the viewer is not steerable.
//   - SteeringJournal: Persists steering sessions and events. Without it nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or reader package
package driven
