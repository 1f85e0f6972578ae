// Package solver runs the full mosaic pipeline.
//
// Lifecycle order:
// - parse -> assemble -> stitch -> search
//
// Every stage is timed and logged. A failing stage ends the run; the error
// names the stage and wraps the stage's sentinel.
package solver
