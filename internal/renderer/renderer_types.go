// Package renderer turns document state into styled terminal output.
//
// The pipeline per frame is: the compositor builds per-line style runs
// (syntax under search under cursor), the frame buffer batches the runs,
// and the backend flushes the whole frame to the terminal exactly once.
package renderer

import "github.com/reditor/reditor/internal/renderer/core"

// Color is an alias for core.Color for convenience.
type Color = core.Color

// Style is an alias for core.Style for convenience.
type Style = core.Style

// Run is an alias for core.Run for convenience.
type Run = core.Run

// RGB builds a color from components.
var RGB = core.RGB
