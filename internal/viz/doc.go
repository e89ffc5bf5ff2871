// Package viz provides the terminal front end for the gas engine.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: per-frame host loop driving a gas engine at 60fps
//   - [Canvas]: Braille-based pixel canvas the particles render onto
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to default parameters
//	Tab   - Cycle tunable parameters
//	↑/↓   - Adjust the selected parameter live
//	T     - Cycle color themes
//	?     - Show help overlay
//
// The TUI is presentation glue over the engine's read-side contract;
// it never mutates physics state except through Update parameters.
package viz
