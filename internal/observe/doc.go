// Package observe derives display-ready macroscopic quantities from the
// gas engine's raw state:
//
//   - [PressureGauge]: rolling-window pressure estimate from wall impulse
//   - [Frame]: per-frame observable snapshot with per-species stats
//   - [SpeedHistogram]: fixed-bin normalized histogram of live speeds
package observe
