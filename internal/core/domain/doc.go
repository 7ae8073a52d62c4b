// Package domain defines the core business entities for chime.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SoundTask: an audio file bound to a repeat interval
//   - PlaybackEvent: the outcome of one playback attempt
//   - AppSettings: scheduler, playback and UI configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
