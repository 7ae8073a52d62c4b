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
//   - TaskStore: Ordered in-memory task collection
//   - Player: Starts non-blocking audio playback
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Launcher: Opens a file with the OS default handler. Without it, a
//     failed player is not retried through a fallback.
//   - PlaybackSink: Receives playback events. Without it, failures are
//     only logged.
//   - FileWatcher: Flags task files that disappear. Without it, missing
//     files only show up as playback failures.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
