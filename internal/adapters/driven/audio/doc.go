// Package audio hands sound files to the operating system.
//
// Adapters:
//   - CommandPlayer: starts a command-line audio player
//   - DefaultLauncher: opens a file with the platform's default handler
//   - RateLimitedLauncher: caps how often a launcher may open files
//
// Nothing here waits for a sound to finish. Started processes are reaped
// in the background.
package audio
