package domain

import "time"

// PlaybackOutcome classifies a playback attempt.
type PlaybackOutcome string

// Playback outcomes.
const (
	// OutcomePlayed means the audio player accepted the file.
	OutcomePlayed PlaybackOutcome = "played"

	// OutcomeFallback means the player failed and the default handler opened the file.
	OutcomeFallback PlaybackOutcome = "fallback"

	// OutcomeFailed means both mechanisms failed.
	OutcomeFailed PlaybackOutcome = "failed"
)

// PlaybackEvent records a single playback attempt.
type PlaybackEvent struct {
	// TaskID identifies the task that triggered playback, if any.
	TaskID string

	// Path is the file that was played.
	Path string

	// At is when the attempt started.
	At time.Time

	// Outcome classifies the attempt.
	Outcome PlaybackOutcome

	// Err is set when Outcome is not OutcomePlayed.
	// For OutcomeFallback it holds the primary error; for OutcomeFailed
	// it is a *PlaybackError.
	Err error
}

// Succeeded reports whether the file was handed to some mechanism.
func (e PlaybackEvent) Succeeded() bool {
	return e.Outcome == OutcomePlayed || e.Outcome == OutcomeFallback
}

// ErrorString returns the error text or an empty string.
func (e PlaybackEvent) ErrorString() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
