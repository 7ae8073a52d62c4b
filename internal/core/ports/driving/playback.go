package driving

import (
	"context"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// PlaybackService plays a file once, falling back to the OS default
// handler. It never returns an error; the outcome is in the event.
type PlaybackService interface {
	Play(ctx context.Context, taskID, path string) domain.PlaybackEvent
}

// PlaybackHistory exposes recent playback events.
type PlaybackHistory interface {
	// Recent returns up to limit events, most recent first.
	// A limit of zero or less returns every retained event.
	Recent(limit int) []domain.PlaybackEvent
}
