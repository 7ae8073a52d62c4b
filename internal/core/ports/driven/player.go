package driven

import (
	"context"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// Player starts playback of an audio file without waiting for it to finish.
// An error means the player could not be started for this file.
type Player interface {
	Play(ctx context.Context, path string) error

	// Name identifies the player for logs and status output.
	Name() string
}

// Launcher hands a file to the platform's default handler.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// PlaybackSink receives playback events.
// Implementations must be safe for concurrent use: every task worker
// reports to the same sink.
type PlaybackSink interface {
	Record(event domain.PlaybackEvent)
}
