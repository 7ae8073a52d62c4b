package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
	"github.com/custodia-labs/chime/internal/logger"
)

// Ensure PlaybackService implements the interface.
var _ driving.PlaybackService = (*PlaybackService)(nil)

// PlaybackService plays a file once using the configured player, falling
// back to the platform's default handler when the player fails.
//
// Play never returns an error and never panics; every attempt produces a
// PlaybackEvent that is also handed to the sink.
type PlaybackService struct {
	player   driven.Player
	launcher driven.Launcher
	sink     driven.PlaybackSink
	now      func() time.Time
}

// NewPlaybackService creates a playback service.
// A nil launcher disables the fallback; a nil sink discards events.
func NewPlaybackService(player driven.Player, launcher driven.Launcher, sink driven.PlaybackSink) *PlaybackService {
	return &PlaybackService{
		player:   player,
		launcher: launcher,
		sink:     sink,
		now:      time.Now,
	}
}

// Play plays path once on behalf of taskID.
func (s *PlaybackService) Play(ctx context.Context, taskID, path string) domain.PlaybackEvent {
	event := domain.PlaybackEvent{
		TaskID: taskID,
		Path:   path,
		At:     s.now(),
	}

	primary := s.primary(ctx, path)
	if primary == nil {
		event.Outcome = domain.OutcomePlayed
		s.record(event)
		return event
	}

	logger.L().Debug().Str("task", taskID).Str("path", path).Err(primary).Msg("player failed")

	var fallback error
	if s.launcher != nil {
		fallback = guard(func() error { return s.launcher.Open(ctx, path) })
		if fallback == nil {
			event.Outcome = domain.OutcomeFallback
			event.Err = primary
			s.record(event)
			return event
		}
	}

	event.Outcome = domain.OutcomeFailed
	event.Err = &domain.PlaybackError{Path: path, Primary: primary, Fallback: fallback}
	logger.L().Warn().Str("task", taskID).Err(event.Err).Msg("playback failed")
	s.record(event)
	return event
}

func (s *PlaybackService) primary(ctx context.Context, path string) error {
	if s.player == nil {
		return domain.ErrNoPlayer
	}
	return guard(func() error { return s.player.Play(ctx, path) })
}

func (s *PlaybackService) record(event domain.PlaybackEvent) {
	if s.sink != nil {
		s.sink.Record(event)
	}
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrPlayback, r)
		}
	}()
	return fn()
}
