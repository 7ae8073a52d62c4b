package services

import (
	"sync"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

var (
	_ driven.PlaybackSink     = (*PlaybackHistory)(nil)
	_ driving.PlaybackHistory = (*PlaybackHistory)(nil)
)

// PlaybackHistory retains the most recent playback events in a ring.
type PlaybackHistory struct {
	mu     sync.Mutex
	events []domain.PlaybackEvent
	next   int
	full   bool
	notify func(domain.PlaybackEvent)
}

// NewPlaybackHistory creates a history holding up to size events,
// capped at domain.MaxHistorySize. A size of zero or less keeps nothing
// but still forwards to the notify hook.
func NewPlaybackHistory(size int) *PlaybackHistory {
	size = max(0, min(size, domain.MaxHistorySize))
	return &PlaybackHistory{events: make([]domain.PlaybackEvent, size)}
}

// OnRecord sets a hook called after each event is stored.
// The hook runs on the recording goroutine and must not block.
func (h *PlaybackHistory) OnRecord(fn func(domain.PlaybackEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notify = fn
}

// Record stores an event, evicting the oldest when full.
func (h *PlaybackHistory) Record(event domain.PlaybackEvent) {
	h.mu.Lock()
	if len(h.events) > 0 {
		h.events[h.next] = event
		h.next = (h.next + 1) % len(h.events)
		if h.next == 0 {
			h.full = true
		}
	}
	notify := h.notify
	h.mu.Unlock()

	if notify != nil {
		notify(event)
	}
}

// Recent returns up to limit events, most recent first.
func (h *PlaybackHistory) Recent(limit int) []domain.PlaybackEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := h.next
	if h.full {
		count = len(h.events)
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	out := make([]domain.PlaybackEvent, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (h.next - i + len(h.events)) % len(h.events)
		out = append(out, h.events[idx])
	}
	return out
}
