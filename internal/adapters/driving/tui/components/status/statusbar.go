// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chime/internal/core/domain"
)

// Bar shows the task count, live workers, the most recent playback and
// keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	tasks   int
	workers int
	last    *domain.PlaybackEvent
	message string
	form    bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	parts := []string{
		s.styles.Normal.Render(fmt.Sprintf("%d tasks", s.tasks)),
		s.styles.Muted.Render(fmt.Sprintf("%d playing", s.workers)),
	}
	if s.message != "" {
		parts = append(parts, s.styles.Muted.Render(s.message))
	} else if s.last != nil {
		parts = append(parts, s.renderLast())
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderLast() string {
	ev := s.last
	text := fmt.Sprintf("%s %s %s", ev.At.Format(time.TimeOnly), filepath.Base(ev.Path), ev.Outcome)
	switch ev.Outcome {
	case domain.OutcomePlayed:
		return s.styles.Success.Render(text)
	case domain.OutcomeFallback:
		return s.styles.Warning.Render(text)
	default:
		return s.styles.Error.Render(text)
	}
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.form {
		bindings = s.keymap.FormHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, hint(b))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func hint(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("%s: %s", h.Key, h.Desc)
}

// SetCounts sets the registered task and running worker counts.
func (s *Bar) SetCounts(tasks, workers int) {
	s.tasks = tasks
	s.workers = workers
}

// Tasks returns the displayed task count.
func (s *Bar) Tasks() int {
	return s.tasks
}

// Workers returns the displayed worker count.
func (s *Bar) Workers() int {
	return s.workers
}

// SetLastPlayback records the most recent playback event.
func (s *Bar) SetLastPlayback(ev domain.PlaybackEvent) {
	s.last = &ev
}

// LastPlayback returns the most recent playback event, if any.
func (s *Bar) LastPlayback() (domain.PlaybackEvent, bool) {
	if s.last == nil {
		return domain.PlaybackEvent{}, false
	}
	return *s.last, true
}

// SetMessage sets a transient message shown instead of the last playback.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetFormMode switches the hints between list and form bindings.
func (s *Bar) SetFormMode(form bool) {
	s.form = form
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
