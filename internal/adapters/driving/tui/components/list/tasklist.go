// Package list provides the task list component for the TUI.
package list

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chime/internal/core/domain"
)

// TaskList displays sound tasks in a navigable list.
// Each row shows "<name> - Every <interval> minutes" followed by its
// state and when it last played.
type TaskList struct {
	tasks    []domain.TaskSnapshot
	selected int
	styles   *styles.Styles
	now      func() time.Time
	width    int
	height   int
}

// NewTaskList creates an empty task list.
func NewTaskList(s *styles.Styles) *TaskList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &TaskList{
		styles: s,
		now:    time.Now,
		width:  80,
		height: 10,
	}
}

// Update handles navigation keys.
func (l *TaskList) Update(msg tea.Msg) (*TaskList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.tasks) > 0 {
				l.selected = len(l.tasks) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of rows around the selection.
func (l *TaskList) View() string {
	if len(l.tasks) == 0 {
		return l.styles.Muted.Render("No sounds yet. Press a to add one.")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.tasks))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, l.tasks[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *TaskList) renderRow(index int, t domain.TaskSnapshot) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	label := t.Label()
	maxLabel := l.width - 30
	if maxLabel < 20 {
		maxLabel = 20
	}
	if len(label) > maxLabel {
		label = label[:maxLabel-3] + "..."
	}

	main := fmt.Sprintf("%s%-*s", indicator, maxLabel, label)
	if index == l.selected {
		main = l.styles.Selected.Render(main)
	} else {
		main = l.styles.Normal.Render(main)
	}
	return main + "  " + l.renderState(t) + "  " + l.styles.Muted.Render(l.lastPlayed(t))
}

func (l *TaskList) renderState(t domain.TaskSnapshot) string {
	switch {
	case t.Missing:
		return l.styles.Error.Render("missing")
	case !t.Active:
		return l.styles.Warning.Render("paused ")
	case t.Failures > 0 && t.Failures == t.Plays:
		return l.styles.Error.Render("failing")
	default:
		return l.styles.Success.Render("active ")
	}
}

func (l *TaskList) lastPlayed(t domain.TaskSnapshot) string {
	if t.NeverPlayed() {
		return "never played"
	}
	ago := l.now().Sub(t.LastPlayed).Truncate(time.Second)
	if ago < time.Second {
		return "just now"
	}
	return ago.String() + " ago"
}

// SetTasks replaces the rows. The selection follows the previously
// selected task when it is still present, and is clamped otherwise.
func (l *TaskList) SetTasks(tasks []domain.TaskSnapshot) {
	var selectedID string
	if cur := l.SelectedTask(); cur != nil {
		selectedID = cur.ID
	}

	l.tasks = tasks
	for i := range tasks {
		if tasks[i].ID == selectedID {
			l.selected = i
			return
		}
	}
	l.clamp()
}

func (l *TaskList) clamp() {
	if l.selected >= len(l.tasks) {
		l.selected = len(l.tasks) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Tasks returns the current rows.
func (l *TaskList) Tasks() []domain.TaskSnapshot {
	return l.tasks
}

// Selected returns the index of the selected row.
func (l *TaskList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index if it is in range.
func (l *TaskList) SetSelected(index int) {
	if index >= 0 && index < len(l.tasks) {
		l.selected = index
	}
}

// SelectedTask returns the selected row, or nil if the list is empty.
func (l *TaskList) SelectedTask() *domain.TaskSnapshot {
	if l.selected < 0 || l.selected >= len(l.tasks) {
		return nil
	}
	return &l.tasks[l.selected]
}

// MoveUp moves selection up.
func (l *TaskList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TaskList) MoveDown() {
	if l.selected < len(l.tasks)-1 {
		l.selected++
	}
}

// SetClock replaces the time source used for "ago" rendering.
func (l *TaskList) SetClock(now func() time.Time) {
	l.now = now
}

// SetDimensions sets the width and the number of visible rows.
func (l *TaskList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *TaskList) Count() int {
	return len(l.tasks)
}

// IsEmpty reports whether the list has no rows.
func (l *TaskList) IsEmpty() bool {
	return len(l.tasks) == 0
}
