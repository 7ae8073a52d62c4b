// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewTasks is the task list.
	ViewTasks ViewType = iota
	// ViewAddTask is the add-task form.
	ViewAddTask
	// ViewEditTask is the edit-interval form.
	ViewEditTask
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTasks:
		return "tasks"
	case ViewAddTask:
		return "add_task"
	case ViewEditTask:
		return "edit_task"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened. The app shows it in a
// modal until dismissed.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Tick drives the periodic refresh of the task list.
type Tick struct {
	At time.Time
}

// TasksLoaded carries a snapshot of the registry.
type TasksLoaded struct {
	Tasks   []domain.TaskSnapshot
	Running int
	Err     error
}

// TaskAdded signals a task was registered.
type TaskAdded struct {
	Task domain.TaskSnapshot
	Err  error
}

// TaskUpdated signals a task's interval was changed.
type TaskUpdated struct {
	Task domain.TaskSnapshot
	Err  error
}

// TaskRemoved signals a task was removed.
type TaskRemoved struct {
	ID   string
	Name string
	Err  error
}

// TaskToggled signals a task was paused or resumed.
type TaskToggled struct {
	Task domain.TaskSnapshot
	Err  error
}

// EditRequested asks the app to open the edit form for a task.
type EditRequested struct {
	Task domain.TaskSnapshot
}

// PlaybackRecorded carries a playback event from a task worker.
type PlaybackRecorded struct {
	Event domain.PlaybackEvent
}
