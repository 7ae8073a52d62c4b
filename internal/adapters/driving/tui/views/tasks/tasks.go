// Package tasks provides the task list view for the TUI.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

// ErrNoRegistry is reported when the view has no task registry.
var ErrNoRegistry = errors.New("task registry not available")

// View is the task list view.
type View struct {
	styles    *styles.Styles
	registry  driving.TaskRegistry
	scheduler driving.TaskScheduler

	list    *list.TaskList
	confirm *domain.TaskSnapshot // pending delete
	width   int
	height  int
	ready   bool
	loading bool
}

// NewView creates a task list view. scheduler may be nil.
func NewView(s *styles.Styles, registry driving.TaskRegistry, scheduler driving.TaskScheduler) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		registry:  registry,
		scheduler: scheduler,
		list:      list.NewTaskList(s),
	}
}

// Init loads the tasks.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.Load()
}

// Load returns a command that snapshots the registry.
func (v *View) Load() tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.TasksLoaded{Err: ErrNoRegistry}
		}
		tasks, err := v.registry.List(context.Background())
		if err != nil {
			return messages.TasksLoaded{Err: err}
		}
		snaps := make([]domain.TaskSnapshot, 0, len(tasks))
		for _, t := range tasks {
			snaps = append(snaps, t.Snapshot())
		}
		running := 0
		if v.scheduler != nil {
			running = v.scheduler.Running()
		}
		return messages.TasksLoaded{Tasks: snaps, Running: running}
	}
}

// Update handles messages for the task list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TasksLoaded:
		v.loading = false
		if msg.Err != nil {
			return v, failed(msg.Err)
		}
		v.list.SetTasks(msg.Tasks)
		return v, nil

	case messages.TaskRemoved:
		return v, v.afterMutation(msg.Err)
	case messages.TaskToggled:
		return v, v.afterMutation(msg.Err)
	case messages.TaskAdded:
		return v, v.afterMutation(msg.Err)
	case messages.TaskUpdated:
		return v, v.afterMutation(msg.Err)
	}
	return v, nil
}

func (v *View) afterMutation(err error) tea.Cmd {
	if err != nil {
		return tea.Batch(failed(err), v.Load())
	}
	return v.Load()
}

func failed(err error) tea.Cmd {
	return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirm != nil {
		return v.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "up", "k", "down", "j", "home", "g", "end", "G":
		v.list, _ = v.list.Update(msg)
	case "a":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewAddTask} }
	case "e", "enter":
		if t := v.list.SelectedTask(); t != nil {
			task := *t
			return v, func() tea.Msg { return messages.EditRequested{Task: task} }
		}
	case "d", "delete", "backspace":
		if t := v.list.SelectedTask(); t != nil {
			task := *t
			v.confirm = &task
		}
	case "p", " ":
		if t := v.list.SelectedTask(); t != nil {
			return v, v.toggle(*t)
		}
	case "r":
		v.loading = true
		return v, v.Load()
	}
	return v, nil
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		task := *v.confirm
		v.confirm = nil
		return v, v.remove(task)
	case "n", "N", "esc":
		v.confirm = nil
	}
	return v, nil
}

func (v *View) remove(task domain.TaskSnapshot) tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.TaskRemoved{ID: task.ID, Name: task.DisplayName, Err: ErrNoRegistry}
		}
		err := v.registry.Remove(context.Background(), task.ID)
		return messages.TaskRemoved{ID: task.ID, Name: task.DisplayName, Err: err}
	}
}

func (v *View) toggle(task domain.TaskSnapshot) tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.TaskToggled{Task: task, Err: ErrNoRegistry}
		}
		ctx := context.Background()
		var (
			t   *domain.SoundTask
			err error
		)
		if task.Active {
			t, err = v.registry.Pause(ctx, task.ID)
		} else {
			t, err = v.registry.Resume(ctx, task.ID)
		}
		if err != nil {
			return messages.TaskToggled{Task: task, Err: err}
		}
		return messages.TaskToggled{Task: t.Snapshot()}
	}
}

// View renders the task list view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sounds"))
	b.WriteString("\n\n")

	if v.loading && v.list.IsEmpty() {
		b.WriteString(v.styles.Muted.Render("Loading..."))
	} else {
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	if v.confirm != nil {
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Remove %s? [y] yes  [n] no", v.confirm.Label())))
		return b.String()
	}
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[a] add  [e] edit  [d] delete  [p] pause/resume  [r] reload  [?] help  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	rows := height - 6
	if rows < 1 {
		rows = 1
	}
	v.list.SetDimensions(width, rows)
}

// Tasks returns the displayed tasks.
func (v *View) Tasks() []domain.TaskSnapshot {
	return v.list.Tasks()
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Confirming reports whether a delete confirmation is pending.
func (v *View) Confirming() bool {
	return v.confirm != nil
}
