package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/views/taskform"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/views/tasks"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/logger"
)

// RefreshInterval is how often the task list is re-read so that
// "last played" and worker counts stay current.
const RefreshInterval = time.Second

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	tasksView *tasks.View
	formView  *taskform.View
	statusBar *status.Bar

	currentView messages.ViewType

	// err is shown in a blocking modal until dismissed.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	defaultInterval := domain.DefaultIntervalText
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			defaultInterval = settings.UI.DefaultInterval
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		tasksView:   tasks.NewView(s, ports.Registry, ports.Scheduler),
		formView:    taskform.NewView(s, ports.Registry, defaultInterval),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewTasks,
	}, nil
}

// WithContext sets the context for the app. Cancelling it quits.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.ports.History != nil {
		if recent := a.ports.History.Recent(1); len(recent) > 0 {
			a.statusBar.SetLastPlayback(recent[0])
		}
	}
	return tea.Batch(
		tea.SetWindowTitle("chime"),
		a.tasksView.Init(),
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return messages.Tick{At: t}
	})
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		// The file picker sizes itself from this message.
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.Tick:
		if a.ctx.Err() != nil {
			return a, tea.Quit
		}
		return a, tea.Batch(a.tasksView.Load(), tick())

	case messages.Quit:
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.EditRequested:
		a.currentView = messages.ViewEditTask
		a.statusBar.SetFormMode(true)
		return a, a.formView.StartEdit(msg.Task)

	case messages.TasksLoaded:
		if msg.Err == nil {
			a.statusBar.SetCounts(len(msg.Tasks), msg.Running)
		}
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.TaskAdded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		logger.L().Debug().Str("task", msg.Task.ID).Msg("task added from tui")
		a.statusBar.SetMessage("added " + msg.Task.Label())
		return a, tea.Batch(a.switchTo(messages.ViewTasks), a.forwardToTasks(msg))

	case messages.TaskUpdated:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.statusBar.SetMessage("updated " + msg.Task.Label())
		return a, tea.Batch(a.switchTo(messages.ViewTasks), a.forwardToTasks(msg))

	case messages.TaskRemoved:
		if msg.Err == nil {
			a.statusBar.SetMessage("removed " + msg.Name)
		}
		return a, a.forwardToTasks(msg)

	case messages.TaskToggled:
		if msg.Err == nil {
			verb := "paused "
			if msg.Task.Active {
				verb = "resumed "
			}
			a.statusBar.SetMessage(verb + msg.Task.DisplayName)
		}
		return a, a.forwardToTasks(msg)

	case messages.PlaybackRecorded:
		a.statusBar.SetMessage("")
		a.statusBar.SetLastPlayback(msg.Event)
		return a, a.tasksView.Load()
	}

	// Anything else (file picker directory reads, cursor blinks) belongs
	// to the active form.
	if a.currentView == messages.ViewAddTask || a.currentView == messages.ViewEditTask {
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) forwardToTasks(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.tasksView, cmd = a.tasksView.Update(msg)
	return cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewAddTask:
		a.statusBar.SetFormMode(true)
		return a.formView.StartAdd()
	case messages.ViewEditTask:
		a.statusBar.SetFormMode(true)
		return nil
	case messages.ViewTasks, messages.ViewHelp:
		a.formView.Reset()
	}
	a.statusBar.SetFormMode(false)
	return nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.err != nil {
		if keymap.Matches(msg.String(), a.keymap.Dismiss) {
			a.err = nil
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewTasks:
		if !a.tasksView.Confirming() {
			switch {
			case keymap.Matches(msg.String(), a.keymap.Quit):
				return a, tea.Quit
			case keymap.Matches(msg.String(), a.keymap.Help):
				return a, a.switchTo(messages.ViewHelp)
			}
		}
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.ViewAddTask, messages.ViewEditTask:
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		switch msg.String() {
		case "esc", "?", "q":
			return a, a.switchTo(messages.ViewTasks)
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Starting..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAddTask, messages.ViewEditTask:
		body = a.formView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.tasksView.View()
	}

	if a.err != nil {
		body = a.viewError()
	}

	bodyHeight := max(a.height-1, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		a.statusBar.View(),
	)
}

func (a *App) viewError() string {
	modal := a.styles.Modal.Render(
		a.styles.Error.Render("Error") + "\n\n" +
			a.err.Error() + "\n\n" +
			a.styles.Help.Render("[enter] ok"),
	)
	return lipgloss.Place(a.width, max(a.height-1, 1), lipgloss.Center, lipgloss.Center, modal)
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the error shown in the modal, if any.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.tasksView.SetDimensions(width, height-1)
	a.formView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
