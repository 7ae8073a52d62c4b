// Package taskform provides the add and edit task forms for the TUI.
package taskform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

// ErrNoRegistry is reported when the form has no task registry.
var ErrNoRegistry = errors.New("task registry not available")

// AudioExtensions are the file types offered by the file picker.
// Typed paths are not restricted.
var AudioExtensions = []string{
	".wav", ".mp3", ".ogg", ".oga", ".flac", ".aif", ".aiff", ".m4a", ".aac", ".opus", ".wma",
}

// Mode selects between adding a task and editing one.
type Mode int

const (
	// ModeAdd asks for a file and an interval.
	ModeAdd Mode = iota
	// ModeEdit asks for a new interval only.
	ModeEdit
)

const (
	focusFile = iota
	focusInterval
)

// View is the task form.
type View struct {
	styles   *styles.Styles
	registry driving.TaskRegistry

	mode            Mode
	task            domain.TaskSnapshot // edited task
	defaultInterval string

	file     *input.Field
	interval *input.Field
	focus    int

	picker   filepicker.Model
	browsing bool

	width  int
	height int
	ready  bool
}

// NewView creates a task form. defaultInterval pre-fills the interval
// field when adding.
func NewView(s *styles.Styles, registry driving.TaskRegistry, defaultInterval string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if strings.TrimSpace(defaultInterval) == "" {
		defaultInterval = domain.DefaultIntervalText
	}
	return &View{
		styles:          s,
		registry:        registry,
		defaultInterval: defaultInterval,
		file:            input.NewField(s, "Sound file", "/path/to/sound.wav"),
		interval:        input.NewField(s, "Interval (minutes)", defaultInterval),
	}
}

// StartAdd resets the form for a new task and focuses the file field.
func (v *View) StartAdd() tea.Cmd {
	v.Reset()
	v.mode = ModeAdd
	v.interval.SetValue(v.defaultInterval)
	v.focus = focusFile
	return v.updateFocus()
}

// StartEdit loads task into the form and focuses the interval field.
func (v *View) StartEdit(task domain.TaskSnapshot) tea.Cmd {
	v.Reset()
	v.mode = ModeEdit
	v.task = task
	v.file.SetValue(task.FilePath)
	v.interval.SetValue(domain.FormatMinutes(task.IntervalMinutes))
	v.focus = focusInterval
	return v.updateFocus()
}

// Init implements the view contract. Forms are started with StartAdd or
// StartEdit.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		v.SetDimensions(ws.Width, ws.Height)
	}

	if v.browsing {
		return v.updatePicker(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewTasks} }
	case "tab", "shift+tab", "up", "down":
		if v.mode == ModeAdd {
			v.focus = 1 - v.focus
			return v, v.updateFocus()
		}
		return v, nil
	case "ctrl+o":
		if v.mode == ModeAdd {
			return v, v.openPicker()
		}
		return v, nil
	case "enter":
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focus == focusFile {
		v.file, cmd = v.file.Update(msg)
	} else {
		v.interval, cmd = v.interval.Update(msg)
	}
	return v, cmd
}

func (v *View) updateFocus() tea.Cmd {
	if v.focus == focusFile {
		v.interval.Blur()
		return v.file.Focus()
	}
	v.file.Blur()
	return v.interval.Focus()
}

func (v *View) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = AudioExtensions
	fp.CurrentDirectory = pickerStart(v.file.Value())
	v.picker = fp
	v.browsing = true
	return v.picker.Init()
}

// pickerStart returns the directory of a typed path when it exists, or
// the home directory.
func pickerStart(typed string) string {
	typed = strings.TrimSpace(typed)
	if typed != "" {
		dir := typed
		if info, err := os.Stat(typed); err != nil || !info.IsDir() {
			dir = filepath.Dir(typed)
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (v *View) updatePicker(msg tea.Msg) (*View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+o":
			v.browsing = false
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if ok, path := v.picker.DidSelectFile(msg); ok {
		v.browsing = false
		v.file.SetValue(path)
		v.focus = focusInterval
		return v, v.updateFocus()
	}
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	mode := v.mode
	task := v.task
	file := v.file.Value()
	interval := v.interval.Value()

	return func() tea.Msg {
		ctx := context.Background()
		if mode == ModeEdit {
			if v.registry == nil {
				return messages.TaskUpdated{Task: task, Err: ErrNoRegistry}
			}
			t, err := v.registry.Update(ctx, task.ID, interval)
			if err != nil {
				return messages.TaskUpdated{Task: task, Err: err}
			}
			return messages.TaskUpdated{Task: t.Snapshot()}
		}

		if v.registry == nil {
			return messages.TaskAdded{Err: ErrNoRegistry}
		}
		t, err := v.registry.Add(ctx, file, interval)
		if err != nil {
			return messages.TaskAdded{Err: err}
		}
		return messages.TaskAdded{Task: t.Snapshot()}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	if v.mode == ModeEdit {
		b.WriteString(v.styles.Title.Render("Edit " + v.task.DisplayName))
	} else {
		b.WriteString(v.styles.Title.Render("Add sound"))
	}
	b.WriteString("\n\n")

	if v.browsing {
		b.WriteString(v.styles.Subtitle.Render(v.picker.CurrentDirectory))
		b.WriteString("\n")
		b.WriteString(v.picker.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] choose  [←/→] navigate  [esc] close browser"))
		return b.String()
	}

	if v.mode == ModeEdit {
		b.WriteString(v.styles.Label.Render("Sound file"))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.task.FilePath))
	} else {
		b.WriteString(v.file.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.interval.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.mode == ModeEdit {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[tab] next field  [ctrl+o] browse  [enter] add  [esc] cancel")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	fieldWidth := min(width-4, 80)
	v.file.SetWidth(fieldWidth)
	v.interval.SetWidth(fieldWidth)
}

// Reset clears the form.
func (v *View) Reset() {
	v.mode = ModeAdd
	v.task = domain.TaskSnapshot{}
	v.file.Reset()
	v.interval.Reset()
	v.file.Blur()
	v.interval.Blur()
	v.focus = focusFile
	v.browsing = false
}

// Mode returns the current form mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Browsing reports whether the file picker is open.
func (v *View) Browsing() bool {
	return v.browsing
}

// Values returns the typed file path and interval.
func (v *View) Values() (file, interval string) {
	return v.file.Value(), v.interval.Value()
}
