package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chime/internal/adapters/driving/tui"
	"github.com/custodia-labs/chime/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/logger"
)

// LogFileName is the file the TUI writes logs to, inside the config dir.
const LogFileName = "chime.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Controls:
  a        - Add a sound
  e/Enter  - Edit the selected sound's interval
  d        - Remove the selected sound
  p/Space  - Pause or resume the selected sound
  Ctrl+O   - Browse for a file (in the add form)
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in TUI: %v\n%s", r, debug.Stack())
		}
	}()

	s, err := services(cmd)
	if err != nil {
		return err
	}

	// Logs on stderr would draw over the alt screen.
	if f := openLog(s); f != nil {
		logger.SetOutput(f)
		defer func() {
			logger.SetOutput(os.Stderr)
			f.Close()
		}()
	}

	app, err := tui.NewApp(&tui.Ports{
		Registry:  s.Registry,
		Scheduler: s.Scheduler,
		History:   s.History,
		Settings:  s.Settings,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := commandContext(cmd)
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if s.OnPlayback != nil {
		s.OnPlayback(func(ev domain.PlaybackEvent) {
			p.Send(messages.PlaybackRecorded{Event: ev})
		})
		defer s.OnPlayback(nil)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// openLog opens the TUI log file next to the config file. It returns nil
// when settings are not file backed or the file cannot be opened.
func openLog(s *Services) *os.File {
	if s.Settings == nil || !filepath.IsAbs(s.Settings.Path()) {
		return nil
	}
	dir := filepath.Dir(s.Settings.Path())
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil
	}
	return f
}
