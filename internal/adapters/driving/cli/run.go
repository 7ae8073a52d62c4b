package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chime/internal/core/domain"
)

var (
	runFor   time.Duration
	runQuiet bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE=MINUTES...",
	Short: "Play sounds on a timer without the UI",
	Long: `Registers each FILE=MINUTES pair and plays the files until interrupted.
Each sound plays as soon as it is registered and then every MINUTES minutes.
MINUTES may be fractional.

Examples:
  chime run ~/sounds/bell.wav=25
  chime run stretch.mp3=45 water.ogg=0.5 --for 2h`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&runFor, "for", 0, "stop after this long (0 = until interrupted)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print playback events")
	rootCmd.AddCommand(runCmd)
}

// parseTaskArg splits FILE=MINUTES on the last '=' so paths may contain '='.
func parseTaskArg(arg string) (file, minutes string, err error) {
	i := strings.LastIndex(arg, "=")
	if i <= 0 {
		return "", "", fmt.Errorf("%w: %q is not FILE=MINUTES", domain.ErrInvalidInput, arg)
	}
	return arg[:i], arg[i+1:], nil
}

func runRun(cmd *cobra.Command, args []string) error {
	type taskArg struct{ file, minutes string }
	parsed := make([]taskArg, 0, len(args))
	for _, arg := range args {
		file, minutes, err := parseTaskArg(arg)
		if err != nil {
			return err
		}
		parsed = append(parsed, taskArg{file, minutes})
	}

	s, err := services(cmd)
	if err != nil {
		return err
	}

	// Workers print while tasks are still being added.
	out := &lockedWriter{w: cmd.OutOrStdout()}
	if s.OnPlayback != nil && !runQuiet {
		s.OnPlayback(eventPrinter(out))
		defer s.OnPlayback(nil)
	}

	ctx := commandContext(cmd)
	for _, ta := range parsed {
		task, err := s.Registry.Add(ctx, ta.file, ta.minutes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "added %s\n", task.Label())
	}
	if s.PlayerName == "" {
		fmt.Fprintln(out, "no audio player found; files will be opened with the default application")
	}

	var deadline <-chan time.Time
	if runFor > 0 {
		timer := time.NewTimer(runFor)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-ctx.Done():
	case <-deadline:
	}
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// eventPrinter returns a playback callback that writes one line per event.
// w must be safe for concurrent use.
func eventPrinter(w io.Writer) func(domain.PlaybackEvent) {
	return func(ev domain.PlaybackEvent) {
		fmt.Fprintln(w, formatEvent(ev))
	}
}

func formatEvent(ev domain.PlaybackEvent) string {
	line := fmt.Sprintf("%s %s %s", ev.At.Format(time.TimeOnly), filepath.Base(ev.Path), ev.Outcome)
	if ev.Err != nil && ev.Outcome == domain.OutcomeFailed {
		line += ": " + ev.Err.Error()
	}
	return line
}
