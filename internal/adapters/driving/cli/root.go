// Package cli provides the chime command line.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
	"github.com/custodia-labs/chime/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Services holds the core services a command works with.
type Services struct {
	Registry  driving.TaskRegistry
	Scheduler driving.TaskScheduler
	Playback  driving.PlaybackService
	History   driving.PlaybackHistory
	Settings  driving.SettingsService

	// PlayerName is the detected audio command, empty when none was found.
	PlayerName string

	// OnPlayback installs a callback for every playback event.
	// Passing nil removes it.
	OnPlayback func(func(domain.PlaybackEvent))

	// Start runs background loops until ctx is done. It may be nil.
	Start func(ctx context.Context)

	// Close stops every worker and releases resources. It may be nil.
	Close func()
}

// ServicesFactory builds Services for a configuration directory.
// An empty dir means the default location.
type ServicesFactory func(configDir string) (*Services, error)

var (
	servicesFactory ServicesFactory
	current         *Services
	stopBackground  context.CancelFunc

	verbose   bool
	configDir string
)

// stdoutIsTerminal decides whether the bare command opens the TUI.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ErrNotConfigured is returned when no services factory was installed.
var ErrNotConfigured = errors.New("services not configured")

// SetServicesFactory installs the function that wires core services.
// It is called once from main before Execute.
func SetServicesFactory(f ServicesFactory) {
	servicesFactory = f
}

var rootCmd = &cobra.Command{
	Use:   "chime",
	Short: "Play sound files on a repeating timer",
	Long: `chime plays audio files periodically. Each sound has its own interval in
minutes and runs independently of the others.

Run without arguments in a terminal to open the interactive UI, or use
"chime run" to schedule sounds from the command line.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdoutIsTerminal() {
			return cmd.Help()
		}
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.chime)")
}

// services returns the wired services, building them on first use.
// Background loops are started with the command's context.
func services(cmd *cobra.Command) (*Services, error) {
	if current != nil {
		return current, nil
	}
	if servicesFactory == nil {
		return nil, ErrNotConfigured
	}

	s, err := servicesFactory(configDir)
	if err != nil {
		return nil, fmt.Errorf("initialising: %w", err)
	}
	current = s

	if s.Settings != nil {
		for _, w := range s.Settings.Warnings() {
			logger.Warn("config: %s", w)
		}
	}
	if s.Start != nil {
		ctx, cancel := context.WithCancel(commandContext(cmd))
		stopBackground = cancel
		go s.Start(ctx)
	}
	return s, nil
}

// closeServices stops background work and workers. Safe to call when
// nothing was built.
func closeServices() {
	if stopBackground != nil {
		stopBackground()
		stopBackground = nil
	}
	if current != nil && current.Close != nil {
		current.Close()
	}
	current = nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands use for
// cancellation. Services built during the run are closed before returning.
func ExecuteContext(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}
