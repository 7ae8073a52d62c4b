package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration file location and the settings in effect,
with defaults applied. Values that were ignored are listed as warnings.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting in the configuration file",
	Long: `Validates VALUE for KEY and writes it to the configuration file.
Changes apply the next time chime starts.

Keys:
  scheduler.poll_interval        duration, e.g. 1s (minimum 10ms)
  playback.player                command line, empty to auto-detect
  playback.fallback              true or false
  playback.fallback_per_minute   non-negative integer
  playback.history_size          non-negative integer
  ui.default_interval            minutes, e.g. 5 or 0.5
  watch.enabled                  true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %q saved to %s\n", args[0], args[1], s.Settings.Path())
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return err
	}

	player := s.PlayerName
	if player == "" {
		player = "(none found)"
	}

	cmd.Printf("Config file: %s\n\n", s.Settings.Path())
	cmd.Println("[scheduler]")
	cmd.Printf("  poll_interval       = %s\n", settings.Scheduler.PollInterval)
	cmd.Println("[playback]")
	cmd.Printf("  player              = %q\n", settings.Playback.Player)
	cmd.Printf("  fallback            = %t\n", settings.Playback.Fallback)
	cmd.Printf("  fallback_per_minute = %d\n", settings.Playback.FallbackPerMinute)
	cmd.Printf("  history_size        = %d\n", settings.Playback.HistorySize)
	cmd.Println("[ui]")
	cmd.Printf("  default_interval    = %q\n", settings.UI.DefaultInterval)
	cmd.Println("[watch]")
	cmd.Printf("  enabled             = %t\n", settings.Watch.Enabled)
	cmd.Printf("\nDetected player: %s\n", player)

	if warnings := s.Settings.Warnings(); len(warnings) > 0 {
		cmd.Println("\nWarnings:")
		for _, w := range warnings {
			cmd.Printf("  %s\n", w)
		}
	}
	return nil
}
