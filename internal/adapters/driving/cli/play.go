package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a sound file once",
	Long: `Plays FILE once through the configured audio player, falling back to
the default application for the file type. Useful to check that a file
and the player work before scheduling it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	ev := s.Playback.Play(commandContext(cmd), "", path)
	cmd.Println(formatEvent(ev))
	if !ev.Succeeded() {
		return ev.Err
	}
	return nil
}
