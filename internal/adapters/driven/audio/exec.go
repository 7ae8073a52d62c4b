package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/custodia-labs/chime/internal/logger"
)

const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// checkFile fails if path cannot be played because it no longer exists.
// Started commands report a missing file only after they exit, which is
// too late for the caller to fall back.
func checkFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sound file: %w", err)
	}
	return nil
}

// startDetached starts cmd and reaps it in the background.
// A non-zero exit is logged, never returned.
func startDetached(ctx context.Context, cmd *exec.Cmd) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.L().Warn().
				Str("command", cmd.Path).
				Strs("args", cmd.Args[1:]).
				Err(err).
				Msg("audio command exited with error")
		}
	}()
	return nil
}
