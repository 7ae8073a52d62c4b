package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
)

// Ensure CommandPlayer implements the interface.
var _ driven.Player = (*CommandPlayer)(nil)

// playerCommand describes one audio command. argv returns the arguments
// that follow the executable for a given file.
type playerCommand struct {
	name string
	argv func(path string) []string
}

func appendPath(flags ...string) func(string) []string {
	return func(path string) []string {
		return append(append([]string{}, flags...), path)
	}
}

// powershellArgv plays a file through System.Media.SoundPlayer.
// SoundPlayer only supports WAV; other formats fail and fall back.
func powershellArgv(path string) []string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return []string{
		"-NoProfile", "-NonInteractive", "-Command",
		"(New-Object Media.SoundPlayer " + quoted + ").PlaySync()",
	}
}

// candidates lists players per platform, most preferred first.
var candidates = map[string][]playerCommand{
	osDarwin: {
		{name: "afplay", argv: appendPath()},
	},
	osLinux: {
		{name: "paplay", argv: appendPath()},
		{name: "aplay", argv: appendPath("-q")},
		{name: "ffplay", argv: appendPath("-nodisp", "-autoexit", "-loglevel", "quiet")},
		{name: "mpv", argv: appendPath("--no-video", "--really-quiet")},
	},
	osWindows: {
		{name: "powershell", argv: powershellArgv},
	},
}

// CommandPlayer plays files by starting an external audio command.
type CommandPlayer struct {
	path string // resolved executable
	cmd  playerCommand
}

// NewCommandPlayer returns a player for the current platform.
//
// A non-empty override is split on whitespace; its first field is the
// executable and the file path is appended after the remaining fields.
// Otherwise the first installed candidate for the platform is used.
func NewCommandPlayer(override string) (*CommandPlayer, error) {
	return newCommandPlayer(runtime.GOOS, override, exec.LookPath)
}

func newCommandPlayer(goos, override string, lookPath func(string) (string, error)) (*CommandPlayer, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		resolved, err := lookPath(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: configured player %q: %v", domain.ErrNoPlayer, fields[0], err)
		}
		return &CommandPlayer{
			path: resolved,
			cmd:  playerCommand{name: fields[0], argv: appendPath(fields[1:]...)},
		}, nil
	}

	list, ok := candidates[goos]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}

	names := make([]string, 0, len(list))
	for _, c := range list {
		if resolved, err := lookPath(c.name); err == nil {
			return &CommandPlayer{path: resolved, cmd: c}, nil
		}
		names = append(names, c.name)
	}
	return nil, fmt.Errorf("%w: install one of %s", domain.ErrNoPlayer, strings.Join(names, ", "))
}

// Name returns the player command name.
func (p *CommandPlayer) Name() string {
	return p.cmd.name
}

// Args returns the arguments the player would be started with for path.
func (p *CommandPlayer) Args(path string) []string {
	return p.cmd.argv(path)
}

// Play starts the player for path without waiting for it to finish.
func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	if err := checkFile(path); err != nil {
		return err
	}
	return startDetached(ctx, exec.Command(p.path, p.cmd.argv(path)...))
}
