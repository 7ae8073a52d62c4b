package audio

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// installed builds a lookPath that only finds the named commands.
func installed(names ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, n := range names {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func writeSound(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bell.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))
	return path
}

func TestNewCommandPlayer_PicksFirstInstalled(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		present  []string
		wantName string
		wantArgs []string
	}{
		{"darwin", osDarwin, []string{"afplay"}, "afplay", []string{"/s.wav"}},
		{"linux paplay", osLinux, []string{"paplay", "mpv"}, "paplay", []string{"/s.wav"}},
		{"linux aplay", osLinux, []string{"aplay"}, "aplay", []string{"-q", "/s.wav"}},
		{
			"linux ffplay", osLinux, []string{"ffplay", "mpv"}, "ffplay",
			[]string{"-nodisp", "-autoexit", "-loglevel", "quiet", "/s.wav"},
		},
		{"linux mpv", osLinux, []string{"mpv"}, "mpv", []string{"--no-video", "--really-quiet", "/s.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newCommandPlayer(tt.goos, "", installed(tt.present...))

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantArgs, p.Args("/s.wav"))
		})
	}
}

func TestNewCommandPlayer_Windows(t *testing.T) {
	p, err := newCommandPlayer(osWindows, "", installed("powershell"))
	require.NoError(t, err)

	args := p.Args(`C:\Users\o'neil\bell.wav`)

	assert.Equal(t, "powershell", p.Name())
	require.Len(t, args, 4)
	assert.Equal(t, `(New-Object Media.SoundPlayer 'C:\Users\o''neil\bell.wav').PlaySync()`, args[3])
}

func TestNewCommandPlayer_NoneInstalled(t *testing.T) {
	_, err := newCommandPlayer(osLinux, "", installed())

	assert.ErrorIs(t, err, domain.ErrNoPlayer)
	assert.Contains(t, err.Error(), "paplay")
}

func TestNewCommandPlayer_UnsupportedPlatform(t *testing.T) {
	_, err := newCommandPlayer("plan9", "", installed("afplay"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestNewCommandPlayer_Override(t *testing.T) {
	p, err := newCommandPlayer(osLinux, "  mpv --volume=50 ", installed("mpv"))

	require.NoError(t, err)
	assert.Equal(t, "mpv", p.Name())
	assert.Equal(t, []string{"--volume=50", "/s.wav"}, p.Args("/s.wav"))
}

func TestNewCommandPlayer_OverrideMissing(t *testing.T) {
	_, err := newCommandPlayer(osLinux, "nosuchplayer", installed("paplay"))

	assert.ErrorIs(t, err, domain.ErrNoPlayer)
}

func TestCommandPlayer_Play(t *testing.T) {
	if runtime.GOOS == osWindows {
		t.Skip("uses the true command")
	}
	p, err := NewCommandPlayer("true")
	require.NoError(t, err)

	assert.NoError(t, p.Play(context.Background(), writeSound(t)))
}

func TestCommandPlayer_Play_MissingFile(t *testing.T) {
	p := &CommandPlayer{path: "/bin/true", cmd: playerCommand{name: "true", argv: appendPath()}}

	err := p.Play(context.Background(), filepath.Join(t.TempDir(), "gone.wav"))

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCommandPlayer_Play_CancelledContext(t *testing.T) {
	p := &CommandPlayer{path: "/bin/true", cmd: playerCommand{name: "true", argv: appendPath()}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Play(ctx, writeSound(t))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCommandPlayer_Play_StartFailure(t *testing.T) {
	p := &CommandPlayer{
		path: filepath.Join(t.TempDir(), "not-a-binary"),
		cmd:  playerCommand{name: "broken", argv: appendPath()},
	}

	assert.Error(t, p.Play(context.Background(), writeSound(t)))
}

func TestDefaultLauncher_Command(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{osDarwin, []string{"open", "/s.wav"}},
		{osLinux, []string{"xdg-open", "/s.wav"}},
		{osWindows, []string{"rundll32", "url.dll,FileProtocolHandler", "/s.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := (&DefaultLauncher{goos: tt.goos}).command("/s.wav")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestDefaultLauncher_UnsupportedPlatform(t *testing.T) {
	l := &DefaultLauncher{goos: "plan9"}

	err := l.Open(context.Background(), writeSound(t))

	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestDefaultLauncher_MissingFile(t *testing.T) {
	err := NewDefaultLauncher().Open(context.Background(), "/does/not/exist.wav")

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

type countingLauncher struct {
	opened int
	err    error
}

func (c *countingLauncher) Open(context.Context, string) error {
	c.opened++
	return c.err
}

func TestRateLimitedLauncher_AllowsBurstThenThrottles(t *testing.T) {
	next := &countingLauncher{}
	l := NewRateLimitedLauncher(next, 2)
	ctx := context.Background()

	assert.NoError(t, l.Open(ctx, "/a.wav"))
	assert.NoError(t, l.Open(ctx, "/b.wav"))
	assert.ErrorIs(t, l.Open(ctx, "/c.wav"), ErrFallbackThrottled)
	assert.Equal(t, 2, next.opened)
}

func TestRateLimitedLauncher_ZeroRefusesAll(t *testing.T) {
	next := &countingLauncher{}
	l := NewRateLimitedLauncher(next, 0)

	assert.ErrorIs(t, l.Open(context.Background(), "/a.wav"), ErrFallbackThrottled)
	assert.Zero(t, next.opened)
}

func TestRateLimitedLauncher_PassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	l := NewRateLimitedLauncher(&countingLauncher{err: boom}, 5)

	assert.ErrorIs(t, l.Open(context.Background(), "/a.wav"), boom)
}
