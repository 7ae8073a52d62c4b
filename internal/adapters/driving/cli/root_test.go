package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, path := range [][]string{
		{"run"}, {"play"}, {"config"}, {"tui"}, {"version"}, {"mcp", "serve"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRootCmd_ShowsHelpWithoutTerminal(t *testing.T) {
	t.Cleanup(resetCommandState)
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	defer func() { stdoutIsTerminal = orig }()

	out, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, out, "chime plays audio files periodically")
	assert.Nil(t, current)
}

func TestServices_NotConfigured(t *testing.T) {
	t.Cleanup(resetCommandState)
	SetServicesFactory(nil)

	_, err := execute(t, "config")

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestServices_FactoryError(t *testing.T) {
	t.Cleanup(resetCommandState)
	boom := errors.New("boom")
	SetServicesFactory(func(string) (*Services, error) { return nil, boom })

	_, err := execute(t, "config")

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, current)
}

func TestServices_PassesConfigDir(t *testing.T) {
	t.Cleanup(resetCommandState)
	var got string
	SetServicesFactory(func(dir string) (*Services, error) {
		got = dir
		return nil, errors.New("stop")
	})

	_, _ = execute(t, "--config-dir", "/tmp/chime-test", "config")

	assert.Equal(t, "/tmp/chime-test", got)
}

func TestCloseServices_StopsBackgroundAndCloses(t *testing.T) {
	t.Cleanup(resetCommandState)
	stopped := make(chan struct{})
	closed := false
	SetServicesFactory(func(string) (*Services, error) {
		return &Services{
			Start: func(ctx context.Context) {
				<-ctx.Done()
				close(stopped)
			},
			Close: func() { closed = true },
		}, nil
	})

	s, err := services(rootCmd)
	require.NoError(t, err)
	require.NotNil(t, s)

	closeServices()

	assert.True(t, closed)
	assert.Nil(t, current)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("background loop was not cancelled")
	}
}

func TestCloseServices_NothingBuilt(t *testing.T) {
	assert.NotPanics(t, closeServices)
}
