package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
)

var (
	_ driven.Launcher = (*DefaultLauncher)(nil)
	_ driven.Launcher = (*RateLimitedLauncher)(nil)
)

// ErrFallbackThrottled is returned when a rate-limited launcher refuses
// to open another file.
var ErrFallbackThrottled = errors.New("default handler launch throttled")

// DefaultLauncher opens files with the platform's default handler.
type DefaultLauncher struct {
	goos string
}

// NewDefaultLauncher creates a launcher for the current platform.
func NewDefaultLauncher() *DefaultLauncher {
	return &DefaultLauncher{goos: runtime.GOOS}
}

// command builds the handler invocation for path.
func (l *DefaultLauncher) command(path string) (*exec.Cmd, error) {
	switch l.goos {
	case osDarwin:
		return exec.Command("open", path), nil
	case osLinux:
		return exec.Command("xdg-open", path), nil
	case osWindows:
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, l.goos)
	}
}

// Open hands path to the default handler without waiting.
func (l *DefaultLauncher) Open(ctx context.Context, path string) error {
	if err := checkFile(path); err != nil {
		return err
	}
	cmd, err := l.command(path)
	if err != nil {
		return err
	}
	return startDetached(ctx, cmd)
}

// RateLimitedLauncher allows at most perMinute launches per minute
// across all callers, with bursts up to perMinute.
type RateLimitedLauncher struct {
	next    driven.Launcher
	limiter *rate.Limiter
}

// NewRateLimitedLauncher wraps next with a token bucket.
// A perMinute of zero or less refuses every launch.
func NewRateLimitedLauncher(next driven.Launcher, perMinute int) *RateLimitedLauncher {
	limit := rate.Limit(0)
	burst := 0
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}
	return &RateLimitedLauncher{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Open launches path if a token is available.
// It never waits for a token; refusals return ErrFallbackThrottled.
func (l *RateLimitedLauncher) Open(ctx context.Context, path string) error {
	if !l.limiter.Allow() {
		return ErrFallbackThrottled
	}
	return l.next.Open(ctx, path)
}
