package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/editaudio/internal/logging"
)

// ErrEditorUnavailable is returned while an editor is considered broken
// after repeated launch failures
var ErrEditorUnavailable = errors.New("editor failed repeatedly")

// BreakerLauncher wraps a launcher with one circuit breaker per editor path.
// Once an editor failed maxFailures times in a row further launches are
// refused until the cooldown passed, so the user gets asked to choose
// another editor instead of retrying a broken one.
type BreakerLauncher struct {
	next        Launcher
	maxFailures uint32
	cooldown    time.Duration

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewBreakerLauncher creates a breaker around next
func NewBreakerLauncher(next Launcher, maxFailures uint32, cooldown time.Duration) *BreakerLauncher {
	if maxFailures == 0 {
		maxFailures = 1
	}
	return &BreakerLauncher{
		next:        next,
		maxFailures: maxFailures,
		cooldown:    cooldown,
		breakers:    make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (b *BreakerLauncher) breaker(editorPath string) *gobreaker.CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cb, ok := b.breakers[editorPath]; ok {
		return cb
	}

	log := logging.NewLogger(context.Background()).WithField("editor", editorPath)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        editorPath,
		MaxRequests: 1,
		Timeout:     b.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= b.maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("editor breaker %s -> %s", from, to)
		},
	})
	b.breakers[editorPath] = cb
	return cb
}

// Launch forwards to the wrapped launcher unless the editor's breaker is open
func (b *BreakerLauncher) Launch(ctx context.Context, editorPath string, files []string) error {
	_, err := b.breaker(editorPath).Execute(func() (interface{}, error) {
		return nil, b.next.Launch(ctx, editorPath, files)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrEditorUnavailable, editorPath)
	}
	return err
}

// State returns the breaker state for an editor path
func (b *BreakerLauncher) State(editorPath string) gobreaker.State {
	return b.breaker(editorPath).State()
}

// Name returns the wrapped launcher name
func (b *BreakerLauncher) Name() string {
	return fmt.Sprintf("%s (breaker)", b.next.Name())
}
