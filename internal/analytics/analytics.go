// Package analytics records storefront events. Tracking is always best
// effort: a failed event must never interrupt the user's flow.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Events emitted by the storefront.
const (
	EventAddToCart      = "addToCart"
	EventRemoveFromCart = "removeFromCart"
	EventOrderPlaced    = "orderPlaced"
	EventLogin          = "login"
	EventPageView       = "pageView"
)

const DefaultTimeout = 5 * time.Second

type Tracker interface {
	Track(ctx context.Context, name string, data map[string]any) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Track(context.Context, string, map[string]any) error { return nil }

// BestEffortTracker sends events in the background and swallows failures.
type BestEffortTracker struct {
	next    Tracker
	logger  zerolog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// BestEffort wraps next so that Track returns immediately and never fails.
func BestEffort(next Tracker, logger zerolog.Logger) *BestEffortTracker {
	return &BestEffortTracker{next: next, logger: logger, timeout: DefaultTimeout}
}

// WithTimeout bounds each background send.
func (t *BestEffortTracker) WithTimeout(d time.Duration) *BestEffortTracker {
	t.timeout = d
	return t
}

func (t *BestEffortTracker) Track(ctx context.Context, name string, data map[string]any) error {
	// the event outlives the request that raised it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()
		if err := t.next.Track(ctx, name, data); err != nil {
			t.logger.Debug().Err(err).Str("event", name).Msg("analytics event dropped")
		}
	}()
	return nil
}

// Wait blocks until all in-flight events have been sent or dropped.
func (t *BestEffortTracker) Wait() {
	t.wg.Wait()
}
