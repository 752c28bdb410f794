// internal/domain/subscription/invalidator.go
package subscription

import (
	"context"
)

// WatchFunc opens a change-event stream for the rows a service depends
// on. The returned channel delivers one signal per remote change; the
// stop function tears the stream down.
type WatchFunc func() (<-chan struct{}, func())

// invalidator turns change signals into re-fetches, collapsing any burst
// that arrives while a fetch is in flight into a single trailing fetch.
type invalidator struct {
	signals <-chan struct{}
	stop    func()
	refetch func(context.Context)
}

func newInvalidator(watch WatchFunc, refetch func(context.Context)) *invalidator {
	signals, stop := watch()
	return &invalidator{
		signals: signals,
		stop:    stop,
		refetch: refetch,
	}
}

func (inv *invalidator) run(ctx context.Context) {
	defer inv.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-inv.signals:
			if !ok {
				return
			}
			inv.drain()
			inv.refetch(ctx)
		}
	}
}

// drain discards signals that queued up behind the one being handled so
// a burst produces one fetch instead of one per event
func (inv *invalidator) drain() {
	for {
		select {
		case <-inv.signals:
		default:
			return
		}
	}
}
