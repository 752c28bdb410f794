// internal/remote/realtime.go
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ChangeEvent is the payload published after every write to a watched
// table. It carries which rows changed, not the new data; watchers
// re-fetch on their own.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update, delete
	Key    uint   `json:"key"`    // owning user id, 0 when not row-scoped
}

// Feed publishes and consumes table change events over Redis pub/sub
type Feed struct {
	redis *redis.Client
	log   *logrus.Entry
}

// NewFeed creates a change feed on the given Redis client
func NewFeed(rdb *redis.Client, log *logrus.Logger) *Feed {
	return &Feed{
		redis: rdb,
		log:   log.WithField("component", "change_feed"),
	}
}

// Publish emits a change event. Delivery is best effort: a failed
// publish costs a missed invalidation, never a failed write.
func (f *Feed) Publish(ctx context.Context, event ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		f.log.WithError(err).Warn("failed to encode change event")
		return
	}

	if err := f.redis.Publish(ctx, channelFor(event.Table), payload).Err(); err != nil {
		f.log.WithError(err).WithField("table", event.Table).Debug("change event publish failed")
	}
}

// Watch opens an invalidation stream for a table. A key of zero watches
// the whole table; otherwise only events for that key signal. The signal
// channel is buffered with capacity one and extra signals are dropped:
// one queued signal is enough to trigger the trailing re-fetch.
func (f *Feed) Watch(table string, key uint) (<-chan struct{}, func()) {
	sub := f.redis.Subscribe(context.Background(), channelFor(table))

	signals := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(signals)
		for {
			select {
			case <-done:
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.log.WithError(err).Warn("dropping malformed change event")
					continue
				}
				if key != 0 && event.Key != key {
					continue
				}

				select {
				case signals <- struct{}{}:
				default:
				}
			}
		}
	}()

	stop := func() {
		close(done)
		if err := sub.Close(); err != nil {
			f.log.WithError(err).Debug("change feed unsubscribe failed")
		}
	}

	return signals, stop
}

func channelFor(table string) string {
	return fmt.Sprintf("changes:%s", table)
}
