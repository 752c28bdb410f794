// internal/state/manager.go
package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/compare"
	"github.com/your-org/storefront-state/internal/domain/order"
	"github.com/your-org/storefront-state/internal/domain/review"
	"github.com/your-org/storefront-state/internal/domain/saved"
	"github.com/your-org/storefront-state/internal/domain/subscription"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/remote"
	"github.com/your-org/storefront-state/internal/session"
)

// Container holds one session's state services. It is the mounted view
// tree analog: created lazily on first use, torn down on release.
type Container struct {
	Session      *session.Session
	Cart         *cart.Service
	Wishlist     *wishlist.Service
	Saved        *saved.Service
	Compare      *compare.List
	Subscription *subscription.Service
	Usage        *subscription.UsageService
	Orders       *order.Service
	Reviews      *review.Service

	cancel context.CancelFunc
}

// Prefetch warms every cached collection. Each fetch reports its own
// failures; prefetching is best effort.
func (c *Container) Prefetch(ctx context.Context) {
	_ = c.Cart.Fetch(ctx)
	_ = c.Wishlist.Fetch(ctx)
	_ = c.Saved.Fetch(ctx)
	_ = c.Subscription.Fetch(ctx)
	_ = c.Usage.Fetch(ctx)
}

func (c *Container) stop() {
	c.Subscription.Stop()
	c.Usage.Stop()
	if c.cancel != nil {
		c.cancel()
	}
}

// Manager creates and caches one container per authenticated user
type Manager struct {
	client   *remote.Client
	notifier notify.Notifier
	cfg      *config.Config
	log      *logrus.Logger

	mu         sync.Mutex
	containers map[uint]*Container
}

// NewManager creates the container manager
func NewManager(client *remote.Client, notifier notify.Notifier, cfg *config.Config, log *logrus.Logger) *Manager {
	return &Manager{
		client:     client,
		notifier:   notifier,
		cfg:        cfg,
		log:        log,
		containers: make(map[uint]*Container),
	}
}

// Get returns the container for the session's user, building it on
// first use. Anonymous sessions get a transient container that is never
// cached or watched; its mutating operations fail with AuthRequired.
func (m *Manager) Get(sess *session.Session) *Container {
	userID, ok := sess.UserID()
	if !ok {
		return m.build(sess, false)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, exists := m.containers[userID]; exists {
		return c
	}

	c := m.build(sess, true)
	m.containers[userID] = c
	return c
}

// Release tears down a user's container and cancels its watches
func (m *Manager) Release(userID uint) {
	m.mu.Lock()
	c, exists := m.containers[userID]
	delete(m.containers, userID)
	m.mu.Unlock()

	if exists {
		c.stop()
	}
}

// Close releases every container
func (m *Manager) Close() {
	m.mu.Lock()
	containers := m.containers
	m.containers = make(map[uint]*Container)
	m.mu.Unlock()

	for _, c := range containers {
		c.stop()
	}
}

func (m *Manager) build(sess *session.Session, watched bool) *Container {
	userID, _ := sess.UserID()

	var watchSubscription, watchProducts subscription.WatchFunc
	if watched {
		watchSubscription = func() (<-chan struct{}, func()) {
			return m.client.Feed.Watch(remote.TableSubscriptions, userID)
		}
		// Usage invalidation is deliberately coarse: any product change
		// anywhere re-fetches.
		watchProducts = func() (<-chan struct{}, func()) {
			return m.client.Feed.Watch(remote.TableProducts, 0)
		}
	}

	cartService := cart.NewService(m.client.Cart, sess, m.notifier, m.log)

	c := &Container{
		Session:      sess,
		Cart:         cartService,
		Wishlist:     wishlist.NewService(m.client.Wishlist, sess, m.notifier, m.log),
		Saved:        saved.NewService(m.client.Saved, cartService, sess, m.notifier, m.log),
		Compare:      compare.Load(m.cfg.State.CompareDir, userID, m.cfg.State.MaxCompareItems, m.log),
		Subscription: subscription.NewService(m.client.Procs, sess, m.notifier, watchSubscription, m.cfg.State.ExpiryReminderDay, m.log),
		Usage:        subscription.NewUsageService(m.client.Procs, sess, m.notifier, watchProducts, m.log),
		Orders:       order.NewService(m.client.Orders, cartService, sess, m.notifier, m.log),
		Reviews:      review.NewService(m.client.Reviews, sess, m.notifier, m.log),
	}

	if watched {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.Subscription.Start(ctx)
		c.Usage.Start(ctx)
	}

	return c
}
