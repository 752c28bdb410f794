// internal/domain/subscription/usage.go
package subscription

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/lifecycle"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// UsageService caches the usage snapshot for one user. It watches the
// products table globally: any product change anywhere re-fetches the
// stats. Coarse, but usage is cheap to recompute and this never misses
// an update.
type UsageService struct {
	backend  Backend
	sess     *session.Session
	notifier notify.Notifier
	watch    WatchFunc
	log      *logrus.Entry

	mu       sync.Mutex
	state    lifecycle.State
	stats    UsageStats
	inFlight int
	lastErr  error

	stopOnce sync.Once
	cancel   context.CancelFunc
}

// NewUsageService creates a usage stats service bound to one session
func NewUsageService(backend Backend, sess *session.Session, notifier notify.Notifier, watch WatchFunc, log *logrus.Logger) *UsageService {
	return &UsageService{
		backend:  backend,
		sess:     sess,
		notifier: notifier,
		watch:    watch,
		log:      log.WithField("component", "usage_stats"),
	}
}

// Start begins watching the products table for changes
func (s *UsageService) Start(ctx context.Context) {
	if s.watch == nil {
		return
	}
	if _, ok := s.sess.UserID(); !ok {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	inv := newInvalidator(s.watch, func(ctx context.Context) {
		if err := s.Fetch(ctx); err != nil {
			s.log.WithError(err).Debug("invalidation re-fetch failed")
		}
	})
	go inv.run(ctx)
}

// Stop cancels the change-event watch
func (s *UsageService) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Fetch loads the usage snapshot and derives the percentage used
func (s *UsageService) Fetch(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.mu.Lock()
		s.stats = UsageStats{}
		s.state = lifecycle.Populated
		s.mu.Unlock()
		return nil
	}

	s.beginLoad()
	stats, err := s.backend.GetUserUsageStats(ctx, userID)
	s.endLoad()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = lifecycle.Errored
		s.lastErr = err
		s.notifier.Notify(notify.Error("Usage", "Failed to load usage statistics"))
		return outcome.Remote("fetch usage stats", err)
	}

	stats.UsagePercentage = Percentage(stats.TotalProducts, stats.ProductLimit)
	s.stats = stats
	s.state = lifecycle.Populated
	s.lastErr = nil
	return nil
}

// Stats returns the cached usage snapshot
func (s *UsageService) Stats() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Loading reports whether a fetch is in flight
func (s *UsageService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// State returns the cache lifecycle state
func (s *UsageService) State() lifecycle.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		return lifecycle.Loading
	}
	return s.state
}

func (s *UsageService) beginLoad() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *UsageService) endLoad() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}
