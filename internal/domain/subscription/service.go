// internal/domain/subscription/service.go
package subscription

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/lifecycle"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// Backend exposes the remote aggregate procedures this package consumes
type Backend interface {
	GetUserSubscriptionStatus(ctx context.Context, userID uint) (Status, error)
	GetUserUsageStats(ctx context.Context, userID uint) (UsageStats, error)
	CanAddProduct(ctx context.Context, userID uint) (bool, error)
}

// Service caches the derived subscription status for one user and keeps
// it fresh through change-event invalidation.
type Service struct {
	backend      Backend
	sess         *session.Session
	notifier     notify.Notifier
	watch        WatchFunc
	reminderDays int
	log          *logrus.Entry

	mu       sync.Mutex
	state    lifecycle.State
	status   Status
	inFlight int
	lastErr  error

	stopOnce sync.Once
	cancel   context.CancelFunc
}

// NewService creates a subscription status service bound to one session
func NewService(backend Backend, sess *session.Session, notifier notify.Notifier, watch WatchFunc, reminderDays int, log *logrus.Logger) *Service {
	return &Service{
		backend:      backend,
		sess:         sess,
		notifier:     notifier,
		watch:        watch,
		reminderDays: reminderDays,
		log:          log.WithField("component", "subscription"),
	}
}

// Start begins watching the user's subscription row; every change event
// triggers a full re-fetch (bursts collapse to one trailing fetch)
func (s *Service) Start(ctx context.Context) {
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
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Fetch recomputes the status from the remote aggregate. No subscription
// row is not an error: the zero status gates everything off. After each
// successful fetch an expiry reminder is emitted when the paid plan has
// three or fewer days left; repeated fetches repeat the reminder.
func (s *Service) Fetch(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.mu.Lock()
		s.status = Status{}
		s.state = lifecycle.Populated
		s.mu.Unlock()
		return nil
	}

	s.beginLoad()
	status, err := s.backend.GetUserSubscriptionStatus(ctx, userID)
	s.endLoad()

	s.mu.Lock()
	if err != nil {
		s.state = lifecycle.Errored
		s.lastErr = err
		s.mu.Unlock()
		s.notifier.Notify(notify.Error("Subscription", "Failed to load subscription status"))
		return outcome.Remote("fetch subscription status", err)
	}
	s.status = status
	s.state = lifecycle.Populated
	s.lastErr = nil
	s.mu.Unlock()

	if !status.IsTrial && status.DaysRemaining > 0 && status.DaysRemaining <= s.reminderDays {
		s.notifier.Notify(notify.Info("Subscription expiring",
			fmt.Sprintf("Your %s plan expires in %d days. Renew to keep your store active.", status.PlanName, status.DaysRemaining)))
	}

	return nil
}

// Status returns the cached derived status
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CanAddProduct asks the backend whether the plan allows another product
// listing. The answer is never cached and any failure means no.
func (s *Service) CanAddProduct(ctx context.Context) bool {
	userID, ok := s.sess.UserID()
	if !ok {
		return false
	}

	allowed, err := s.backend.CanAddProduct(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("can_add_product check failed")
		return false
	}
	return allowed
}

// Loading reports whether a fetch is in flight
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// State returns the cache lifecycle state
func (s *Service) State() lifecycle.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		return lifecycle.Loading
	}
	return s.state
}

func (s *Service) beginLoad() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *Service) endLoad() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}
