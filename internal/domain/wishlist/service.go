// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/lifecycle"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// Store is the remote wishlist collection
type Store interface {
	Entries(ctx context.Context, userID uint) ([]Entry, error)
	Insert(ctx context.Context, entry *Entry) error
	DeleteByProduct(ctx context.Context, productID, userID uint) error
}

// Service caches one user's wishlist and exposes membership-toggle
// semantics over it.
type Service struct {
	store    Store
	sess     *session.Session
	notifier notify.Notifier
	log      *logrus.Entry

	mu       sync.Mutex
	state    lifecycle.State
	entries  []Entry
	inFlight int
	lastErr  error
}

// NewService creates a wishlist service bound to one session
func NewService(store Store, sess *session.Session, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		sess:     sess,
		notifier: notifier,
		log:      log.WithField("component", "wishlist"),
	}
}

// Fetch loads the wishlist; a no-op without a user
func (s *Service) Fetch(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		return nil
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Wishlist", "Failed to load wishlist"))
		return err
	}
	return nil
}

// Add puts a product on the wishlist
func (s *Service) Add(ctx context.Context, productID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to save items"))
		return outcome.ErrAuthRequired
	}

	s.beginLoad()
	err := s.store.Insert(ctx, &Entry{UserID: userID, ProductID: productID})
	s.endLoad()

	if errors.Is(err, outcome.ErrConflict) {
		// The cache was stale: the product is already on the list. Treat
		// as done and reconcile.
		if err := s.refresh(ctx, userID); err != nil {
			return err
		}
		s.notifier.Notify(notify.Info("Wishlist", "Item is already in your wishlist"))
		return nil
	}
	if err != nil {
		s.log.WithError(err).Warn("add to wishlist failed")
		s.notifier.Notify(notify.Error("Wishlist", "Failed to add item"))
		return outcome.Remote("add to wishlist", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Wishlist", "Failed to refresh wishlist"))
		return err
	}

	s.notifier.Notify(notify.Success("Wishlist", "Added to wishlist"))
	return nil
}

// Remove takes a product off the wishlist
func (s *Service) Remove(ctx context.Context, productID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to update your wishlist"))
		return outcome.ErrAuthRequired
	}

	s.beginLoad()
	err := s.store.DeleteByProduct(ctx, productID, userID)
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("remove from wishlist failed")
		s.notifier.Notify(notify.Error("Wishlist", "Failed to remove item"))
		return outcome.Remote("remove from wishlist", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Wishlist", "Failed to refresh wishlist"))
		return err
	}

	s.notifier.Notify(notify.Success("Wishlist", "Removed from wishlist"))
	return nil
}

// Toggle flips membership for a product. The branch is decided against
// the local cache, not the backend, so two overlapping toggles race.
func (s *Service) Toggle(ctx context.Context, productID uint) error {
	if s.IsIn(productID) {
		return s.Remove(ctx, productID)
	}
	return s.Add(ctx, productID)
}

// IsIn is a pure lookup against the cached entries
func (s *Service) IsIn(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the cached wishlist
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Count returns the cached number of wishlist entries
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Loading reports whether any remote call is in flight
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

func (s *Service) refresh(ctx context.Context, userID uint) error {
	s.beginLoad()
	entries, err := s.store.Entries(ctx, userID)
	s.endLoad()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = lifecycle.Errored
		s.lastErr = err
		return outcome.Remote("fetch wishlist", err)
	}

	s.entries = entries
	s.state = lifecycle.Populated
	s.lastErr = nil
	return nil
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
