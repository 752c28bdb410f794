// internal/domain/saved/service.go
package saved

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/lifecycle"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// Store is the remote saved-for-later collection
type Store interface {
	Entries(ctx context.Context, userID uint) ([]Entry, error)
	Insert(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, entryID, userID uint) error
}

// Service caches one user's saved-for-later list. MoveToCart is a saga:
// the cart insert commits first and is never rolled back if the delete
// that follows fails.
type Service struct {
	store    Store
	cart     *cart.Service
	sess     *session.Session
	notifier notify.Notifier
	log      *logrus.Entry

	mu       sync.Mutex
	state    lifecycle.State
	entries  []Entry
	inFlight int
	lastErr  error
}

// NewService creates a saved-for-later service bound to one session
func NewService(store Store, cartService *cart.Service, sess *session.Session, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		cart:     cartService,
		sess:     sess,
		notifier: notifier,
		log:      log.WithField("component", "saved_for_later"),
	}
}

// Fetch loads the saved list; a no-op without a user
func (s *Service) Fetch(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		return nil
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Saved for later", "Failed to load saved items"))
		return err
	}
	return nil
}

// Save parks a product (and quantity) for later
func (s *Service) Save(ctx context.Context, productID uint, quantity int) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to save items"))
		return outcome.ErrAuthRequired
	}

	if quantity < 1 {
		quantity = 1
	}

	s.beginLoad()
	err := s.store.Insert(ctx, &Entry{UserID: userID, ProductID: productID, Quantity: quantity})
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("save for later failed")
		s.notifier.Notify(notify.Error("Saved for later", "Failed to save item"))
		return outcome.Remote("save for later", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Saved for later", "Failed to refresh saved items"))
		return err
	}

	s.notifier.Notify(notify.Success("Saved for later", "Item saved for later"))
	return nil
}

// Remove deletes a saved entry
func (s *Service) Remove(ctx context.Context, entryID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to update saved items"))
		return outcome.ErrAuthRequired
	}

	s.beginLoad()
	err := s.store.Delete(ctx, entryID, userID)
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("remove saved entry failed")
		s.notifier.Notify(notify.Error("Saved for later", "Failed to remove item"))
		return outcome.Remote("remove saved entry", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Saved for later", "Failed to refresh saved items"))
		return err
	}
	return nil
}

// MoveToCart moves a saved entry into the cart: (1) merge into the cart
// through the cart service's add rule, (2) only on success delete the
// entry, (3) re-fetch. A step-2 failure leaves a harmless duplicate and
// is reported as needing reconciliation.
func (s *Service) MoveToCart(ctx context.Context, entryID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to move items to your cart"))
		return outcome.ErrAuthRequired
	}

	entry, found := s.entryByID(entryID)
	if !found {
		return outcome.ErrNotFound
	}

	if err := s.cart.Add(ctx, entry.ProductID, entry.Quantity); err != nil {
		return err
	}

	s.beginLoad()
	err := s.store.Delete(ctx, entryID, userID)
	s.endLoad()

	if err != nil {
		// The cart insert already committed; the leftover saved entry is
		// repaired by a later cleanup, not rolled back here.
		s.log.WithError(err).WithField("entry_id", entryID).Warn("saved entry not removed after move to cart")
		s.notifier.Notify(notify.Error("Saved for later", "Item was added to your cart but could not be removed from saved items"))
		return outcome.NeedsReconciliation("move to cart", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Saved for later", "Failed to refresh saved items"))
		return err
	}

	s.notifier.Notify(notify.Success("Saved for later", "Item moved to cart"))
	return nil
}

// Entries returns a copy of the cached saved list
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
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

func (s *Service) entryByID(entryID uint) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entryID {
			return s.entries[i], true
		}
	}
	return Entry{}, false
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
		return outcome.Remote("fetch saved entries", err)
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
