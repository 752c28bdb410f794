// internal/domain/cart/service.go
package cart

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

// Store is the remote collection the cart rows live in. All mutations are
// scoped by (id, user) so one user can never touch another's rows.
type Store interface {
	Lines(ctx context.Context, userID uint) ([]Line, error)
	Insert(ctx context.Context, line *Line) error
	UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) error
	Delete(ctx context.Context, lineID, userID uint) error
	DeleteAll(ctx context.Context, userID uint) error
}

// Service owns the authoritative local read model of one user's cart.
// Mutations go read-merge-write against the cached copy and always finish
// with a full re-fetch; overlapping calls are allowed to race and the
// last completed re-fetch wins.
type Service struct {
	store    Store
	sess     *session.Session
	notifier notify.Notifier
	log      *logrus.Entry

	mu        sync.Mutex
	state     lifecycle.State
	lines     []Line
	itemCount int
	inFlight  int
	lastErr   error
}

// NewService creates a cart service bound to one session
func NewService(store Store, sess *session.Session, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		sess:     sess,
		notifier: notifier,
		log:      log.WithField("component", "cart"),
	}
}

// Fetch loads all cart lines for the session user. Without a user it is
// a no-op: an anonymous visitor simply has no cart here.
func (s *Service) Fetch(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		return nil
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Cart", "Failed to load cart"))
		return err
	}
	return nil
}

// Add puts quantity of a product in the cart, merging with an existing
// line for the same product. The merge reads the local cache, not the
// backend, so two overlapping adds can lose an update.
func (s *Service) Add(ctx context.Context, productID uint, quantity int) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to add items to your cart"))
		return outcome.ErrAuthRequired
	}

	if quantity < 1 {
		quantity = 1
	}

	existing := s.lineFor(productID)

	s.beginLoad()
	var err error
	if existing != nil {
		err = s.store.UpdateQuantity(ctx, existing.ID, userID, existing.Quantity+quantity)
	} else {
		err = s.store.Insert(ctx, &Line{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	s.endLoad()

	if errors.Is(err, outcome.ErrConflict) {
		// The cache missed a line the backend already holds. Reconcile,
		// then merge into the backend row instead of failing.
		if err := s.refresh(ctx, userID); err != nil {
			s.notifier.Notify(notify.Error("Cart", "Failed to refresh cart"))
			return err
		}

		err = nil
		if existing := s.lineFor(productID); existing != nil {
			s.beginLoad()
			err = s.store.UpdateQuantity(ctx, existing.ID, userID, existing.Quantity+quantity)
			s.endLoad()
		}
	}

	if err != nil {
		s.log.WithError(err).Warn("add to cart failed")
		s.notifier.Notify(notify.Error("Cart", "Failed to add item to cart"))
		return outcome.Remote("add to cart", err)
	}

	// Reconcile with backend truth rather than merging optimistically.
	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Cart", "Failed to refresh cart"))
		return err
	}

	s.notifier.Notify(notify.Success("Cart", "Item added to cart"))
	return nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line; a negative-quantity row must never exist.
func (s *Service) UpdateQuantity(ctx context.Context, lineID uint, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, lineID)
	}

	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to update your cart"))
		return outcome.ErrAuthRequired
	}

	s.beginLoad()
	err := s.store.UpdateQuantity(ctx, lineID, userID, quantity)
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("update quantity failed")
		s.notifier.Notify(notify.Error("Cart", "Failed to update quantity"))
		return outcome.Remote("update quantity", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Cart", "Failed to refresh cart"))
		return err
	}
	return nil
}

// Remove deletes a line from the cart
func (s *Service) Remove(ctx context.Context, lineID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to update your cart"))
		return outcome.ErrAuthRequired
	}

	s.beginLoad()
	err := s.store.Delete(ctx, lineID, userID)
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("remove from cart failed")
		s.notifier.Notify(notify.Error("Cart", "Failed to remove item"))
		return outcome.Remote("remove from cart", err)
	}

	if err := s.refresh(ctx, userID); err != nil {
		s.notifier.Notify(notify.Error("Cart", "Failed to refresh cart"))
		return err
	}

	s.notifier.Notify(notify.Success("Cart", "Item removed from cart"))
	return nil
}

// Clear deletes every line for the user. The local cache is reset before
// the delete is confirmed; if the delete fails the cache stays empty and
// the next Fetch resolves the mismatch.
func (s *Service) Clear(ctx context.Context) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to update your cart"))
		return outcome.ErrAuthRequired
	}

	s.mu.Lock()
	s.lines = nil
	s.itemCount = 0
	s.state = lifecycle.Populated
	s.lastErr = nil
	s.mu.Unlock()

	s.beginLoad()
	err := s.store.DeleteAll(ctx, userID)
	s.endLoad()

	if err != nil {
		s.log.WithError(err).Warn("clear cart failed")
		s.notifier.Notify(notify.Error("Cart", "Failed to clear cart"))
		return outcome.Remote("clear cart", err)
	}

	s.notifier.Notify(notify.Success("Cart", "Cart cleared"))
	return nil
}

// Lines returns a copy of the cached cart lines
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// ItemCount returns the cached sum of quantities
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
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

// Err returns the error from the last failed fetch, if any
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LineFor returns the cached line for a product, if present
func (s *Service) LineFor(productID uint) (Line, bool) {
	if l := s.lineFor(productID); l != nil {
		return *l, true
	}
	return Line{}, false
}

func (s *Service) lineFor(productID uint) *Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			line := s.lines[i]
			return &line
		}
	}
	return nil
}

func (s *Service) refresh(ctx context.Context, userID uint) error {
	s.beginLoad()
	lines, err := s.store.Lines(ctx, userID)
	s.endLoad()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = lifecycle.Errored
		s.lastErr = err
		return outcome.Remote("fetch cart", err)
	}

	count := 0
	for _, l := range lines {
		count += l.Quantity
	}

	s.lines = lines
	s.itemCount = count
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
