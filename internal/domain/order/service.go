// internal/domain/order/service.go
package order

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// Store is the remote order collection
type Store interface {
	Orders(ctx context.Context, userID uint) ([]Order, error)
	OrderLines(ctx context.Context, orderID, userID uint) ([]OrderLine, error)
}

// Service exposes the order history operations the storefront needs
type Service struct {
	store    Store
	cart     *cart.Service
	sess     *session.Session
	notifier notify.Notifier
	log      *logrus.Entry
}

// NewService creates an order service bound to one session
func NewService(store Store, cartService *cart.Service, sess *session.Session, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		cart:     cartService,
		sess:     sess,
		notifier: notifier,
		log:      log.WithField("component", "order"),
	}
}

// History fetches the user's past orders
func (s *Service) History(ctx context.Context) ([]Order, error) {
	userID, ok := s.sess.UserID()
	if !ok {
		return nil, outcome.ErrAuthRequired
	}

	orders, err := s.store.Orders(ctx, userID)
	if err != nil {
		s.notifier.Notify(notify.Error("Orders", "Failed to load order history"))
		return nil, outcome.Remote("fetch orders", err)
	}
	return orders, nil
}

// Reorder pushes every line of a past order back through the cart merge
// rule. Lines are added one by one without a transaction: a failure
// partway through leaves the earlier lines in the cart and is reported
// as needing reconciliation rather than rolled back.
func (s *Service) Reorder(ctx context.Context, orderID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to reorder"))
		return outcome.ErrAuthRequired
	}

	lines, err := s.store.OrderLines(ctx, orderID, userID)
	if err != nil {
		s.notifier.Notify(notify.Error("Orders", "Failed to load the order"))
		return outcome.Remote("fetch order lines", err)
	}
	if len(lines) == 0 {
		return outcome.ErrNotFound
	}

	added := 0
	for _, line := range lines {
		if err := s.cart.Add(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Warn("reorder stopped partway")
			if added > 0 {
				s.notifier.Notify(notify.Error("Orders", "Some items could not be added to your cart"))
				return outcome.NeedsReconciliation("reorder", err)
			}
			return err
		}
		added++
	}

	s.notifier.Notify(notify.Success("Orders", "Order items added to your cart"))
	return nil
}
