// internal/domain/order/service_test.go
package order

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

type fakeStore struct {
	orders map[uint][]OrderLine
}

func (f *fakeStore) Orders(context.Context, uint) ([]Order, error) {
	var out []Order
	for id := range f.orders {
		out = append(out, Order{ID: id, UserID: 1})
	}
	return out, nil
}

func (f *fakeStore) OrderLines(_ context.Context, orderID, _ uint) ([]OrderLine, error) {
	return f.orders[orderID], nil
}

type fakeCartStore struct {
	mu     sync.Mutex
	nextID uint
	lines  []cart.Line

	failAfter int // fail inserts once this many lines exist; 0 = never
}

func (f *fakeCartStore) Lines(_ context.Context, userID uint) ([]cart.Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []cart.Line
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCartStore) Insert(_ context.Context, line *cart.Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAfter > 0 && len(f.lines) >= f.failAfter {
		return errors.New("connection reset")
	}

	f.nextID++
	line.ID = f.nextID
	f.lines = append(f.lines, *line)
	return nil
}

func (f *fakeCartStore) UpdateQuantity(_ context.Context, lineID, userID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.lines {
		if f.lines[i].ID == lineID && f.lines[i].UserID == userID {
			f.lines[i].Quantity = quantity
			return nil
		}
	}
	return outcome.ErrNotFound
}

func (f *fakeCartStore) Delete(context.Context, uint, uint) error {
	return outcome.ErrNotFound
}

func (f *fakeCartStore) DeleteAll(context.Context, uint) error {
	return nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Notification) {}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(store Store, cartStore cart.Store) (*Service, *cart.Service) {
	sess := session.ForUser(1, "buyer@example.com", false)
	log := testLogger()
	cartService := cart.NewService(cartStore, sess, discardNotifier{}, log)
	return NewService(store, cartService, sess, discardNotifier{}, log), cartService
}

func TestReorderFillsCart(t *testing.T) {
	store := &fakeStore{orders: map[uint][]OrderLine{
		5: {
			{OrderID: 5, ProductID: 10, Quantity: 2},
			{OrderID: 5, ProductID: 11, Quantity: 1},
		},
	}}
	svc, cartService := newTestService(store, &fakeCartStore{})

	require.NoError(t, svc.Reorder(context.Background(), 5))

	assert.Equal(t, 3, cartService.ItemCount())
	line, ok := cartService.LineFor(10)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestReorderUnknownOrder(t *testing.T) {
	svc, _ := newTestService(&fakeStore{orders: map[uint][]OrderLine{}}, &fakeCartStore{})

	err := svc.Reorder(context.Background(), 99)
	require.ErrorIs(t, err, outcome.ErrNotFound)
}

func TestReorderPartialFailureNeedsReconciliation(t *testing.T) {
	store := &fakeStore{orders: map[uint][]OrderLine{
		5: {
			{OrderID: 5, ProductID: 10, Quantity: 2},
			{OrderID: 5, ProductID: 11, Quantity: 1},
		},
	}}
	cartStore := &fakeCartStore{failAfter: 1}
	svc, cartService := newTestService(store, cartStore)

	err := svc.Reorder(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, outcome.IsReconciliation(err))

	// The first line landed before the failure and stays in the cart
	_, ok := cartService.LineFor(10)
	assert.True(t, ok)
}

func TestReorderRequiresUser(t *testing.T) {
	log := testLogger()
	sess := session.Anonymous()
	cartService := cart.NewService(&fakeCartStore{}, sess, discardNotifier{}, log)
	svc := NewService(&fakeStore{}, cartService, sess, discardNotifier{}, log)

	err := svc.Reorder(context.Background(), 5)
	require.ErrorIs(t, err, outcome.ErrAuthRequired)
}
