// internal/domain/saved/service_test.go
package saved

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
	mu      sync.Mutex
	nextID  uint
	entries []Entry

	failDelete error
}

func (f *fakeStore) Entries(_ context.Context, userID uint) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, entry *Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, entryID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete != nil {
		return f.failDelete
	}

	for i := range f.entries {
		if f.entries[i].ID == entryID && f.entries[i].UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return outcome.ErrNotFound
}

type fakeCartStore struct {
	mu     sync.Mutex
	nextID uint
	lines  []cart.Line
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

func (f *fakeCartStore) Delete(_ context.Context, lineID, userID uint) error {
	return outcome.ErrNotFound
}

func (f *fakeCartStore) DeleteAll(_ context.Context, userID uint) error {
	return nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Notification) {}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServices(store *fakeStore) (*Service, *cart.Service) {
	sess := session.ForUser(1, "buyer@example.com", false)
	log := testLogger()
	cartService := cart.NewService(&fakeCartStore{}, sess, discardNotifier{}, log)
	return NewService(store, cartService, sess, discardNotifier{}, log), cartService
}

func TestMoveToCart(t *testing.T) {
	store := &fakeStore{}
	svc, cartService := newTestServices(store)

	require.NoError(t, svc.Save(context.Background(), 10, 2))
	entries := svc.Entries()
	require.Len(t, entries, 1)

	require.NoError(t, svc.MoveToCart(context.Background(), entries[0].ID))

	assert.Empty(t, svc.Entries())
	line, ok := cartService.LineFor(10)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestMoveToCartDeleteFailureNeedsReconciliation(t *testing.T) {
	store := &fakeStore{}
	svc, cartService := newTestServices(store)

	require.NoError(t, svc.Save(context.Background(), 10, 2))
	entries := svc.Entries()
	require.Len(t, entries, 1)

	store.failDelete = errors.New("connection reset")

	err := svc.MoveToCart(context.Background(), entries[0].ID)
	require.Error(t, err)
	assert.True(t, outcome.IsReconciliation(err))

	// The cart insert committed; the saved entry is the leftover.
	_, ok := cartService.LineFor(10)
	assert.True(t, ok)
	assert.Len(t, svc.Entries(), 1)
}

func TestMoveToCartUnknownEntry(t *testing.T) {
	svc, _ := newTestServices(&fakeStore{})

	err := svc.MoveToCart(context.Background(), 99)
	require.ErrorIs(t, err, outcome.ErrNotFound)
}

func TestSaveRequiresUser(t *testing.T) {
	log := testLogger()
	sess := session.Anonymous()
	cartService := cart.NewService(&fakeCartStore{}, sess, discardNotifier{}, log)
	svc := NewService(&fakeStore{}, cartService, sess, discardNotifier{}, log)

	err := svc.Save(context.Background(), 10, 1)
	require.ErrorIs(t, err, outcome.ErrAuthRequired)
}
