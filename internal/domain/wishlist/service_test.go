// internal/domain/wishlist/service_test.go
package wishlist

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

type fakeStore struct {
	mu      sync.Mutex
	nextID  uint
	entries []Entry
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

	// Unique on (user, product), like the backing table
	for _, e := range f.entries {
		if e.UserID == entry.UserID && e.ProductID == entry.ProductID {
			return outcome.ErrConflict
		}
	}

	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStore) DeleteByProduct(_ context.Context, productID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ProductID == productID && f.entries[i].UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return outcome.ErrNotFound
}

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Notification) {}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(store Store) *Service {
	return NewService(store, session.ForUser(1, "buyer@example.com", false), discardNotifier{}, testLogger())
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	svc := newTestService(&fakeStore{})

	require.NoError(t, svc.Toggle(context.Background(), 42))
	assert.True(t, svc.IsIn(42))
	assert.Equal(t, 1, svc.Count())

	require.NoError(t, svc.Toggle(context.Background(), 42))
	assert.False(t, svc.IsIn(42))
	assert.Equal(t, 0, svc.Count())
}

func TestAddDuplicateIsBenign(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 42))

	// A second add hits the unique constraint. The cache was just stale;
	// the call succeeds and the list stays intact.
	require.NoError(t, svc.Add(context.Background(), 42))
	assert.True(t, svc.IsIn(42))
	assert.Equal(t, 1, svc.Count())
}

func TestAddRequiresUser(t *testing.T) {
	svc := NewService(&fakeStore{}, session.Anonymous(), discardNotifier{}, testLogger())

	err := svc.Add(context.Background(), 42)
	require.ErrorIs(t, err, outcome.ErrAuthRequired)
}

func TestRemoveUnknownProduct(t *testing.T) {
	svc := newTestService(&fakeStore{})

	err := svc.Remove(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, outcome.IsRemote(err))
}
