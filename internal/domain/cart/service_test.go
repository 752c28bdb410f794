// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-state/internal/domain/lifecycle"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

type fakeStore struct {
	mu     sync.Mutex
	nextID uint
	lines  []Line

	failLines     error
	failDeleteAll error
}

func (f *fakeStore) Lines(_ context.Context, userID uint) ([]Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failLines != nil {
		return nil, f.failLines
	}

	var out []Line
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, line *Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// One line per (user, product), like the backing unique index
	for _, l := range f.lines {
		if l.UserID == line.UserID && l.ProductID == line.ProductID {
			return outcome.ErrConflict
		}
	}

	f.nextID++
	line.ID = f.nextID
	f.lines = append(f.lines, *line)
	return nil
}

func (f *fakeStore) UpdateQuantity(_ context.Context, lineID, userID uint, quantity int) error {
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

func (f *fakeStore) Delete(_ context.Context, lineID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.lines {
		if f.lines[i].ID == lineID && f.lines[i].UserID == userID {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return outcome.ErrNotFound
}

func (f *fakeStore) DeleteAll(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDeleteAll != nil {
		return f.failDeleteAll
	}

	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
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

func TestAddRequiresUser(t *testing.T) {
	svc := NewService(&fakeStore{}, session.Anonymous(), discardNotifier{}, testLogger())

	err := svc.Add(context.Background(), 10, 1)
	require.ErrorIs(t, err, outcome.ErrAuthRequired)
	assert.Empty(t, svc.Lines())
}

func TestAddMergesSameProduct(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 10, 1))
	require.NoError(t, svc.Add(context.Background(), 10, 2))

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(10), lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, svc.ItemCount())
}

func TestAddMergesBackendLineMissingFromCache(t *testing.T) {
	store := &fakeStore{
		nextID: 1,
		lines:  []Line{{ID: 1, UserID: 1, ProductID: 10, Quantity: 2}},
	}
	// Fresh service: the backend row exists but the cache is empty.
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 10, 1))

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(10), lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, svc.ItemCount())
}

func TestAddClampsQuantityToOne(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 10, 0))

	line, ok := svc.LineFor(10)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 10, 2))
	line, ok := svc.LineFor(10)
	require.True(t, ok)

	require.NoError(t, svc.UpdateQuantity(context.Background(), line.ID, 0))

	assert.Empty(t, svc.Lines())
	assert.Equal(t, 0, svc.ItemCount())
}

func TestClearIsOptimistic(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	require.NoError(t, svc.Add(context.Background(), 10, 2))
	require.NoError(t, svc.Add(context.Background(), 11, 1))

	store.failDeleteAll = errors.New("connection reset")

	err := svc.Clear(context.Background())
	require.Error(t, err)
	assert.True(t, outcome.IsRemote(err))

	// The cache empties before the delete is confirmed; the failure does
	// not restore it.
	assert.Empty(t, svc.Lines())
	assert.Equal(t, 0, svc.ItemCount())
}

func TestFetchErrorMarksStateErrored(t *testing.T) {
	store := &fakeStore{failLines: errors.New("connection reset")}
	svc := newTestService(store)

	err := svc.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, lifecycle.Errored, svc.State())
	assert.Error(t, svc.Err())
}

func TestFetchIsNoOpForAnonymous(t *testing.T) {
	store := &fakeStore{failLines: errors.New("must not be called")}
	svc := NewService(store, session.Anonymous(), discardNotifier{}, testLogger())

	require.NoError(t, svc.Fetch(context.Background()))
	assert.Equal(t, lifecycle.Uninitialized, svc.State())
}
