// internal/domain/review/service_test.go
package review

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

type voteKey struct {
	reviewID uint
	userID   uint
}

type fakeStore struct {
	mu      sync.Mutex
	reviews []Review
	votes   map[voteKey]bool
}

func (f *fakeStore) Reviews(_ context.Context, productID uint) ([]Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertVote(_ context.Context, reviewID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := voteKey{reviewID: reviewID, userID: userID}
	if f.votes[key] {
		return outcome.ErrConflict
	}
	if f.votes == nil {
		f.votes = make(map[voteKey]bool)
	}
	f.votes[key] = true
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sent) == 0 {
		return notify.Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestVoteHelpful(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewService(&fakeStore{}, session.ForUser(1, "buyer@example.com", false), rec, testLogger())

	require.NoError(t, svc.VoteHelpful(context.Background(), 7))

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, n.Level)
}

func TestDuplicateVoteIsReportedAsInfo(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewService(&fakeStore{}, session.ForUser(1, "buyer@example.com", false), rec, testLogger())

	require.NoError(t, svc.VoteHelpful(context.Background(), 7))

	err := svc.VoteHelpful(context.Background(), 7)
	require.ErrorIs(t, err, outcome.ErrConflict)

	// The duplicate vote reads as a friendly note, not a failure
	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelInfo, n.Level)
}

func TestVoteRequiresUser(t *testing.T) {
	svc := NewService(&fakeStore{}, session.Anonymous(), &recordingNotifier{}, testLogger())

	err := svc.VoteHelpful(context.Background(), 7)
	require.ErrorIs(t, err, outcome.ErrAuthRequired)
}

func TestForProductFiltersByProduct(t *testing.T) {
	store := &fakeStore{reviews: []Review{
		{ID: 1, ProductID: 10, Rating: 5},
		{ID: 2, ProductID: 11, Rating: 3},
	}}
	svc := NewService(store, session.Anonymous(), &recordingNotifier{}, testLogger())

	reviews, err := svc.ForProduct(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, uint(1), reviews[0].ID)
}
