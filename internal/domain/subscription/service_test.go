// internal/domain/subscription/service_test.go
package subscription

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

type fakeBackend struct {
	status    Status
	statusErr error

	stats    UsageStats
	statsErr error

	canAdd    bool
	canAddErr error
}

func (f *fakeBackend) GetUserSubscriptionStatus(context.Context, uint) (Status, error) {
	return f.status, f.statusErr
}

func (f *fakeBackend) GetUserUsageStats(context.Context, uint) (UsageStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeBackend) CanAddProduct(context.Context, uint) (bool, error) {
	return f.canAdd, f.canAddErr
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

func (r *recordingNotifier) titled(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.sent {
		if n.Title == title {
			count++
		}
	}
	return count
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSession() *session.Session {
	return session.ForUser(1, "seller@example.com", false)
}

func TestFetchEmitsExpiryReminder(t *testing.T) {
	backend := &fakeBackend{status: Status{
		HasActiveSubscription: true,
		DaysRemaining:         2,
		PlanName:              "Growth",
	}}
	rec := &recordingNotifier{}
	svc := NewService(backend, testSession(), rec, nil, 3, testLogger())

	require.NoError(t, svc.Fetch(context.Background()))
	assert.Equal(t, 1, rec.titled("Subscription expiring"))

	// The reminder is not deduplicated across fetches
	require.NoError(t, svc.Fetch(context.Background()))
	assert.Equal(t, 2, rec.titled("Subscription expiring"))
}

func TestNoReminderOutsideWindow(t *testing.T) {
	cases := map[string]Status{
		"plenty of time": {HasActiveSubscription: true, DaysRemaining: 10, PlanName: "Growth"},
		"already over":   {IsExpired: true, DaysRemaining: 0, PlanName: "Growth"},
		"trial":          {HasActiveSubscription: true, IsTrial: true, DaysRemaining: 2, PlanName: "Growth"},
	}

	for name, status := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recordingNotifier{}
			svc := NewService(&fakeBackend{status: status}, testSession(), rec, nil, 3, testLogger())

			require.NoError(t, svc.Fetch(context.Background()))
			assert.Equal(t, 0, rec.titled("Subscription expiring"))
		})
	}
}

func TestFetchWithoutSubscriptionRow(t *testing.T) {
	// The backend reports no row as a zero status, not an error
	svc := NewService(&fakeBackend{}, testSession(), &recordingNotifier{}, nil, 3, testLogger())

	require.NoError(t, svc.Fetch(context.Background()))
	status := svc.Status()
	assert.False(t, status.HasActiveSubscription)
	assert.Equal(t, 0, status.DaysRemaining)
}

func TestCanAddProductFailsClosed(t *testing.T) {
	backend := &fakeBackend{canAdd: true, canAddErr: errors.New("connection reset")}
	svc := NewService(backend, testSession(), &recordingNotifier{}, nil, 3, testLogger())

	assert.False(t, svc.CanAddProduct(context.Background()))

	backend.canAddErr = nil
	assert.True(t, svc.CanAddProduct(context.Background()))

	anon := NewService(backend, session.Anonymous(), &recordingNotifier{}, nil, 3, testLogger())
	assert.False(t, anon.CanAddProduct(context.Background()))
}

func TestUsageFetchDerivesPercentage(t *testing.T) {
	limit := 50
	backend := &fakeBackend{stats: UsageStats{
		TotalProducts: 48,
		ProductLimit:  &limit,
	}}
	svc := NewUsageService(backend, testSession(), &recordingNotifier{}, nil, testLogger())

	require.NoError(t, svc.Fetch(context.Background()))

	stats := svc.Stats()
	assert.Equal(t, 96, stats.UsagePercentage)
	assert.Equal(t, AlertCritical, stats.AlertLevel())
}

func TestPercentage(t *testing.T) {
	limit := 50
	assert.Equal(t, 96, Percentage(48, &limit))
	assert.Equal(t, 76, Percentage(38, &limit))
	assert.Equal(t, 0, Percentage(48, nil))

	zero := 0
	assert.Equal(t, 0, Percentage(48, &zero))

	three := 3
	assert.Equal(t, 33, Percentage(1, &three))
}

func TestAlertThresholds(t *testing.T) {
	assert.Equal(t, AlertNormal, UsageStats{UsagePercentage: 74}.AlertLevel())
	assert.Equal(t, AlertWarning, UsageStats{UsagePercentage: 75}.AlertLevel())
	assert.Equal(t, AlertWarning, UsageStats{UsagePercentage: 89}.AlertLevel())
	assert.Equal(t, AlertCritical, UsageStats{UsagePercentage: 90}.AlertLevel())
}

func TestInvalidatorRefetchesOnSignal(t *testing.T) {
	signals := make(chan struct{}, 8)
	watch := func() (<-chan struct{}, func()) {
		return signals, func() {}
	}

	fetched := make(chan struct{}, 8)
	inv := newInvalidator(watch, func(context.Context) {
		fetched <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go inv.run(ctx)

	signals <- struct{}{}

	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a re-fetch after a change signal")
	}
}

func TestInvalidatorStopsOnClose(t *testing.T) {
	signals := make(chan struct{})
	stopped := make(chan struct{})
	watch := func() (<-chan struct{}, func()) {
		return signals, func() { close(stopped) }
	}

	inv := newInvalidator(watch, func(context.Context) {})

	go inv.run(context.Background())
	close(signals)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the watch to be torn down when the stream closes")
	}
}
