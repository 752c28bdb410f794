// internal/domain/review/service.go
package review

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/notify"
	"github.com/your-org/storefront-state/internal/session"
)

// Store is the remote review collection. InsertVote returns
// outcome.ErrConflict when the user already voted on the review.
type Store interface {
	Reviews(ctx context.Context, productID uint) ([]Review, error)
	InsertVote(ctx context.Context, reviewID, userID uint) error
}

// Service handles the review interactions the storefront needs
type Service struct {
	store    Store
	sess     *session.Session
	notifier notify.Notifier
	log      *logrus.Entry
}

// NewService creates a review service bound to one session
func NewService(store Store, sess *session.Session, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		sess:     sess,
		notifier: notifier,
		log:      log.WithField("component", "review"),
	}
}

// ForProduct fetches the reviews of a product
func (s *Service) ForProduct(ctx context.Context, productID uint) ([]Review, error) {
	reviews, err := s.store.Reviews(ctx, productID)
	if err != nil {
		s.notifier.Notify(notify.Error("Reviews", "Failed to load reviews"))
		return nil, outcome.Remote("fetch reviews", err)
	}
	return reviews, nil
}

// VoteHelpful records that the user found a review helpful. Voting
// twice is benign: the duplicate is reported as "already done", not as
// a failure.
func (s *Service) VoteHelpful(ctx context.Context, reviewID uint) error {
	userID, ok := s.sess.UserID()
	if !ok {
		s.notifier.Notify(notify.Error("Sign in required", "Please sign in to vote on reviews"))
		return outcome.ErrAuthRequired
	}

	err := s.store.InsertVote(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, outcome.ErrConflict) {
			s.notifier.Notify(notify.Info("Reviews", "You already marked this review as helpful"))
			return outcome.ErrConflict
		}
		s.log.WithError(err).Warn("helpful vote failed")
		s.notifier.Notify(notify.Error("Reviews", "Failed to record your vote"))
		return outcome.Remote("vote helpful", err)
	}

	s.notifier.Notify(notify.Success("Reviews", "Thanks for your feedback"))
	return nil
}
