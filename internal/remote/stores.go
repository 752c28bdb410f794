// internal/remote/stores.go
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/order"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/domain/review"
	"github.com/your-org/storefront-state/internal/domain/saved"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Table names used for change events
const (
	TableCartLines     = "cart_lines"
	TableWishlist      = "wishlist_entries"
	TableSavedForLater = "saved_for_later_entries"
	TableProducts      = "products"
	TableSubscriptions = "user_subscriptions"
	TableReviews       = "reviews"
)

// CartStore implements cart.Store against Postgres, publishing a change
// event after every successful write.
type CartStore struct {
	db   *gorm.DB
	feed *Feed
}

// Lines returns all cart lines for a user
func (s *CartStore) Lines(ctx context.Context, userID uint) ([]cart.Line, error) {
	var lines []cart.Line
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart lines: %w", err)
	}
	return lines, nil
}

// Insert creates a new cart line
func (s *CartStore) Insert(ctx context.Context, line *cart.Line) error {
	if err := s.db.WithContext(ctx).Create(line).Error; err != nil {
		return translate(err)
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableCartLines, Action: "insert", Key: line.UserID})
	return nil
}

// UpdateQuantity sets a line's quantity, scoped to (id, user)
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) error {
	result := s.db.WithContext(ctx).
		Model(&cart.Line{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return outcome.ErrNotFound
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableCartLines, Action: "update", Key: userID})
	return nil
}

// Delete removes a line, scoped to (id, user)
func (s *CartStore) Delete(ctx context.Context, lineID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&cart.Line{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return outcome.ErrNotFound
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableCartLines, Action: "delete", Key: userID})
	return nil
}

// DeleteAll removes every line for a user
func (s *CartStore) DeleteAll(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.Line{}).Error
	if err != nil {
		return translate(err)
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableCartLines, Action: "delete", Key: userID})
	return nil
}

// WishlistStore implements wishlist.Store against Postgres
type WishlistStore struct {
	db   *gorm.DB
	feed *Feed
}

// Entries returns all wishlist entries for a user
func (s *WishlistStore) Entries(ctx context.Context, userID uint) ([]wishlist.Entry, error) {
	var entries []wishlist.Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist entries: %w", err)
	}
	return entries, nil
}

// Insert adds a wishlist entry; a duplicate product maps to ErrConflict
func (s *WishlistStore) Insert(ctx context.Context, entry *wishlist.Entry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translate(err)
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableWishlist, Action: "insert", Key: entry.UserID})
	return nil
}

// DeleteByProduct removes the entry for a product, scoped to the user
func (s *WishlistStore) DeleteByProduct(ctx context.Context, productID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Delete(&wishlist.Entry{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return outcome.ErrNotFound
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableWishlist, Action: "delete", Key: userID})
	return nil
}

// SavedStore implements saved.Store against Postgres
type SavedStore struct {
	db   *gorm.DB
	feed *Feed
}

// Entries returns all saved-for-later entries for a user
func (s *SavedStore) Entries(ctx context.Context, userID uint) ([]saved.Entry, error) {
	var entries []saved.Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve saved entries: %w", err)
	}
	return entries, nil
}

// Insert adds a saved-for-later entry
func (s *SavedStore) Insert(ctx context.Context, entry *saved.Entry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translate(err)
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableSavedForLater, Action: "insert", Key: entry.UserID})
	return nil
}

// Delete removes an entry, scoped to (id, user)
func (s *SavedStore) Delete(ctx context.Context, entryID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&saved.Entry{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return outcome.ErrNotFound
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableSavedForLater, Action: "delete", Key: userID})
	return nil
}

// OrderStore implements order.Store against Postgres
type OrderStore struct {
	db *gorm.DB
}

// Orders returns a user's orders, newest first
func (s *OrderStore) Orders(ctx context.Context, userID uint) ([]order.Order, error) {
	var orders []order.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// OrderLines returns the lines of one order, verifying ownership first
func (s *OrderStore) OrderLines(ctx context.Context, orderID, userID uint) ([]order.OrderLine, error) {
	var o order.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, outcome.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	var lines []order.OrderLine
	err = s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order lines: %w", err)
	}
	return lines, nil
}

// ReviewStore implements review.Store against Postgres
type ReviewStore struct {
	db   *gorm.DB
	feed *Feed
}

// Reviews returns the approved reviews for a product
func (s *ReviewStore) Reviews(ctx context.Context, productID uint) ([]review.Review, error) {
	var reviews []review.Review
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// InsertVote records a helpful vote and bumps the review's counter. The
// unique index turns a second vote into ErrConflict before the counter
// moves.
func (s *ReviewStore) InsertVote(ctx context.Context, reviewID, userID uint) error {
	vote := review.HelpfulVote{ReviewID: reviewID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&vote).Error; err != nil {
		return translate(err)
	}

	err := s.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
	if err != nil {
		return translate(err)
	}

	s.feed.Publish(ctx, ChangeEvent{Table: TableReviews, Action: "update", Key: userID})
	return nil
}

// Approve marks a review as approved so it shows up in product listings
func (s *ReviewStore) Approve(ctx context.Context, reviewID uint) error {
	result := s.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("id = ?", reviewID).
		Update("is_approved", true)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return outcome.ErrNotFound
	}
	s.feed.Publish(ctx, ChangeEvent{Table: TableReviews, Action: "update"})
	return nil
}

// translate maps gorm errors onto the outcome taxonomy
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return outcome.ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return outcome.ErrNotFound
	default:
		return err
	}
}
