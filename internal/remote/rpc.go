// internal/remote/rpc.go
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-state/internal/domain/product"
	"github.com/your-org/storefront-state/internal/domain/subscription"
	"github.com/your-org/storefront-state/internal/session"
	"gorm.io/gorm"
)

// Procedures are the named aggregate calls of the remote interface.
// Each returns a derived snapshot computed server side; callers never
// assemble these from raw rows.
type Procedures struct {
	db *gorm.DB
}

// StoreAnalyticsSummary is the aggregate behind the seller dashboard
type StoreAnalyticsSummary struct {
	TotalOrders    int64 `json:"total_orders"`
	TotalRevenue   int64 `json:"total_revenue"` // In cents
	TotalViews     int64 `json:"total_views"`
	ActiveProducts int64 `json:"active_products"`
}

// GetUserSubscriptionStatus derives the gating snapshot from the user's
// newest subscription row. No row is not an error: the zero status is
// returned and everything stays gated off.
func (p *Procedures) GetUserSubscriptionStatus(ctx context.Context, userID uint) (subscription.Status, error) {
	var sub subscription.UserSubscription
	err := p.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return subscription.Status{}, nil
	}
	if err != nil {
		return subscription.Status{}, fmt.Errorf("failed to retrieve subscription: %w", err)
	}

	now := time.Now().UTC()

	isTrial := sub.Status == "trialing"
	periodEnd := sub.CurrentPeriodEnd
	if isTrial && sub.TrialEndsAt != nil {
		periodEnd = *sub.TrialEndsAt
	}

	isExpired := sub.Status == "expired" || sub.Status == "cancelled" || !periodEnd.After(now)

	daysRemaining := 0
	if periodEnd.After(now) {
		daysRemaining = int(math.Ceil(periodEnd.Sub(now).Hours() / 24))
	}

	return subscription.Status{
		HasActiveSubscription: !isExpired,
		IsTrial:               isTrial,
		IsExpired:             isExpired,
		DaysRemaining:         daysRemaining,
		PlanName:              sub.Plan.Name,
		MaxProducts:           sub.Plan.MaxProducts,
		HasAnalytics:          sub.Plan.HasAnalytics,
	}, nil
}

// GetUserUsageStats aggregates listing and sales counts across the
// user's stores. The product limit comes from the subscription status so
// callers get one consistent snapshot.
func (p *Procedures) GetUserUsageStats(ctx context.Context, userID uint) (subscription.UsageStats, error) {
	var stats subscription.UsageStats

	ownedProducts := p.db.WithContext(ctx).
		Model(&product.Product{}).
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("stores.owner_id = ?", userID)

	var total int64
	if err := ownedProducts.Count(&total).Error; err != nil {
		return stats, fmt.Errorf("failed to count products: %w", err)
	}

	var active int64
	err := p.db.WithContext(ctx).
		Model(&product.Product{}).
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("stores.owner_id = ? AND products.is_active = ?", userID, true).
		Count(&active).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count active products: %w", err)
	}

	var totalOrders int64
	err = p.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN stores ON stores.id = orders.store_id").
		Where("stores.owner_id = ? AND orders.deleted_at IS NULL", userID).
		Count(&totalOrders).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count orders: %w", err)
	}

	var revenue int64
	err = p.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN stores ON stores.id = orders.store_id").
		Where("stores.owner_id = ? AND orders.status = ? AND orders.deleted_at IS NULL", userID, "paid").
		Select("COALESCE(SUM(orders.total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return stats, fmt.Errorf("failed to sum revenue: %w", err)
	}

	status, err := p.GetUserSubscriptionStatus(ctx, userID)
	if err != nil {
		return stats, err
	}

	stats.TotalProducts = int(total)
	stats.ActiveProducts = int(active)
	stats.TotalOrders = int(totalOrders)
	stats.TotalRevenue = revenue
	stats.ProductLimit = status.MaxProducts
	stats.UsagePercentage = subscription.Percentage(stats.TotalProducts, stats.ProductLimit)
	return stats, nil
}

// CanAddProduct answers the plan-gating predicate for a new listing
func (p *Procedures) CanAddProduct(ctx context.Context, userID uint) (bool, error) {
	status, err := p.GetUserSubscriptionStatus(ctx, userID)
	if err != nil {
		return false, err
	}
	if !status.HasActiveSubscription {
		return false, nil
	}
	if status.MaxProducts == nil {
		return true, nil
	}

	var total int64
	err = p.db.WithContext(ctx).
		Model(&product.Product{}).
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("stores.owner_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}

	return int(total) < *status.MaxProducts, nil
}

// GetLowStockProducts lists the user's products at or below their
// low-stock threshold
func (p *Procedures) GetLowStockProducts(ctx context.Context, userID uint) ([]product.Product, error) {
	var products []product.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("stores.owner_id = ? AND products.is_active = ? AND products.inventory_count <= products.low_stock_threshold", userID, true).
		Order("products.inventory_count asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock products: %w", err)
	}
	return products, nil
}

// GetStoreAnalyticsSummary aggregates the dashboard numbers for a store
func (p *Procedures) GetStoreAnalyticsSummary(ctx context.Context, storeID uint) (StoreAnalyticsSummary, error) {
	var summary StoreAnalyticsSummary

	err := p.db.WithContext(ctx).
		Table("orders").
		Where("store_id = ? AND deleted_at IS NULL", storeID).
		Count(&summary.TotalOrders).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count store orders: %w", err)
	}

	err = p.db.WithContext(ctx).
		Table("orders").
		Where("store_id = ? AND status = ? AND deleted_at IS NULL", storeID, "paid").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TotalRevenue).Error
	if err != nil {
		return summary, fmt.Errorf("failed to sum store revenue: %w", err)
	}

	err = p.db.WithContext(ctx).
		Model(&product.StoreView{}).
		Where("store_id = ?", storeID).
		Count(&summary.TotalViews).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count store views: %w", err)
	}

	err = p.db.WithContext(ctx).
		Model(&product.Product{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&summary.ActiveProducts).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count active products: %w", err)
	}

	return summary, nil
}

// TrackStoreView records a storefront view; viewerID is nil for
// anonymous visitors
func (p *Procedures) TrackStoreView(ctx context.Context, storeID uint, viewerID *uint) error {
	view := product.StoreView{
		StoreID:  storeID,
		ViewerID: viewerID,
		ViewedAt: time.Now().UTC(),
	}
	if err := p.db.WithContext(ctx).Create(&view).Error; err != nil {
		return fmt.Errorf("failed to record store view: %w", err)
	}
	return nil
}

// LogUserActivity writes an activity row. Callers treat this as
// fire-and-forget; see session.Provider.
func (p *Procedures) LogUserActivity(ctx context.Context, userID uint, action string, details map[string]interface{}) error {
	detailsJSON := ""
	if len(details) > 0 {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode activity details: %w", err)
		}
		detailsJSON = string(data)
	}

	entry := session.ActivityLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Details:   detailsJSON,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}
