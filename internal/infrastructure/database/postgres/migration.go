// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/order"
	"github.com/your-org/storefront-state/internal/domain/product"
	"github.com/your-org/storefront-state/internal/domain/review"
	"github.com/your-org/storefront-state/internal/domain/saved"
	"github.com/your-org/storefront-state/internal/domain/subscription"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"github.com/your-org/storefront-state/internal/session"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain - Base tables
		&user.User{},

		// Marketplace catalog
		&product.Store{},
		&product.Product{},
		&product.StoreView{},

		// Plans and subscriptions
		&subscription.Plan{},
		&subscription.UserSubscription{},

		// Per-user collections
		&cart.Line{},
		&wishlist.Entry{},
		&saved.Entry{},

		// Orders
		&order.Order{},
		&order.OrderLine{},

		// Reviews
		&review.Review{},
		&review.HelpfulVote{},

		// Activity
		&session.ActivityLog{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes not covered by model tags
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_store_views_store_viewed ON store_views(store_id, viewed_at)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_user_created ON activity_logs(user_id, created_at)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData seeds plans for development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&subscription.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	starterLimit := 10
	growthLimit := 50

	plans := []subscription.Plan{
		{Name: "Starter", Price: 0, DurationDays: 30, MaxProducts: &starterLimit},
		{Name: "Growth", Price: 2900, DurationDays: 30, MaxProducts: &growthLimit, HasAnalytics: true},
		{Name: "Unlimited", Price: 9900, DurationDays: 30, HasAnalytics: true},
	}

	for i := range plans {
		if err := m.db.Create(&plans[i]).Error; err != nil {
			return fmt.Errorf("failed to seed plan %q: %w", plans[i].Name, err)
		}
	}

	log.Println("✅ Seeded subscription plans")
	return nil
}
