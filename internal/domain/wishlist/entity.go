// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"
)

// Entry represents a wishlist membership row. The wishlist is a set per
// user: a product is either present or absent, never counted twice.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "wishlist_entries"
}
