// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Line represents one (user, product) row with a quantity. The unique
// index backs the one-line-per-product invariant; the service coalesces
// duplicates by incrementing quantity instead of inserting.
type Line struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Line) TableName() string {
	return "cart_lines"
}
