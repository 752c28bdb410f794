// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a placed order. Payment here is manual proof-of-payment
// review, so status moves through pending_payment -> paid by an admin.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	StoreID     uint           `gorm:"not null;index" json:"store_id"`
	Status      string         `gorm:"size:30;default:'pending_payment'" json:"status"`
	TotalAmount int64          `gorm:"not null" json:"total_amount"` // In cents
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines,omitempty"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one product position within an order
type OrderLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // Price at time of purchase
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderLine) TableName() string {
	return "order_lines"
}
