// internal/domain/saved/entity.go
package saved

import (
	"time"
)

// Entry is a cart line parked for later: same shape as a cart line but a
// separate collection.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "saved_for_later_entries"
}
