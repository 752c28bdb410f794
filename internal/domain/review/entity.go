// internal/domain/review/entity.go
package review

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a product review
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Rating       int            `gorm:"not null" json:"rating"` // 1-5
	Title        string         `gorm:"size:255" json:"title"`
	Comment      string         `gorm:"type:text" json:"comment"`
	HelpfulCount int            `gorm:"default:0" json:"helpful_count"`
	IsApproved   bool           `gorm:"default:true" json:"is_approved"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// HelpfulVote marks one user finding one review helpful. The unique
// index is what turns a second vote into a conflict.
type HelpfulVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_votes_review_user" json:"review_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_review_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (HelpfulVote) TableName() string {
	return "review_helpful_votes"
}
