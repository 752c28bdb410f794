// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Store represents a seller's storefront in the marketplace
type Store struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	LogoURL     string         `gorm:"size:500" json:"logo_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:StoreID" json:"products,omitempty"`
}

// TableName overrides the table name
func (Store) TableName() string {
	return "stores"
}

// Product represents a product listed in a store
type Product struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	StoreID           uint           `gorm:"not null;index" json:"store_id"`
	Name              string         `gorm:"not null;size:255" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	Price             int64          `gorm:"not null" json:"price"` // Price in cents
	ImageURL          string         `gorm:"size:500" json:"image_url"`
	Category          string         `gorm:"size:100;index" json:"category"`
	InventoryCount    int            `gorm:"default:0" json:"inventory_count"`
	LowStockThreshold int            `gorm:"default:5" json:"low_stock_threshold"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"store"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// StoreView records a single storefront page view for analytics
type StoreView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	StoreID  uint      `gorm:"not null;index" json:"store_id"`
	ViewerID *uint     `gorm:"index" json:"viewer_id"` // nil for anonymous views
	ViewedAt time.Time `json:"viewed_at"`
}

// TableName overrides the table name
func (StoreView) TableName() string {
	return "store_views"
}
