// internal/domain/subscription/entity.go
package subscription

import (
	"math"
	"time"
)

// Plan represents a seller subscription plan
type Plan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Price        int64     `gorm:"not null" json:"price"` // Price in cents per period
	DurationDays int       `gorm:"not null;default:30" json:"duration_days"`
	MaxProducts  *int      `json:"max_products"` // nil = unlimited
	HasAnalytics bool      `gorm:"default:false" json:"has_analytics"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Plan) TableName() string {
	return "plans"
}

// UserSubscription persists one user's subscription row
type UserSubscription struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	PlanID           uint       `gorm:"not null;index" json:"plan_id"`
	Status           string     `gorm:"size:20;default:'active'" json:"status"` // active, trialing, expired, cancelled
	TrialEndsAt      *time.Time `json:"trial_ends_at"`
	CurrentPeriodEnd time.Time  `gorm:"not null" json:"current_period_end"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relationships
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan"`
}

// TableName overrides the table name
func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// Status is the derived gating snapshot the client reacts to. It is
// recomputed on every fetch, never mutated in place. A user with no
// subscription row gets the zero value.
type Status struct {
	HasActiveSubscription bool   `json:"has_active_subscription"`
	IsTrial               bool   `json:"is_trial"`
	IsExpired             bool   `json:"is_expired"`
	DaysRemaining         int    `json:"days_remaining"`
	PlanName              string `json:"plan_name"`
	MaxProducts           *int   `json:"max_products"` // nil = unlimited
	HasAnalytics          bool   `json:"has_analytics"`
}

// UsageStats is a read-only usage snapshot for plan gating
type UsageStats struct {
	TotalProducts   int   `json:"total_products"`
	ActiveProducts  int   `json:"active_products"`
	TotalOrders     int   `json:"total_orders"`
	TotalRevenue    int64 `json:"total_revenue"` // In cents
	ProductLimit    *int  `json:"product_limit"` // nil = unlimited
	UsagePercentage int   `json:"usage_percentage"`
}

// AlertLevel classifies how close the user is to their product limit
type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertWarning  AlertLevel = "warning"  // >= 75% of the limit
	AlertCritical AlertLevel = "critical" // >= 90% of the limit
)

// Percentage computes how much of the product limit is used, rounded to
// the nearest whole percent. Unlimited plans always report zero.
func Percentage(totalProducts int, limit *int) int {
	if limit == nil || *limit <= 0 {
		return 0
	}
	return int(math.Round(float64(totalProducts) / float64(*limit) * 100))
}

// AlertLevel maps the usage percentage onto the badge thresholds
func (u UsageStats) AlertLevel() AlertLevel {
	switch {
	case u.UsagePercentage >= 90:
		return AlertCritical
	case u.UsagePercentage >= 75:
		return AlertWarning
	default:
		return AlertNormal
	}
}
