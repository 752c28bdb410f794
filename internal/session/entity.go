// internal/session/entity.go
package session

import (
	"time"
)

// ActivityLog records a user action (sign-in, sign-out, store view and
// the like). Rows are written fire-and-forget; losing one is acceptable.
type ActivityLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"not null;size:100" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}
