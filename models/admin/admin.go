package admin

import (
	"time"
)

// Admin represents a back-office operator. Rows are seeded from the
// ADMIN_USERNAME/ADMIN_PASSWORD environment pair at startup.
type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(50);not null;unique" json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
