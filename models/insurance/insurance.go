package insurance

import (
	"time"
)

// Insurance represents an insurance plan referenced, not owned, by customers.
type Insurance struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CompName string  `gorm:"type:varchar(100);not null" json:"comp_name"`
	Coverage float64 `gorm:"type:decimal(5,2);not null" json:"coverage"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
