package drug

import (
	"time"
)

// LowStockThreshold is the on-hand quantity below which a drug shows up in
// the admin low-stock report.
const LowStockThreshold = 50

// Drug represents a catalog entry. DrugID is the admin-assigned inventory
// identifier; Quantity is mutated by accepted orders and restocks.
type Drug struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DrugID   uint      `gorm:"not null;unique" json:"drug_id"`
	Name     string    `gorm:"type:varchar(50);not null" json:"name"`
	ExpDate  time.Time `gorm:"type:date;not null" json:"exp_date"`
	Usage    string    `gorm:"type:varchar(50);not null;column:usage_text" json:"usage"`
	Quantity int       `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsLowStock reports whether the drug is below the restock threshold.
func (d Drug) IsLowStock() bool {
	return d.Quantity < LowStockThreshold
}
