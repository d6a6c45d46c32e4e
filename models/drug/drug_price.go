package drug

import (
	"time"
)

// DrugPrice holds the current unit price for a drug. One row per drug,
// upsert semantics on DrugID.
type DrugPrice struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	DrugID       uint    `gorm:"not null;uniqueIndex" json:"drug_id"`
	PricePerUnit float64 `gorm:"type:decimal(10,2);not null" json:"price_per_unit"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the DrugPrice model
func (DrugPrice) TableName() string {
	return "drug_prices"
}
