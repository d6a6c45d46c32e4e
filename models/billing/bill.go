package billing

import (
	"time"
)

// Bill is an invoice header. The cart-checkout path persists the header
// only; the ad-hoc admin path also persists the item detail rows.
type Bill struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerPhone string    `gorm:"type:varchar(15);not null;index" json:"customer_phone"`
	BillDate      time.Time `gorm:"not null;index" json:"bill_date"`
	TotalAmount   float64   `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BillItem is one invoiced line with its price snapshot.
type BillItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID    uint    `gorm:"not null;index" json:"bill_id"`
	DrugID    uint    `gorm:"not null" json:"drug_id"`
	DrugName  string  `gorm:"type:varchar(50);not null" json:"drug_name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
