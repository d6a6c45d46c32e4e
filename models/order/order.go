package order

import (
	"medcare/models/customer"
	"time"
)

// Order is the header row for one checkout: it owns the item lines and
// carries the shared status, delivery metadata and assigned-agent snapshot.
type Order struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Human-facing identifier, customer_timestamp_random, re-rolled on collision
	OrderNumber string `gorm:"type:varchar(100);not null;unique" json:"order_number"`

	// Foreign key for customer relationship
	CustomerID   uint              `gorm:"not null;index" json:"customer_id"`
	Customer     customer.Customer `gorm:"foreignKey:CustomerID" json:"customer"`
	CustomerName string            `gorm:"type:varchar(100);not null" json:"customer_name"`

	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'Placed'" json:"status"`
	DeliveryAddress string      `gorm:"type:text" json:"delivery_address"`
	PaymentMethod   string      `gorm:"type:varchar(50)" json:"payment_method"`
	ContactNumber   string      `gorm:"type:varchar(15)" json:"contact_number"`

	// Assigned delivery agent, snapshotted when the order ships
	DeliveryAgentName  *string `gorm:"type:varchar(50)" json:"delivery_agent_name,omitempty"`
	DeliveryAgentPhone *string `gorm:"type:varchar(15);index" json:"delivery_agent_phone,omitempty"`
	DeliveryAgentBike  *string `gorm:"type:varchar(20)" json:"delivery_agent_bike,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`

	StatusUpdatedAt time.Time `gorm:"not null" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is one (order, drug) line. UnitPrice is snapshotted at checkout
// so historical totals do not drift with later price changes.
type OrderItem struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID uint `gorm:"not null;index;uniqueIndex:idx_order_items_order_drug" json:"order_id"`

	DrugID    uint    `gorm:"not null;uniqueIndex:idx_order_items_order_drug" json:"drug_id"`
	DrugName  string  `gorm:"type:varchar(100);not null" json:"drug_name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times the snapshotted unit price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
