package order

import (
	"time"
)

// OrderStatusEvent represents a status change event for an order
type OrderStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for order relationship
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order"`

	Status    OrderStatus `gorm:"size:20;not null" json:"status"`
	CreatedBy string      `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the OrderStatusEvent model
func (OrderStatusEvent) TableName() string {
	return "order_status_events"
}
