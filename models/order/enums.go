package order

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// validTransitions is the strict DAG of allowed status changes.
// Delivered and Cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Helper methods for OrderStatus
func (os OrderStatus) String() string {
	return string(os)
}

func (os OrderStatus) IsValid() bool {
	switch os {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are allowed.
func (os OrderStatus) IsTerminal() bool {
	return os == OrderStatusDelivered || os == OrderStatusCancelled
}

// CanTransitionTo reports whether target is reachable from the current status
// in a single step.
func (os OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range validTransitions[os] {
		if next == target {
			return true
		}
	}
	return false
}

// CanBeDeleted returns true if the order may be removed. Only orders that
// never entered fulfilment, or were cancelled, are deletable.
func (os OrderStatus) CanBeDeleted() bool {
	return os == OrderStatusPlaced || os == OrderStatusCancelled
}

// GetAllOrderStatuses returns all valid order statuses
func GetAllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPlaced,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}
