package order

import (
	"fmt"

	orderModel "medcare/models/order"
	"medcare/utils"
)

// CartItem is one line of the checkout cart, keyed by the drug's inventory id.
type CartItem struct {
	DrugID   uint `json:"drug_id"`
	Quantity int  `json:"quantity"`
}

// CheckoutRequest carries the whole cart plus delivery metadata. The cart is
// explicit request state; there is no server-side session.
type CheckoutRequest struct {
	Items           []CartItem `json:"items"`
	DeliveryAddress string     `json:"delivery_address"`
	PaymentMethod   string     `json:"payment_method"`
	ContactNumber   string     `json:"contact_number"`
}

func (r CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("cart is empty")
	}
	seen := make(map[uint]bool, len(r.Items))
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for drug %d", item.DrugID)
		}
		if seen[item.DrugID] {
			return fmt.Errorf("drug %d appears more than once in the cart", item.DrugID)
		}
		seen[item.DrugID] = true
	}
	if r.DeliveryAddress == "" {
		return fmt.Errorf("delivery address is required")
	}
	if r.PaymentMethod == "" {
		return fmt.Errorf("payment method is required")
	}
	if !utils.ValidatePhoneNumber(r.ContactNumber) {
		return fmt.Errorf("invalid contact number")
	}
	return nil
}

// UpdateStatusRequest asks for a status transition on an order. AgentPhone
// is required when the target status is Shipped.
type UpdateStatusRequest struct {
	Status     orderModel.OrderStatus `json:"status"`
	AgentPhone string                 `json:"agent_phone,omitempty"`
}

func (r UpdateStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	if r.Status == orderModel.OrderStatusShipped && r.AgentPhone == "" {
		return fmt.Errorf("agent phone is required to mark an order shipped")
	}
	return nil
}

// ItemView is one item line in an order summary.
type ItemView struct {
	DrugID    uint    `json:"drug_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Summary is the aggregated per-checkout view of an order: item lines with
// subtotals, a running total, and the latest status timestamps.
type Summary struct {
	OrderNumber     string                 `json:"order_number"`
	CustomerName    string                 `json:"customer_name"`
	Status          orderModel.OrderStatus `json:"status"`
	Items           []ItemView             `json:"items"`
	Total           float64                `json:"total"`
	DeliveryAddress string                 `json:"delivery_address"`
	PaymentMethod   string                 `json:"payment_method"`
	ContactNumber   string                 `json:"contact_number"`
	AgentName       *string                `json:"agent_name,omitempty"`
	AgentPhone      *string                `json:"agent_phone,omitempty"`
	AgentBike       *string                `json:"agent_bike,omitempty"`
	OrderDate       string                 `json:"order_date"`
	StatusUpdatedAt string                 `json:"status_updated_at"`
}
