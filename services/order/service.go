package order

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	agentModel "medcare/models/agent"
	billingModel "medcare/models/billing"
	drugModel "medcare/models/drug"
	orderModel "medcare/models/order"
	orderTypes "medcare/types/order"

	"gorm.io/gorm"
)

// Error taxonomy of the order lifecycle. Controllers map these onto HTTP
// statuses; none of them leaves partial state behind.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDrugNotFound      = errors.New("drug not found in inventory")
	ErrAgentNotFound     = errors.New("delivery agent not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("order cannot be deleted in its current status")
)

// StockError reports the first cart line that failed the availability check.
type StockError struct {
	DrugName  string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough quantity available for %s. Available: %d, Requested: %d",
		e.DrugName, e.Available, e.Requested)
}

// Service owns order creation, status transitions and aggregation.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// GenerateOrderNumber builds the human-facing order identifier:
// customer_timestamp_random. Collisions are handled by the caller re-rolling
// with a fresh suffix.
func GenerateOrderNumber(customerName string, ts time.Time, suffix int) string {
	return fmt.Sprintf("%s_%s_%d", customerName, ts.Format("20060102150405"), suffix)
}

func randomSuffix(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// nextOrderNumber generates an identifier and re-rolls with a wider random
// component while the number is already taken.
func (s *Service) nextOrderNumber(customerName string, ts time.Time) (string, error) {
	number := GenerateOrderNumber(customerName, ts, randomSuffix(1000, 9999))

	for attempts := 0; ; attempts++ {
		var count int64
		if err := s.DB.Model(&orderModel.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
		if attempts >= 10 {
			return "", fmt.Errorf("could not generate a unique order number")
		}
		number = GenerateOrderNumber(customerName, ts, randomSuffix(10000, 99999))
	}
}

// pricedLine is a cart line joined with catalog state at checkout time.
type pricedLine struct {
	Drug      drugModel.Drug
	Quantity  int
	UnitPrice float64
}

// Checkout validates the whole cart against current stock, then creates the
// order header, its item lines and the stock decrements in one transaction.
// On a failed availability check it returns a *StockError naming the item
// and writes nothing.
func (s *Service) Checkout(customerID uint, customerName string, items []orderTypes.CartItem, address, payment, contact string) (*orderModel.Order, error) {
	// Availability pass first: abort before any write, reporting the item
	lines := make([]pricedLine, 0, len(items))
	for _, item := range items {
		var d drugModel.Drug
		if err := s.DB.Where("drug_id = ?", item.DrugID).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: drug %d", ErrDrugNotFound, item.DrugID)
			}
			return nil, err
		}
		if d.Quantity < item.Quantity {
			return nil, &StockError{DrugName: d.Name, Available: d.Quantity, Requested: item.Quantity}
		}

		price, err := s.currentPrice(d.DrugID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pricedLine{Drug: d, Quantity: item.Quantity, UnitPrice: price})
	}

	number, err := s.nextOrderNumber(customerName, time.Now())
	if err != nil {
		return nil, err
	}

	ord := orderModel.Order{
		OrderNumber:     number,
		CustomerID:      customerID,
		CustomerName:    customerName,
		Status:          orderModel.OrderStatusPlaced,
		DeliveryAddress: address,
		PaymentMethod:   payment,
		ContactNumber:   contact,
		StatusUpdatedAt: time.Now(),
	}
	for _, line := range lines {
		ord.Items = append(ord.Items, orderModel.OrderItem{
			DrugID:    line.Drug.DrugID,
			DrugName:  line.Drug.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ord).Error; err != nil {
			return err
		}

		for _, line := range lines {
			if err := decrementStock(tx, line.Drug.DrugID, line.Drug.Name, line.Quantity); err != nil {
				return err
			}
		}

		event := orderModel.OrderStatusEvent{
			OrderID:   ord.ID,
			Status:    orderModel.OrderStatusPlaced,
			CreatedBy: customerName,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		// Header-only invoice for the checkout; item detail lives on the order
		var total float64
		for _, item := range ord.Items {
			total += item.Subtotal()
		}
		bill := billingModel.Bill{
			CustomerPhone: contact,
			BillDate:      time.Now(),
			TotalAmount:   total,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, err
	}

	return &ord, nil
}

// decrementStock applies one cart line's stock decrement. The guard keeps
// quantity from going negative when stock moved after the availability
// pass; on a failed guard the error reports the row's quantity as it is
// now, not as it was at validation time.
func decrementStock(tx *gorm.DB, drugID uint, drugName string, requested int) error {
	res := tx.Model(&drugModel.Drug{}).
		Where("drug_id = ? AND quantity >= ?", drugID, requested).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", requested))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cur drugModel.Drug
		if err := tx.Where("drug_id = ?", drugID).First(&cur).Error; err != nil {
			return err
		}
		return &StockError{DrugName: drugName, Available: cur.Quantity, Requested: requested}
	}
	return nil
}

// currentPrice looks up the drug's unit price, zero when none is set.
func (s *Service) currentPrice(drugID uint) (float64, error) {
	var price drugModel.DrugPrice
	err := s.DB.Where("drug_id = ?", drugID).First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return price.PricePerUnit, nil
}

// Transition moves an order to the target status. Illegal targets fail with
// ErrInvalidTransition and change nothing. Shipping requires an existing
// delivery agent whose identity is snapshotted onto the header. The header
// update and the status event are written atomically.
func (s *Service) Transition(orderNumber string, target orderModel.OrderStatus, agentPhone, updatedBy string) (*orderModel.Order, error) {
	var ord orderModel.Order
	if err := s.DB.Where("order_number = ?", orderNumber).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !ord.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidTransition, ord.Status, target)
	}

	var assigned *agentModel.DeliveryAgent
	if target == orderModel.OrderStatusShipped {
		var ag agentModel.DeliveryAgent
		if err := s.DB.Where("phone = ?", agentPhone).First(&ag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAgentNotFound
			}
			return nil, err
		}
		assigned = &ag
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":            target,
			"status_updated_at": time.Now(),
		}
		if assigned != nil {
			updates["delivery_agent_name"] = assigned.Name
			updates["delivery_agent_phone"] = assigned.Phone
			updates["delivery_agent_bike"] = assigned.BikeNumber
		}
		// Guarded on the status read above so two agents racing to accept
		// the same order cannot both win
		res := tx.Model(&orderModel.Order{}).
			Where("id = ? AND status = ?", ord.ID, ord.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, orderNumber, ord.Status)
		}

		event := orderModel.OrderStatusEvent{
			OrderID:   ord.ID,
			Status:    target,
			CreatedBy: updatedBy,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Items").Where("id = ?", ord.ID).First(&ord).Error; err != nil {
		return nil, err
	}
	return &ord, nil
}

// Find returns one order with its items. A non-zero customerID scopes the
// lookup to that customer's own orders; someone else's order number comes
// back as ErrOrderNotFound.
func (s *Service) Find(orderNumber string, customerID uint) (*orderModel.Order, error) {
	query := s.DB.Preload("Items").Where("order_number = ?", orderNumber)
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	var ord orderModel.Order
	if err := query.First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// Delete removes an order and its items. Only Placed or Cancelled orders may
// be deleted; anything in flight fails with ErrInvalidState. A non-zero
// customerID restricts deletion to that customer's own orders.
func (s *Service) Delete(orderNumber string, customerID uint) error {
	query := s.DB.Where("order_number = ?", orderNumber)
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	var ord orderModel.Order
	if err := query.First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !ord.Status.CanBeDeleted() {
		return fmt.Errorf("%w: status is %s", ErrInvalidState, ord.Status)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", ord.ID).Delete(&orderModel.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", ord.ID).Delete(&orderModel.OrderStatusEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ord).Error
	})
}

// Summarize aggregates an order header and its items into the per-checkout
// display view: item lines with subtotals and the running total.
func Summarize(ord orderModel.Order) orderTypes.Summary {
	summary := orderTypes.Summary{
		OrderNumber:     ord.OrderNumber,
		CustomerName:    ord.CustomerName,
		Status:          ord.Status,
		DeliveryAddress: ord.DeliveryAddress,
		PaymentMethod:   ord.PaymentMethod,
		ContactNumber:   ord.ContactNumber,
		AgentName:       ord.DeliveryAgentName,
		AgentPhone:      ord.DeliveryAgentPhone,
		AgentBike:       ord.DeliveryAgentBike,
		OrderDate:       ord.CreatedAt.Format("2006-01-02 15:04:05"),
		StatusUpdatedAt: ord.StatusUpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, item := range ord.Items {
		summary.Items = append(summary.Items, orderTypes.ItemView{
			DrugID:    item.DrugID,
			Name:      item.DrugName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
		summary.Total += item.Subtotal()
	}
	return summary
}

// SummarizeAll maps Summarize over a set of orders, preserving order.
func SummarizeAll(orders []orderModel.Order) []orderTypes.Summary {
	summaries := make([]orderTypes.Summary, 0, len(orders))
	for _, ord := range orders {
		summaries = append(summaries, Summarize(ord))
	}
	return summaries
}

// ListByCustomer returns the customer's orders, newest first, optionally
// filtered by status.
func (s *Service) ListByCustomer(customerID uint, status orderModel.OrderStatus) ([]orderModel.Order, error) {
	query := s.DB.Preload("Items").Where("customer_id = ?", customerID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []orderModel.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns all orders, newest first, optionally filtered by status
// and creation day (YYYY-MM-DD).
func (s *Service) ListAll(status orderModel.OrderStatus, day *time.Time) ([]orderModel.Order, error) {
	query := s.DB.Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		query = query.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))
	}

	var orders []orderModel.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListConfirmed returns orders waiting for a delivery agent to accept.
func (s *Service) ListConfirmed() ([]orderModel.Order, error) {
	var orders []orderModel.Order
	err := s.DB.Preload("Items").
		Where("status = ?", orderModel.OrderStatusConfirmed).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByAgent returns the orders assigned to an agent, optionally filtered
// by status.
func (s *Service) ListByAgent(agentPhone string, status orderModel.OrderStatus) ([]orderModel.Order, error) {
	query := s.DB.Preload("Items").Where("delivery_agent_phone = ?", agentPhone).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []orderModel.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
