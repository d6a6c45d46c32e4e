package order

import (
	"errors"
	"testing"
	"time"

	agentModel "medcare/models/agent"
	billingModel "medcare/models/billing"
	customerModel "medcare/models/customer"
	drugModel "medcare/models/drug"
	orderModel "medcare/models/order"
	orderTypes "medcare/types/order"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// Every pooled connection to :memory: is its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&customerModel.Customer{},
		&agentModel.DeliveryAgent{},
		&drugModel.Drug{},
		&drugModel.DrugPrice{},
		&orderModel.Order{},
		&orderModel.OrderItem{},
		&orderModel.OrderStatusEvent{},
		&billingModel.Bill{},
		&billingModel.BillItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name, email string) customerModel.Customer {
	t.Helper()

	cust := customerModel.Customer{
		Uuid:         "uuid-" + email,
		Name:         name,
		PasswordHash: "x",
		Email:        email,
		State:        "Delhi",
		Phone:        "9876543210",
	}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return cust
}

func seedDrug(t *testing.T, db *gorm.DB, drugID uint, name string, quantity int, price float64) {
	t.Helper()

	d := drugModel.Drug{
		DrugID:   drugID,
		Name:     name,
		ExpDate:  time.Now().AddDate(1, 0, 0),
		Usage:    "as directed",
		Quantity: quantity,
	}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("seed drug: %v", err)
	}
	if price > 0 {
		p := drugModel.DrugPrice{DrugID: drugID, PricePerUnit: price}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed price: %v", err)
		}
	}
}

func seedAgent(t *testing.T, db *gorm.DB, name, phone string) agentModel.DeliveryAgent {
	t.Helper()

	bike := "DL 01 AB 1234"
	ag := agentModel.DeliveryAgent{
		Uuid:         "uuid-" + phone,
		Name:         name,
		Phone:        phone,
		PasswordHash: "x",
		Address:      "Depot Road",
		BikeNumber:   &bike,
		Status:       agentModel.AgentStatusAvailable,
	}
	if err := db.Create(&ag).Error; err != nil {
		t.Fatalf("seed agent: %v", err)
	}
	return ag
}

func drugQuantity(t *testing.T, db *gorm.DB, drugID uint) int {
	t.Helper()

	var d drugModel.Drug
	if err := db.Where("drug_id = ?", drugID).First(&d).Error; err != nil {
		t.Fatalf("fetch drug %d: %v", drugID, err)
	}
	return d.Quantity
}

func TestCheckoutDecrementsStock(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	cust := seedCustomer(t, db, "anita", "anita@example.com")
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	seedDrug(t, db, 2, "Cetirizine", 5, 25)

	cart := []orderTypes.CartItem{
		{DrugID: 1, Quantity: 2},
		{DrugID: 2, Quantity: 1},
	}
	ord, err := svc.Checkout(cust.ID, cust.Name, cart, "12 Lake Road", "cash", "9876543210")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if got := drugQuantity(t, db, 1); got != 8 {
		t.Errorf("Paracetamol quantity = %d, want 8", got)
	}
	if got := drugQuantity(t, db, 2); got != 4 {
		t.Errorf("Cetirizine quantity = %d, want 4", got)
	}

	if len(ord.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(ord.Items))
	}
	summary := Summarize(*ord)
	if summary.Total != 45 {
		t.Errorf("order total = %v, want 45", summary.Total)
	}

	var events []orderModel.OrderStatusEvent
	if err := db.Where("order_id = ?", ord.ID).Find(&events).Error; err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 || events[0].Status != orderModel.OrderStatusPlaced {
		t.Errorf("events = %+v, want one Placed event", events)
	}

	var bills []billingModel.Bill
	if err := db.Find(&bills).Error; err != nil {
		t.Fatalf("fetch bills: %v", err)
	}
	if len(bills) != 1 || bills[0].TotalAmount != 45 {
		t.Errorf("bills = %+v, want one bill of 45", bills)
	}
}

func TestCheckoutRejectsExcessQuantity(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	cust := seedCustomer(t, db, "ravi", "ravi@example.com")
	seedDrug(t, db, 7, "Ibuprofen", 2, 15)

	cart := []orderTypes.CartItem{{DrugID: 7, Quantity: 5}}
	_, err := svc.Checkout(cust.ID, cust.Name, cart, "12 Lake Road", "cash", "9876543210")

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Checkout error = %v, want *StockError", err)
	}
	if stockErr.DrugName != "Ibuprofen" || stockErr.Available != 2 || stockErr.Requested != 5 {
		t.Errorf("StockError = %+v, want Ibuprofen 2/5", stockErr)
	}

	if got := drugQuantity(t, db, 7); got != 2 {
		t.Errorf("quantity after rejected checkout = %d, want 2", got)
	}
	var count int64
	db.Model(&orderModel.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("order count = %d, want 0", count)
	}
}

func TestCheckoutAbortsWholeCart(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	cust := seedCustomer(t, db, "ravi", "ravi@example.com")
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	seedDrug(t, db, 2, "Cetirizine", 1, 25)

	cart := []orderTypes.CartItem{
		{DrugID: 1, Quantity: 2},
		{DrugID: 2, Quantity: 3},
	}
	_, err := svc.Checkout(cust.ID, cust.Name, cart, "12 Lake Road", "cash", "9876543210")

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Checkout error = %v, want *StockError", err)
	}
	if stockErr.DrugName != "Cetirizine" {
		t.Errorf("failing item = %s, want Cetirizine", stockErr.DrugName)
	}

	// Nothing from the first line may have been written either
	if got := drugQuantity(t, db, 1); got != 10 {
		t.Errorf("Paracetamol quantity = %d, want 10", got)
	}
	var orders, bills int64
	db.Model(&orderModel.Order{}).Count(&orders)
	db.Model(&billingModel.Bill{}).Count(&bills)
	if orders != 0 || bills != 0 {
		t.Errorf("orders = %d, bills = %d after aborted checkout, want 0/0", orders, bills)
	}
}

func TestDecrementStockReportsCurrentQuantity(t *testing.T) {
	db := openTestDB(t)
	seedDrug(t, db, 3, "Amoxicillin", 4, 0)

	// Stock moves after the caller's availability pass
	if err := db.Model(&drugModel.Drug{}).Where("drug_id = ?", 3).UpdateColumn("quantity", 1).Error; err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	err := decrementStock(db, 3, "Amoxicillin", 2)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("decrementStock error = %v, want *StockError", err)
	}
	if stockErr.Available != 1 {
		t.Errorf("reported available = %d, want the row's current quantity 1", stockErr.Available)
	}
	if got := drugQuantity(t, db, 3); got != 1 {
		t.Errorf("quantity = %d, want unchanged 1", got)
	}

	if err := decrementStock(db, 3, "Amoxicillin", 1); err != nil {
		t.Fatalf("decrementStock within stock: %v", err)
	}
	if got := drugQuantity(t, db, 3); got != 0 {
		t.Errorf("quantity after decrement = %d, want 0", got)
	}
}

func placeOrder(t *testing.T, svc *Service, cust customerModel.Customer) *orderModel.Order {
	t.Helper()

	cart := []orderTypes.CartItem{{DrugID: 1, Quantity: 1}}
	ord, err := svc.Checkout(cust.ID, cust.Name, cart, "12 Lake Road", "cash", "9876543210")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	return ord
}

func TestFindScopedToCustomer(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	owner := seedCustomer(t, db, "anita", "anita@example.com")
	other := seedCustomer(t, db, "ravi", "ravi@example.com")
	ord := placeOrder(t, svc, owner)

	if _, err := svc.Find(ord.OrderNumber, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Find as other customer: err = %v, want ErrOrderNotFound", err)
	}
	if _, err := svc.Find(ord.OrderNumber, owner.ID); err != nil {
		t.Errorf("Find as owner: %v", err)
	}
	if _, err := svc.Find(ord.OrderNumber, 0); err != nil {
		t.Errorf("unscoped Find: %v", err)
	}
}

func TestDeleteScopedToCustomer(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	owner := seedCustomer(t, db, "anita", "anita@example.com")
	other := seedCustomer(t, db, "ravi", "ravi@example.com")
	ord := placeOrder(t, svc, owner)

	if err := svc.Delete(ord.OrderNumber, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Delete as other customer: err = %v, want ErrOrderNotFound", err)
	}
	var count int64
	db.Model(&orderModel.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("order count after foreign delete = %d, want 1", count)
	}

	if err := svc.Delete(ord.OrderNumber, owner.ID); err != nil {
		t.Fatalf("Delete as owner: %v", err)
	}
	db.Model(&orderModel.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("order count = %d, want 0", count)
	}
	var items, events int64
	db.Model(&orderModel.OrderItem{}).Count(&items)
	db.Model(&orderModel.OrderStatusEvent{}).Count(&events)
	if items != 0 || events != 0 {
		t.Errorf("items = %d, events = %d after delete, want 0/0", items, events)
	}
}

func TestDeleteRejectsInFlightOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	owner := seedCustomer(t, db, "anita", "anita@example.com")
	ord := placeOrder(t, svc, owner)

	if _, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusConfirmed, "", "admin"); err != nil {
		t.Fatalf("Transition to Confirmed: %v", err)
	}

	if err := svc.Delete(ord.OrderNumber, owner.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Delete of Confirmed order: err = %v, want ErrInvalidState", err)
	}
	var count int64
	db.Model(&orderModel.Order{}).Count(&count)
	if count != 1 {
		t.Errorf("order count = %d, want record intact", count)
	}
}

func TestTransitionSecondAcceptLoses(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	owner := seedCustomer(t, db, "anita", "anita@example.com")
	first := seedAgent(t, db, "gopal", "9000000001")
	second := seedAgent(t, db, "vikram", "9000000002")
	ord := placeOrder(t, svc, owner)

	if _, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusConfirmed, "", "admin"); err != nil {
		t.Fatalf("Transition to Confirmed: %v", err)
	}
	if _, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusShipped, first.Phone, first.Name); err != nil {
		t.Fatalf("first accept: %v", err)
	}

	_, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusShipped, second.Phone, second.Name)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second accept: err = %v, want ErrInvalidTransition", err)
	}

	got, err := svc.Find(ord.OrderNumber, 0)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.DeliveryAgentPhone == nil || *got.DeliveryAgentPhone != first.Phone {
		t.Errorf("assigned agent = %v, want %s kept", got.DeliveryAgentPhone, first.Phone)
	}
}

func TestTransitionShippedRequiresKnownAgent(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	seedDrug(t, db, 1, "Paracetamol", 10, 10)
	owner := seedCustomer(t, db, "anita", "anita@example.com")
	ord := placeOrder(t, svc, owner)

	if _, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusConfirmed, "", "admin"); err != nil {
		t.Fatalf("Transition to Confirmed: %v", err)
	}

	_, err := svc.Transition(ord.OrderNumber, orderModel.OrderStatusShipped, "9111111111", "admin")
	if !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("ship with unknown agent: err = %v, want ErrAgentNotFound", err)
	}

	got, _ := svc.Find(ord.OrderNumber, 0)
	if got.Status != orderModel.OrderStatusConfirmed {
		t.Errorf("status = %s, want Confirmed unchanged", got.Status)
	}
}
